package navigator

import "encoding/json"

type errorPayload struct {
	Call  string `json:"call"`
	Error string `json:"error"`
}

func buildErrorPayload(call, msg string) []byte {
	b, _ := json.Marshal(errorPayload{Call: call, Error: msg})
	return b
}
