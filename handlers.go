package navigator

import (
	"encoding/json"
	"net/http"
	"strconv"
)

type healthResponse struct {
	Status           string `json:"status"`
	LatestSnapshotTS int64  `json:"latest_snapshot_epoch"`
	VehicleCount     int    `json:"vehicle_count"`
	SearchIndexed    bool   `json:"search_indexed"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	snap := a.GetSnapshot()
	resp := healthResponse{
		Status:           "ok",
		LatestSnapshotTS: snap.Timestamp.Unix(),
		VehicleCount:     len(snap.Vehicles),
		SearchIndexed:    a.IsIndexed(),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (a *App) handleVehicles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a.GetSnapshot())
}

func (a *App) handleSearch(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	q := r.URL.Query().Get("q")
	if q == "" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(buildErrorPayload("search", "query parameter q is required"))
		return
	}
	topK := 0
	if s := r.URL.Query().Get("topK"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			topK = v
		}
	}
	results, err := a.Search(r.Context(), q, topK)
	if err != nil {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write(buildErrorPayload("search", err.Error()))
		return
	}
	_ = json.NewEncoder(w).Encode(results)
}

func (a *App) handleReload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write(buildErrorPayload("reload", "POST required"))
		return
	}
	if err := a.Reload(r.Context()); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(buildErrorPayload("reload", err.Error()))
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "reloaded"})
}
