package gtfsrt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClient_Fetch(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("digitransit-subscription-key")
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", time.Second)
	raw, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(raw) != "payload" {
		t.Errorf("body = %q, want %q", raw, "payload")
	}
	if gotKey != "secret" {
		t.Errorf("subscription key header = %q, want %q", gotKey, "secret")
	}
}

func TestClient_FetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	if _, err := c.Fetch(context.Background()); err == nil || !strings.Contains(err.Error(), "HTTP 403") {
		t.Errorf("expected HTTP 403 error, got %v", err)
	}
}

func TestClient_FetchCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewClient(srv.URL, "", time.Second)
	if _, err := c.Fetch(ctx); err == nil {
		t.Error("cancelled context should abort the fetch")
	}
}
