package poi

import "context"

// PointOfInterest is one landmark candidate for semantic search.
type PointOfInterest struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// Source yields the current set of points of interest.
type Source interface {
	FetchAll(ctx context.Context) ([]PointOfInterest, error)
}
