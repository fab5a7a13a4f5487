package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// OverpassSource fetches landmark nodes from the Overpass API inside a
// bounding box ("south,west,north,east").
type OverpassSource struct {
	httpClient *http.Client
	url        string
	bbox       string
}

// NewOverpassSource creates an Overpass client for the given endpoint and bbox.
func NewOverpassSource(endpoint, bbox string) *OverpassSource {
	return &OverpassSource{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		url:        endpoint,
		bbox:       bbox,
	}
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

// FetchAll queries tourism, leisure, arts-centre and historic nodes and maps
// them to points of interest. Unnamed nodes are dropped.
func (s *OverpassSource) FetchAll(ctx context.Context) ([]PointOfInterest, error) {
	query := fmt.Sprintf(`[out:json][timeout:25];
(
  node["tourism"](%[1]s);
  node["leisure"](%[1]s);
  node["amenity"="arts_centre"](%[1]s);
  node["historic"](%[1]s);
);
out body;`, s.bbox)

	params := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, s.url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed overpassResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("overpass response: %w", err)
	}

	pois := make([]PointOfInterest, 0, len(parsed.Elements))
	for _, el := range parsed.Elements {
		name := el.Tags["name"]
		if name == "" {
			continue
		}
		kind := firstTag(el.Tags, "tourism", "leisure", "amenity")
		if kind == "" {
			kind = "landmark"
		}
		pois = append(pois, PointOfInterest{
			ID:          el.ID,
			Name:        name,
			Lat:         el.Lat,
			Lon:         el.Lon,
			Kind:        kind,
			Description: fmt.Sprintf("%s (%s)", name, kind),
			ImageURL:    placeholderImage(kind),
		})
	}
	return pois, nil
}

func firstTag(tags map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := tags[k]; v != "" {
			return v
		}
	}
	return ""
}

// Category placeholder images shown by the map layer until a POI has
// its own photo.
var categoryImages = map[string]string{
	"museum":    "https://images.unsplash.com/photo-1545989253-02cc26577f88?w=400&q=80",
	"park":      "https://images.unsplash.com/photo-1496347312933-125c92842fa3?w=400&q=80",
	"viewpoint": "https://images.unsplash.com/photo-1502786129293-79981cb61638?w=400&q=80",
	"sauna":     "https://images.unsplash.com/photo-1574673627192-3c46927d2c3c?w=400&q=80",
	"default":   "https://images.unsplash.com/photo-1538332539566-b5d1e679a636?w=400&q=80",
}

func placeholderImage(kind string) string {
	k := strings.ToLower(kind)
	switch {
	case strings.Contains(k, "museum") || strings.Contains(k, "art"):
		return categoryImages["museum"]
	case strings.Contains(k, "park") || strings.Contains(k, "garden"):
		return categoryImages["park"]
	case strings.Contains(k, "view"):
		return categoryImages["viewpoint"]
	case strings.Contains(k, "sauna"):
		return categoryImages["sauna"]
	}
	return categoryImages["default"]
}
