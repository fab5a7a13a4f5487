package search

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/helsinki-transit/navigator/poi"
)

// cacheFile is the persisted form of a searchIndex. Re-embedding an
// unbounded POI set on every process start is the cost this file avoids.
type cacheFile struct {
	Model     string                `json:"model"`
	Dimension int                   `json:"dimension"`
	POIs      []poi.PointOfInterest `json:"pois"`
	Vectors   [][]float32           `json:"vectors"`
}

// saveCache writes the index to a temp file and renames it into place, so
// a crash mid-write never leaves a truncated cache.
func saveCache(path, model string, idx *searchIndex) error {
	data, err := json.Marshal(cacheFile{
		Model:     model,
		Dimension: idx.dimension(),
		POIs:      idx.pois,
		Vectors:   idx.vectors,
	})
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".embeddings-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func loadCache(path, model string) (*searchIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cf cacheFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("corrupt embedding cache %s: %w", path, err)
	}
	if cf.Model != model {
		return nil, fmt.Errorf("embedding cache %s was built with model %q, want %q", path, cf.Model, model)
	}
	if len(cf.POIs) != len(cf.Vectors) {
		return nil, fmt.Errorf("embedding cache %s has %d pois but %d vectors", path, len(cf.POIs), len(cf.Vectors))
	}
	return &searchIndex{pois: cf.POIs, vectors: cf.Vectors}, nil
}
