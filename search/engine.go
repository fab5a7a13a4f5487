package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/helsinki-transit/navigator/poi"
)

// Embedder turns text into a fixed-dimension vector. The same embedder must
// serve both index builds and queries: mixing embedding models between fit
// and query silently degrades relevance with no error signal.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Result is one ranked search hit.
type Result struct {
	POI   poi.PointOfInterest `json:"poi"`
	Score float32             `json:"score"`
}

// IndexStats summarizes a completed index build.
type IndexStats struct {
	POIs      int `json:"pois"`
	Dimension int `json:"dimension"`
}

// Engine serves semantic similarity search over POI descriptions. The
// index is rebuilt fully aside and swapped in atomically, so concurrent
// Search calls during a rebuild observe the old index consistently.
type Engine struct {
	embedder  Embedder
	model     string
	cachePath string

	mu  sync.Mutex // serializes FitIndex/LoadCache
	idx atomic.Pointer[searchIndex]
}

// NewEngine creates a search engine. model tags the persisted cache so a
// cache embedded with a different model is discarded instead of reused.
func NewEngine(embedder Embedder, model, cachePath string) *Engine {
	return &Engine{embedder: embedder, model: model, cachePath: cachePath}
}

// IsIndexed reports whether a usable index is loaded. It gates whether an
// automatic index build is triggered at startup.
func (e *Engine) IsIndexed() bool {
	idx := e.idx.Load()
	return idx != nil && len(idx.vectors) > 0
}

// FitIndex embeds the chosen text field of every POI and swaps in the new
// index. An empty input yields an explicitly empty index, not an error. On
// any embedding failure the previous index stays in place untouched.
//
// The finished matrix is persisted to the cache path so a process restart
// does not re-embed the whole POI set.
func (e *Engine) FitIndex(ctx context.Context, pois []poi.PointOfInterest, textField string) (IndexStats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.embedder == nil {
		return IndexStats{}, errors.New("no embedder configured")
	}
	next := &searchIndex{
		pois:    make([]poi.PointOfInterest, 0, len(pois)),
		vectors: make([][]float32, 0, len(pois)),
	}
	for _, p := range pois {
		vec, err := e.embedder.Embed(ctx, textForField(p, textField))
		if err != nil {
			return IndexStats{}, fmt.Errorf("embed poi %q: %w", p.Name, err)
		}
		next.pois = append(next.pois, p)
		next.vectors = append(next.vectors, vec)
	}

	e.idx.Store(next)
	if e.cachePath != "" {
		if err := saveCache(e.cachePath, e.model, next); err != nil {
			log.Printf("search: index built but cache write failed: %v", err)
		}
	}
	return IndexStats{POIs: len(next.pois), Dimension: next.dimension()}, nil
}

// LoadCache restores a previously persisted index. A cache written by a
// different embedding model is rejected.
func (e *Engine) LoadCache() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx, err := loadCache(e.cachePath, e.model)
	if err != nil {
		return err
	}
	e.idx.Store(idx)
	return nil
}

// Search embeds the query and returns the topK most similar POIs in
// strictly descending score order, ties broken by insertion order. An
// unfit or empty index returns an empty list, never an error; only a
// query-time embedding failure fails the call.
func (e *Engine) Search(ctx context.Context, query string, topK int) ([]Result, error) {
	idx := e.idx.Load()
	if idx == nil || len(idx.vectors) == 0 {
		return []Result{}, nil
	}
	if topK < 1 {
		topK = 1
	}
	if e.embedder == nil {
		return nil, errors.New("no embedder configured")
	}
	qv, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return idx.topK(qv, topK), nil
}

func textForField(p poi.PointOfInterest, field string) string {
	switch field {
	case "name":
		return p.Name
	default: // description is the canonical vibe text
		return p.Description
	}
}
