package search

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/helsinki-transit/navigator/poi"
)

// stubEmbedder maps known texts to fixed vectors. Unknown texts embed to
// a far-away unit vector so they rank last instead of erroring.
type stubEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 1}, nil
}

func testPOIs() []poi.PointOfInterest {
	return []poi.PointOfInterest{
		{ID: 1, Name: "Ateneum", Description: "classical art museum"},
		{ID: 2, Name: "Loyly", Description: "seaside sauna and terrace"},
		{ID: 3, Name: "Suomenlinna", Description: "island fortress park"},
	}
}

func testEmbedder() *stubEmbedder {
	return &stubEmbedder{vectors: map[string][]float32{
		"classical art museum":      {1, 0, 0},
		"seaside sauna and terrace": {0, 1, 0},
		"island fortress park":      {0.7, 0.7, 0},
		"calm art vibes":            {0.9, 0.1, 0},
	}}
}

func TestEngine_FitAndSearch(t *testing.T) {
	e := NewEngine(testEmbedder(), "test-model", "")
	stats, err := e.FitIndex(context.Background(), testPOIs(), "description")
	if err != nil {
		t.Fatalf("FitIndex: %v", err)
	}
	if stats.POIs != 3 || stats.Dimension != 3 {
		t.Fatalf("stats = %+v, want 3 pois, dimension 3", stats)
	}

	results, err := e.Search(context.Background(), "calm art vibes", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].POI.Name != "Ateneum" {
		t.Errorf("top hit = %q, want Ateneum", results[0].POI.Name)
	}
	if results[0].Score < results[1].Score {
		t.Errorf("scores out of order: %v then %v", results[0].Score, results[1].Score)
	}
}

func TestEngine_SearchBeforeFitReturnsEmpty(t *testing.T) {
	e := NewEngine(testEmbedder(), "test-model", "")
	results, err := e.Search(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("unfit engine should return empty non-nil results, got %v", results)
	}
}

func TestEngine_TopKLargerThanIndex(t *testing.T) {
	e := NewEngine(testEmbedder(), "test-model", "")
	if _, err := e.FitIndex(context.Background(), testPOIs(), "description"); err != nil {
		t.Fatalf("FitIndex: %v", err)
	}
	results, err := e.Search(context.Background(), "calm art vibes", 50)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("got %d results, want all 3", len(results))
	}
}

func TestEngine_TopKClampedToOne(t *testing.T) {
	e := NewEngine(testEmbedder(), "test-model", "")
	if _, err := e.FitIndex(context.Background(), testPOIs(), "description"); err != nil {
		t.Fatalf("FitIndex: %v", err)
	}
	results, err := e.Search(context.Background(), "calm art vibes", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("topK 0 should clamp to 1 result, got %d", len(results))
	}
}

func TestEngine_SelfMatchRanksFirst(t *testing.T) {
	e := NewEngine(testEmbedder(), "test-model", "")
	if _, err := e.FitIndex(context.Background(), testPOIs(), "description"); err != nil {
		t.Fatalf("FitIndex: %v", err)
	}
	results, err := e.Search(context.Background(), "seaside sauna and terrace", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results[0].POI.Name != "Loyly" {
		t.Errorf("self match = %q, want Loyly", results[0].POI.Name)
	}
}

func TestEngine_TiesKeepInsertionOrder(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string][]float32{
		"a": {1, 0}, "b": {1, 0}, "c": {1, 0}, "q": {1, 0},
	}}
	pois := []poi.PointOfInterest{
		{ID: 1, Description: "a"},
		{ID: 2, Description: "b"},
		{ID: 3, Description: "c"},
	}
	e := NewEngine(emb, "test-model", "")
	if _, err := e.FitIndex(context.Background(), pois, "description"); err != nil {
		t.Fatalf("FitIndex: %v", err)
	}
	results, err := e.Search(context.Background(), "q", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for i, want := range []int64{1, 2, 3} {
		if results[i].POI.ID != want {
			t.Errorf("result[%d].ID = %d, want %d (insertion order on ties)", i, results[i].POI.ID, want)
		}
	}
}

func TestEngine_EmbedFailureLeavesIndexIntact(t *testing.T) {
	emb := testEmbedder()
	e := NewEngine(emb, "test-model", "")
	if _, err := e.FitIndex(context.Background(), testPOIs(), "description"); err != nil {
		t.Fatalf("FitIndex: %v", err)
	}

	emb.err = errors.New("ollama down")
	if _, err := e.FitIndex(context.Background(), testPOIs(), "description"); err == nil {
		t.Fatal("FitIndex with failing embedder should error")
	}
	if !e.IsIndexed() {
		t.Error("failed rebuild must leave the previous index in place")
	}

	// Query-time failure fails only that call.
	if _, err := e.Search(context.Background(), "anything", 1); err == nil {
		t.Error("Search with failing embedder should error")
	}
	emb.err = nil
	if _, err := e.Search(context.Background(), "calm art vibes", 1); err != nil {
		t.Errorf("Search after recovery: %v", err)
	}
}

func TestEngine_RefitIsIdempotent(t *testing.T) {
	e := NewEngine(testEmbedder(), "test-model", "")
	if _, err := e.FitIndex(context.Background(), testPOIs(), "description"); err != nil {
		t.Fatalf("first FitIndex: %v", err)
	}
	first, err := e.Search(context.Background(), "calm art vibes", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if _, err := e.FitIndex(context.Background(), testPOIs(), "description"); err != nil {
		t.Fatalf("second FitIndex: %v", err)
	}
	second, err := e.Search(context.Background(), "calm art vibes", 3)
	if err != nil {
		t.Fatalf("Search after refit: %v", err)
	}
	for i := range first {
		if first[i].POI.ID != second[i].POI.ID || first[i].Score != second[i].Score {
			t.Errorf("result %d changed across refit: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestEngine_FitEmptySetYieldsEmptyIndex(t *testing.T) {
	e := NewEngine(testEmbedder(), "test-model", "")
	stats, err := e.FitIndex(context.Background(), nil, "description")
	if err != nil {
		t.Fatalf("FitIndex: %v", err)
	}
	if stats.POIs != 0 {
		t.Errorf("stats = %+v, want zero pois", stats)
	}
	if e.IsIndexed() {
		t.Error("empty index should not report as usable")
	}
}

func TestEngine_CacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	e := NewEngine(testEmbedder(), "test-model", path)
	if _, err := e.FitIndex(context.Background(), testPOIs(), "description"); err != nil {
		t.Fatalf("FitIndex: %v", err)
	}

	// A fresh engine restores the index without calling the embedder.
	emb := testEmbedder()
	restored := NewEngine(emb, "test-model", path)
	if err := restored.LoadCache(); err != nil {
		t.Fatalf("LoadCache: %v", err)
	}
	if !restored.IsIndexed() {
		t.Fatal("restored engine should be indexed")
	}
	if emb.calls != 0 {
		t.Errorf("restore embedded %d texts, want 0", emb.calls)
	}

	results, err := restored.Search(context.Background(), "calm art vibes", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results[0].POI.Name != "Ateneum" {
		t.Errorf("restored top hit = %q, want Ateneum", results[0].POI.Name)
	}
}

func TestEngine_CacheModelMismatchRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	e := NewEngine(testEmbedder(), "model-a", path)
	if _, err := e.FitIndex(context.Background(), testPOIs(), "description"); err != nil {
		t.Fatalf("FitIndex: %v", err)
	}

	other := NewEngine(testEmbedder(), "model-b", path)
	if err := other.LoadCache(); err == nil {
		t.Fatal("cache built with a different model must be rejected")
	}
	if other.IsIndexed() {
		t.Error("rejected cache must not populate the index")
	}
}

func TestEngine_LoadCacheMissingFile(t *testing.T) {
	e := NewEngine(testEmbedder(), "test-model", filepath.Join(t.TempDir(), "absent.json"))
	if err := e.LoadCache(); err == nil {
		t.Error("missing cache file should error")
	}
}

func TestTextForField(t *testing.T) {
	p := poi.PointOfInterest{Name: "Loyly", Description: "seaside sauna"}
	if got := textForField(p, "name"); got != "Loyly" {
		t.Errorf("textForField(name) = %q", got)
	}
	if got := textForField(p, "description"); got != "seaside sauna" {
		t.Errorf("textForField(description) = %q", got)
	}
	if got := textForField(p, ""); got != "seaside sauna" {
		t.Errorf("textForField(default) = %q", got)
	}
}
