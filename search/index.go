package search

import (
	"math"
	"sort"

	"github.com/helsinki-transit/navigator/poi"
)

// searchIndex is the embedding matrix plus parallel POI metadata:
// vectors[i] corresponds to pois[i] for all i. Instances are immutable
// once published.
type searchIndex struct {
	pois    []poi.PointOfInterest
	vectors [][]float32
}

func (idx *searchIndex) dimension() int {
	if len(idx.vectors) == 0 {
		return 0
	}
	return len(idx.vectors[0])
}

// topK ranks every indexed POI by cosine similarity to the query vector.
// The stable sort keeps equal scores in insertion order, making results
// deterministic for identical inputs.
func (idx *searchIndex) topK(query []float32, k int) []Result {
	results := make([]Result, len(idx.vectors))
	for i, vec := range idx.vectors {
		results[i] = Result{POI: idx.pois[i], Score: cosine(query, vec)}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if k < len(results) {
		results = results[:k]
	}
	return results
}

// cosine returns the cosine similarity of two vectors in [-1, 1].
// A zero vector scores 0 against everything.
func cosine(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
