// Package search serves free-text "vibe" search over points of interest
// by embedding similarity.
//
// The Engine owns the only authoritative copy of computed embeddings: an
// in-memory matrix with parallel POI metadata, rebuilt fully aside and
// swapped atomically, plus a JSON cache on disk so restarts skip
// re-embedding. Queries rank all indexed POIs by cosine similarity.
package search
