// Package embedding provides the external embedding-model collaborator
// used by the search engine. The Ollama implementation is swappable:
// anything satisfying search.Embedder can replace it without touching the
// engine's contract.
package embedding
