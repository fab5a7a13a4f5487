package embedding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"
)

// OllamaEmbedder generates embeddings through a local Ollama server.
type OllamaEmbedder struct {
	client     *api.Client
	model      string
	maxRetries int
	timeout    time.Duration
}

// NewOllamaEmbedder creates an embedder for the given host and model. An
// empty host falls back to the OLLAMA_HOST environment configuration.
func NewOllamaEmbedder(host, model string) (*OllamaEmbedder, error) {
	base := envconfig.Host()
	if host != "" {
		u, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
		}
		base = u
	}
	return &OllamaEmbedder{
		client:     api.NewClient(base, http.DefaultClient),
		model:      model,
		maxRetries: 3,
		timeout:    30 * time.Second,
	}, nil
}

// Embed generates an embedding for one text, retrying transient failures
// with linear backoff.
func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
		vec, err := e.embed(ctx, text)
		if err == nil {
			return vec, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("embedding failed after %d retries: %w", e.maxRetries, lastErr)
}

func (e *OllamaEmbedder) embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.Embeddings(ctx, &api.EmbeddingRequest{
		Model:  e.model,
		Prompt: text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}
	vec := make([]float32, len(resp.Embedding))
	for i, v := range resp.Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}
