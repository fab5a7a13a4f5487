package gtfsrt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fetches raw GTFS-RT protobuf data over HTTP.
type Client struct {
	httpClient      *http.Client
	url             string
	subscriptionKey string
}

// NewClient creates a feed client with a hard per-request timeout. The
// timeout must stay below the polling cadence so slow upstreams cannot
// stack unbounded in-flight requests.
func NewClient(url, subscriptionKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Client{
		httpClient:      &http.Client{Timeout: timeout},
		url:             url,
		subscriptionKey: subscriptionKey,
	}
}

// Fetch retrieves one raw feed payload.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	if c.subscriptionKey != "" {
		req.Header.Set("digitransit-subscription-key", c.subscriptionKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", c.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.url)
	}

	return io.ReadAll(resp.Body)
}
