// Package direct fetches pages with a plain HTTP GET and browser-like headers.
package direct

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/cyberx-cli/internal/adapters/driven/fetcher"
	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
)

// Ensure Fetcher implements the interface.
var _ driven.PageFetcher = (*Fetcher)(nil)

const (
	// DefaultTimeout bounds each request.
	DefaultTimeout = 30 * time.Second

	// UserAgent is a Chrome desktop user agent.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

	// maxBodySize caps the bytes read from one page.
	maxBodySize = 10 << 20
)

// Config holds the direct fetcher settings.
type Config struct {
	// Timeout bounds each request. Defaults to DefaultTimeout.
	Timeout time.Duration

	// Limiter throttles requests. Optional.
	Limiter *fetcher.RateLimiter

	// HTTPClient overrides the client. Optional, for tests.
	HTTPClient *http.Client
}

// Fetcher is the fallback page fetcher.
type Fetcher struct {
	client  *http.Client
	limiter *fetcher.RateLimiter
}

// New creates a direct fetcher.
func New(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Fetcher{client: client, limiter: cfg.Limiter}
}

// Name identifies the fetcher in logs.
func (f *Fetcher) Name() string {
	return "direct"
}

// Fetch GETs url and returns the body.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrSourceFetch, url, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrSourceFetch, url, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrSourceFetch, url, err)
	}
	defer resp.Body.Close()
	f.limiter.UpdateFromResponse(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s: status %d", domain.ErrSourceFetch, url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("%w: %s: read body: %w", domain.ErrSourceFetch, url, err)
	}
	return string(body), nil
}
