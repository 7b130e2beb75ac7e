// Package zenrows fetches pages through the ZenRows scraping API with
// JavaScript rendering, premium proxies and anti-bot bypass.
package zenrows

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/custodia-labs/cyberx-cli/internal/adapters/driven/fetcher"
	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
)

// Ensure Fetcher implements the interface.
var _ driven.PageFetcher = (*Fetcher)(nil)

const (
	// DefaultEndpoint is the ZenRows API endpoint.
	DefaultEndpoint = "https://api.zenrows.com/v1/"

	// DefaultTimeout bounds each request. Rendering is slow.
	DefaultTimeout = 60 * time.Second

	maxBodySize = 10 << 20
)

// Config holds the ZenRows settings.
type Config struct {
	// APIKey is the ZenRows key. Required.
	APIKey string

	// Endpoint overrides DefaultEndpoint.
	Endpoint string

	// Timeout bounds each request. Defaults to DefaultTimeout.
	Timeout time.Duration

	// Limiter throttles requests. Optional.
	Limiter *fetcher.RateLimiter
}

// Fetcher is the primary page fetcher.
type Fetcher struct {
	apiKey   string
	endpoint string
	client   *http.Client
	limiter  *fetcher.RateLimiter
}

// New creates a ZenRows fetcher.
func New(cfg Config) (*Fetcher, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: zenrows api key is required", domain.ErrInvalidInput)
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Fetcher{
		apiKey:   cfg.APIKey,
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
		limiter:  cfg.Limiter,
	}, nil
}

// Name identifies the fetcher in logs.
func (f *Fetcher) Name() string {
	return "ZenRows API"
}

// Fetch asks ZenRows to render target and returns the page body.
func (f *Fetcher) Fetch(ctx context.Context, target string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrSourceFetch, target, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrSourceFetch, target, err)
	}
	req.URL.RawQuery = f.query(target).Encode()

	resp, err := f.client.Do(req)
	if err != nil {
		// The request URL carries the key; report the target only.
		return "", fmt.Errorf("%w: %s: request failed", domain.ErrSourceFetch, target)
	}
	defer resp.Body.Close()
	f.limiter.UpdateFromResponse(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s: zenrows status %d", domain.ErrSourceFetch, target, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("%w: %s: read body: %w", domain.ErrSourceFetch, target, err)
	}
	return string(body), nil
}

func (f *Fetcher) query(target string) url.Values {
	q := url.Values{}
	q.Set("url", target)
	q.Set("apikey", f.apiKey)
	q.Set("js_render", "true")
	q.Set("premium_proxy", "true")
	q.Set("antibot", "true")
	return q
}
