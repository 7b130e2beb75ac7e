package driven

import "context"

// PageFetcher retrieves the raw HTML of a page.
//
// Implementations:
//   - zenrows: Scraping API with JS rendering and anti-bot (primary)
//   - direct: Plain HTTP GET with browser headers (fallback)
type PageFetcher interface {
	// Name identifies the fetcher in logs.
	Name() string

	// Fetch returns the page body. Non-2xx responses, timeouts and
	// transport failures are errors wrapping domain.ErrSourceFetch.
	Fetch(ctx context.Context, url string) (string, error)
}
