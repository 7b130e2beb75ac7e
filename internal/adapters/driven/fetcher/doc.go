// Package fetcher holds the page fetchers used by the collector.
//
// Subpackages provide the two fetch paths:
//   - zenrows: scraping API with JS rendering and anti-bot (primary)
//   - direct: plain GET with browser headers (fallback)
//
// This package provides the request throttling both paths share.
package fetcher
