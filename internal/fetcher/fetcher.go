// Package fetcher downloads source pages with rate limiting, retries, and a
// deliberate inter-request delay.
package fetcher

import "context"

// Fetcher defines the interface for downloading a source page.
type Fetcher interface {
	// FetchPage fetches the URL and returns the response body as text.
	FetchPage(ctx context.Context, url string) (string, error)
}
