package legible

import "context"

// Fetcher retrieves HTML documents from URLs.
type Fetcher interface {
	// Fetch downloads the URL and returns the response body as HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases connection resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
