package depthcrawl

import "context"

// Fetcher retrieves the body of a page as text.
// Implementations may use a plain HTTP client or browser automation for
// JavaScript-rendered content.
type Fetcher interface {
	// Fetch performs a GET request against url and returns the full response
	// body decoded as text. Transport failures and non-success statuses are
	// returned as errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
