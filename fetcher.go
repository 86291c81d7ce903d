package coprofile

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch performs a single GET and returns the response body.
	// Transport failures and non-2xx responses are returned as errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// RateLimiter paces outbound requests. A single limiter is shared by every
// request of a run.
type RateLimiter interface {
	// Wait blocks until a request may be sent or the context is done.
	Wait(ctx context.Context) error
}
