package scrape

import (
	"context"
	"fmt"
	"time"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// BackoffDelays returns the waits between attempts for a fetch that may be
// tried attempts times: base, 2*base, 4*base and so on. One attempt, or
// fewer, means no retries and no delays.
func BackoffDelays(base time.Duration, attempts int) []time.Duration {
	if attempts <= 1 {
		return nil
	}
	delays := make([]time.Duration, attempts-1)
	for i := range delays {
		delays[i] = base << i
	}
	return delays
}

// FetchWithRetryDelays calls fetch until it succeeds, making len(delays)+1
// attempts at most and sleeping delays[i] after failed attempt i. The
// logger, if provided, is called for each retry. After the last attempt
// fails the final error is returned.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", fmt.Errorf("fetch %s failed after %d attempts: %w", url, maxAttempts, lastErr)
}
