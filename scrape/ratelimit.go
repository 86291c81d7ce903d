package scrape

import (
	"context"
	"time"

	"github.com/fwojciec/coprofile"
	"golang.org/x/time/rate"
)

var _ coprofile.RateLimiter = (*RateLimiter)(nil)

// RateLimiter spaces requests at least 60s/n apart, where n is the number of
// requests allowed per minute. It is safe for concurrent use; callers that
// arrive together are released one interval apart.
type RateLimiter struct {
	limiter  *rate.Limiter
	interval time.Duration
}

// NewRateLimiter creates a limiter allowing perMinute requests per minute
// with a burst of 1. A perMinute of zero or less disables limiting.
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		return &RateLimiter{}
	}
	interval := time.Minute / time.Duration(perMinute)
	return &RateLimiter{
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		interval: interval,
	}
}

// Interval returns the minimum spacing between requests.
func (r *RateLimiter) Interval() time.Duration {
	if r == nil {
		return 0
	}
	return r.interval
}

// Wait blocks until the next request may be sent. The first request is
// never delayed. Returns an error if the context is canceled before the
// wait completes.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil || r.limiter == nil {
		return ctx.Err()
	}
	return r.limiter.Wait(ctx)
}
