package scrape_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/coprofile"
	"github.com/fwojciec/coprofile/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	t.Parallel()

	t.Run("implements coprofile.RateLimiter interface", func(t *testing.T) {
		t.Parallel()
		var _ coprofile.RateLimiter = scrape.NewRateLimiter(30)
	})

	t.Run("interval is a minute divided by the rate", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 2*time.Second, scrape.NewRateLimiter(30).Interval())
		assert.Equal(t, 100*time.Millisecond, scrape.NewRateLimiter(600).Interval())
		assert.Equal(t, time.Duration(0), scrape.NewRateLimiter(0).Interval())
	})

	t.Run("allows immediate first request", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewRateLimiter(600)

		start := time.Now()
		err := limiter.Wait(context.Background())
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "first request should be immediate")
	})

	t.Run("spaces consecutive requests", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewRateLimiter(600) // 100ms between requests

		require.NoError(t, limiter.Wait(context.Background()))

		start := time.Now()
		err := limiter.Wait(context.Background())
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond, "should wait for rate limit")
	})

	t.Run("spaces requests across goroutines", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewRateLimiter(1200) // 50ms between requests

		const callers = 4
		var wg sync.WaitGroup
		start := time.Now()
		for range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, limiter.Wait(context.Background()))
			}()
		}
		wg.Wait()

		// The first caller passes at once; each of the others waits one interval.
		assert.GreaterOrEqual(t, time.Since(start), 130*time.Millisecond)
	})

	t.Run("zero rate disables limiting", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewRateLimiter(0)

		start := time.Now()
		for range 10 {
			require.NoError(t, limiter.Wait(context.Background()))
		}
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewRateLimiter(1) // 60s between requests

		require.NoError(t, limiter.Wait(context.Background()))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := limiter.Wait(ctx)
		require.Error(t, err)
	})
}
