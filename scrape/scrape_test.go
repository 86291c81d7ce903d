package scrape_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/coprofile"
	"github.com/fwojciec/coprofile/mock"
	"github.com/fwojciec/coprofile/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nameExtractor builds a profile whose company name is the fetched markup.
func nameExtractor() *mock.ProfileExtractor {
	return &mock.ProfileExtractor{
		ExtractFn: func(m coprofile.Markup) *coprofile.CompanyProfile {
			name := m.HTML
			return coprofile.Assemble(&coprofile.CompanyBasics{URL: m.URL, CompanyName: &name},
				coprofile.InvestmentsSummary{}, nil, nil, nil, nil)
		},
	}
}

func TestScraper_Run(t *testing.T) {
	t.Parallel()

	t.Run("keeps input order under concurrency", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				// Earlier inputs finish last.
				switch url {
				case "https://example.com/a":
					time.Sleep(30 * time.Millisecond)
				case "https://example.com/b":
					time.Sleep(15 * time.Millisecond)
				}
				return url, nil
			},
		}
		s := &scrape.Scraper{
			Client:      &scrape.ProfileClient{Fetcher: fetcher},
			Extractor:   nameExtractor(),
			Concurrency: 3,
		}

		res, err := s.Run(context.Background(), []string{
			"https://example.com/a",
			"https://example.com/b",
			"https://example.com/c",
		}, nil)

		require.NoError(t, err)
		require.Len(t, res.Profiles, 3)
		assert.Equal(t, "https://example.com/a", *res.Profiles[0].CompanyName)
		assert.Equal(t, "https://example.com/b", *res.Profiles[1].CompanyName)
		assert.Equal(t, "https://example.com/c", *res.Profiles[2].CompanyName)
		assert.Empty(t, res.Failures)
	})

	t.Run("failed input does not stop the others", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url == "https://example.com/missing" {
					return "", coprofile.Errorf(coprofile.EUNAVAILABLE, "HTTP 404 for %s", url)
				}
				return url, nil
			},
		}
		s := &scrape.Scraper{
			Client:    &scrape.ProfileClient{Fetcher: fetcher},
			Extractor: nameExtractor(),
		}

		res, err := s.Run(context.Background(), []string{
			"https://example.com/a",
			"https://example.com/missing",
			"https://example.com/c",
		}, nil)

		require.NoError(t, err)
		require.Len(t, res.Profiles, 2)
		assert.Equal(t, "https://example.com/a", res.Profiles[0].URL)
		assert.Equal(t, "https://example.com/c", res.Profiles[1].URL)
		require.Len(t, res.Failures, 1)
		assert.Equal(t, "https://example.com/missing", res.Failures[0].Input)
		assert.Equal(t, coprofile.EUNAVAILABLE, coprofile.ErrorCode(res.Failures[0].Err))
	})

	t.Run("resolves identifiers before extraction", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Client: &scrape.ProfileClient{
				BaseURL: "https://pitchbook.com",
				Fetcher: &mock.Fetcher{
					FetchFn: func(_ context.Context, _ string) (string, error) { return "Badia", nil },
				},
			},
			Extractor: nameExtractor(),
		}

		res, err := s.Run(context.Background(), []string{"361831-87"}, nil)

		require.NoError(t, err)
		require.Len(t, res.Profiles, 1)
		assert.Equal(t, "https://pitchbook.com/profiles/company/361831-87", res.Profiles[0].URL)
	})

	t.Run("no inputs yields empty result", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{Client: &scrape.ProfileClient{}, Extractor: nameExtractor()}

		res, err := s.Run(context.Background(), nil, nil)

		require.NoError(t, err)
		assert.NotNil(t, res.Profiles)
		assert.Empty(t, res.Profiles)
		assert.Empty(t, res.Failures)
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url == "https://example.com/bad" {
					return "", coprofile.Errorf(coprofile.EUNAVAILABLE, "HTTP 500")
				}
				return "ok", nil
			},
		}
		s := &scrape.Scraper{
			Client:      &scrape.ProfileClient{Fetcher: fetcher},
			Extractor:   nameExtractor(),
			Concurrency: 2,
		}

		var mu sync.Mutex
		var events []scrape.ProgressEvent
		_, err := s.Run(context.Background(), []string{"https://example.com/ok", "https://example.com/bad"}, func(e scrape.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e)
		})

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, scrape.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, scrape.ProgressFinished, events[3].Type)

		var failed scrape.ProgressEvent
		for _, e := range events[1:3] {
			if e.Type == scrape.ProgressFailed {
				failed = e
			}
		}
		assert.Equal(t, "https://example.com/bad", failed.Input)
		assert.Error(t, failed.Error)
	})

	t.Run("returns partial result when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s := &scrape.Scraper{
			Client: &scrape.ProfileClient{
				Fetcher: &mock.Fetcher{
					FetchFn: func(ctx context.Context, _ string) (string, error) { return "", ctx.Err() },
				},
			},
			Extractor: nameExtractor(),
		}

		res, err := s.Run(ctx, []string{"https://example.com/a"}, nil)

		require.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, res)
		assert.Empty(t, res.Profiles)
		assert.Len(t, res.Failures, 1)
	})
}
