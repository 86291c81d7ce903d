package scrape

import (
	"context"
	"sync/atomic"

	"github.com/fwojciec/coprofile"
	"golang.org/x/sync/errgroup"
)

// Scraper turns a list of profile URLs or identifiers into records.
type Scraper struct {
	Client      *ProfileClient
	Extractor   coprofile.ProfileExtractor
	Concurrency int
}

// Result holds the outcome of a scrape run. Profiles follow the order of
// the inputs they came from.
type Result struct {
	Profiles []*coprofile.CompanyProfile
	Failures []Failure
}

// Failure records an input that produced no profile.
type Failure struct {
	Input string
	Err   error
}

// ProgressEvent reports progress during a scrape run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Input     string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

type scrapeResult struct {
	position int
	input    string
	profile  *coprofile.CompanyProfile
	err      error
}

// Run fetches and extracts every input. A failing input is recorded in
// Result.Failures and never stops the others. The returned error is non-nil
// only when ctx is canceled; the partial result is still returned.
func (s *Scraper) Run(ctx context.Context, inputs []string, progress ProgressFunc) (*Result, error) {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	total := len(inputs)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan scrapeResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, input := range inputs {
			g.Go(func() error {
				resultCh <- s.process(gctx, i, input)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in order
	var completed atomic.Int64
	results := make([]scrapeResult, total)
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			Input:     result.input,
		}
		if result.err != nil {
			event.Type = ProgressFailed
			event.Error = result.err
		}
		progress(event)
	}

	res := &Result{Profiles: []*coprofile.CompanyProfile{}}
	for _, result := range results {
		if result.err != nil {
			res.Failures = append(res.Failures, Failure{Input: result.input, Err: result.err})
			continue
		}
		res.Profiles = append(res.Profiles, result.profile)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return res, ctx.Err()
}

func (s *Scraper) process(ctx context.Context, position int, input string) scrapeResult {
	result := scrapeResult{position: position, input: input}

	markup, err := s.Client.FetchProfile(ctx, input)
	if err != nil {
		result.err = err
		return result
	}
	result.profile = s.Extractor.Extract(markup)
	return result
}
