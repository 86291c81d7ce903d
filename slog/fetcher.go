// Package slog provides logging decorators for coprofile services.
package slog

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/coprofile"
)

// Ensure LoggingFetcher implements coprofile.Fetcher.
var _ coprofile.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher and logs every request. Successful fetches
// carry a content hash so identical pages can be spotted in the logs.
type LoggingFetcher struct {
	next   coprofile.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next coprofile.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			f.logger.Warn("fetch",
				"url", url,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"hash", Hash(html),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Hash returns the hex xxhash64 of content.
func Hash(content string) string {
	return strconv.FormatUint(xxhash.Sum64String(content), 16)
}
