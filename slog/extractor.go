package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/coprofile"
)

// Ensure LoggingExtractor implements coprofile.ProfileExtractor.
var _ coprofile.ProfileExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a ProfileExtractor with debug logging.
type LoggingExtractor struct {
	next   coprofile.ProfileExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next coprofile.ProfileExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs what was found.
func (e *LoggingExtractor) Extract(m coprofile.Markup) (p *coprofile.CompanyProfile) {
	defer func(begin time.Time) {
		attrs := []any{"url", m.URL, "duration", time.Since(begin)}
		if p != nil {
			attrs = append(attrs,
				"company", deref(p.CompanyName),
				"investments", len(p.AllInvestments),
				"competitors", len(p.Competitors),
				"faq", len(p.FAQ),
				"investors", len(p.Investors),
			)
		}
		e.logger.Debug("extract", attrs...)
	}(time.Now())
	return e.next.Extract(m)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
