package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/wizperch/perch"
)

// Ensure LoggingSummarizer implements perch.Summarizer.
var _ perch.Summarizer = (*LoggingSummarizer)(nil)

// LoggingSummarizer wraps a Summarizer with logging.
type LoggingSummarizer struct {
	next   perch.Summarizer
	logger *slog.Logger
}

// NewLoggingSummarizer creates a new LoggingSummarizer.
func NewLoggingSummarizer(next perch.Summarizer, logger *slog.Logger) *LoggingSummarizer {
	return &LoggingSummarizer{next: next, logger: logger}
}

// Summarize delegates to the wrapped summarizer and logs the tag count.
func (s *LoggingSummarizer) Summarize(ctx context.Context, page *perch.Page) (summary *perch.Summary, err error) {
	defer func(begin time.Time) {
		tags := 0
		if summary != nil {
			tags = len(summary.Tags)
		}
		s.logger.Info("summarize",
			"url", page.URL,
			"tags", tags,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Summarize(ctx, page)
}
