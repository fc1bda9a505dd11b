package slog

import (
	"log/slog"
	"time"

	"github.com/wizperch/perch"
)

// Ensure LoggingExtractor implements perch.PageExtractor.
var _ perch.PageExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a PageExtractor and logs what each page yielded.
type LoggingExtractor struct {
	next   perch.PageExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next perch.PageExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractPage delegates to the wrapped extractor and logs the strategy,
// content length and comment counts.
func (e *LoggingExtractor) ExtractPage(rawHTML string, pageURL string) (capture *perch.Capture, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", pageURL}
		if capture != nil {
			strategy := string(capture.Strategy)
			if strategy == "" {
				strategy = "(none)"
			}
			attrs = append(attrs,
				"strategy", strategy,
				"text", len([]rune(capture.Text)),
				"containers", capture.Containers,
				"comments", len(capture.Comments),
			)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.ExtractPage(rawHTML, pageURL)
}
