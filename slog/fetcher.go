// Package slog provides log/slog decorators for perch services.
package slog

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/wizperch/perch"
)

// Ensure LoggingFetcher implements perch.Fetcher.
var _ perch.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   perch.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next perch.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome. Failures are
// logged at warn level with their error code.
func (f *LoggingFetcher) Fetch(ctx context.Context, rawURL string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"host", hostOf(rawURL),
			"url", rawURL,
			"duration", time.Since(begin),
		}
		if err != nil {
			f.logger.Warn("fetch failed", append(attrs, "code", perch.ErrorCode(err), "err", err)...)
			return
		}
		f.logger.Info("fetched", append(attrs, "bytes", len(html))...)
	}(time.Now())
	return f.next.Fetch(ctx, rawURL)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
