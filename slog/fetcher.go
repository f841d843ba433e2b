// Package slog provides log/slog decorators for docnav services.
package slog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/docnav"
)

var _ docnav.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every page load made while building the navigation
// tree. Failures are logged at warn level with their docnav error code so
// a missing page can be told apart from a flaky connection. Loads dropped
// because the user moved on are logged at debug level.
type LoggingFetcher struct {
	next   docnav.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docnav.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the page load.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "duration", time.Since(begin)}
		switch {
		case err == nil:
			f.logger.Info("page loaded", append(attrs, "bytes", len(html))...)
		case errors.Is(err, context.Canceled):
			f.logger.Debug("page load canceled", attrs...)
		default:
			f.logger.Warn("page load failed", append(attrs, "code", docnav.ErrorCode(err), "err", err)...)
		}
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
