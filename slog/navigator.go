package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docnav"
)

// Ensure LoggingNavigator implements docnav.Navigator.
var _ docnav.Navigator = (*LoggingNavigator)(nil)

// LoggingNavigator wraps a Navigator with debug logging.
type LoggingNavigator struct {
	next   docnav.Navigator
	logger *slog.Logger
}

// NewLoggingNavigator creates a new LoggingNavigator.
func NewLoggingNavigator(next docnav.Navigator, logger *slog.Logger) *LoggingNavigator {
	return &LoggingNavigator{next: next, logger: logger}
}

// BuildTopLevel delegates to the wrapped navigator and logs the operation.
func (n *LoggingNavigator) BuildTopLevel(ctx context.Context, siteURL string) (list *docnav.List, err error) {
	defer func(begin time.Time) {
		n.logger.Info("build top level",
			"url", siteURL,
			"count", list.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.BuildTopLevel(ctx, siteURL)
}

// BuildSubLevel delegates to the wrapped navigator and logs the operation.
func (n *LoggingNavigator) BuildSubLevel(ctx context.Context, pageURL, activeTab string, parent *docnav.List) (list *docnav.List, err error) {
	defer func(begin time.Time) {
		n.logger.Info("build sub level",
			"url", pageURL,
			"tab", activeTab,
			"count", list.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.BuildSubLevel(ctx, pageURL, activeTab, parent)
}
