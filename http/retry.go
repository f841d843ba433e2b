package http

import (
	"context"
	"time"

	"github.com/fwojciec/docnav"
)

// Ensure RetryingFetcher implements docnav.Fetcher at compile time.
var _ docnav.Fetcher = (*RetryingFetcher)(nil)

// DefaultRetryDelays returns the backoff delays between fetch attempts.
// They are short because a person is waiting on the result.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{250 * time.Millisecond, 500 * time.Millisecond}
}

// RetryingFetcher retries connection failures of the wrapped fetcher with
// backoff. Other failures, such as a missing page, are returned at once.
type RetryingFetcher struct {
	next   docnav.Fetcher
	delays []time.Duration
}

// NewRetryingFetcher wraps next. With no delays DefaultRetryDelays is used.
func NewRetryingFetcher(next docnav.Fetcher, delays ...time.Duration) *RetryingFetcher {
	if len(delays) == 0 {
		delays = DefaultRetryDelays()
	}
	return &RetryingFetcher{next: next, delays: delays}
}

// Fetch makes up to len(delays)+1 attempts.
func (f *RetryingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		html, err := f.next.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= len(f.delays) || docnav.ErrorCode(err) != docnav.ECONNECT {
			return "", lastErr
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}
}

// Close closes the wrapped fetcher.
func (f *RetryingFetcher) Close() error {
	return f.next.Close()
}
