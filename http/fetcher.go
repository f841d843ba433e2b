// Package http reads documentation pages and queries the site's search
// endpoint over plain HTTP. Pages are taken as served, so a site that
// builds its navigation in the browser needs rod.Fetcher instead.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/docnav"
)

const (
	// DefaultFetchTimeout matches rod.DefaultFetchTimeout.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultUserAgent identifies docnav to the sites it reads.
	DefaultUserAgent = "docnav/1.0 (+https://github.com/fwojciec/docnav)"

	// DefaultMaxPageSize caps a single documentation page. OI Wiki's
	// largest pages render to well under a megabyte.
	DefaultMaxPageSize = 8 << 20
)

var _ docnav.Fetcher = (*Fetcher)(nil)

// Fetcher downloads documentation pages for the navigator.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxPageSize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout bounds each page download.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.client.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxPageSize rejects pages larger than n bytes.
func WithMaxPageSize(n int64) Option {
	return func(f *Fetcher) {
		f.maxPageSize = n
	}
}

// NewFetcher returns a Fetcher with DefaultFetchTimeout, DefaultUserAgent
// and DefaultMaxPageSize unless overridden.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:      &http.Client{Timeout: DefaultFetchTimeout},
		userAgent:   DefaultUserAgent,
		maxPageSize: DefaultMaxPageSize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the HTML of the page at url.
//
// A missing page is ENOTFOUND. Transport failures and other unsuccessful
// statuses are ECONNECT so RetryingFetcher can try again. If ctx itself
// is done its error is returned unchanged.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", docnav.Errorf(docnav.EINVALID, "invalid page URL %q: %v", url, err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", docnav.Errorf(docnav.ECONNECT, "loading %s: %v", url, err)
	}
	defer resp.Body.Close()

	if err := pageStatusError(url, resp.StatusCode); err != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, f.maxPageSize))
		return "", err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxPageSize+1))
	if err != nil {
		return "", docnav.Errorf(docnav.ECONNECT, "reading %s: %v", url, err)
	}
	if int64(len(body)) > f.maxPageSize {
		return "", docnav.Errorf(docnav.EINVALID, "page %s is larger than %d bytes", url, f.maxPageSize)
	}
	return string(body), nil
}

func pageStatusError(url string, status int) error {
	switch {
	case status >= http.StatusOK && status < http.StatusMultipleChoices:
		return nil
	case status == http.StatusNotFound:
		return docnav.Errorf(docnav.ENOTFOUND, "page not found: %s", url)
	default:
		return docnav.Errorf(docnav.ECONNECT, "unexpected status %d fetching %s", status, url)
	}
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
