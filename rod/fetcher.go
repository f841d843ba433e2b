package rod

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fwojciec/docnav"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements docnav.Fetcher at compile time.
var _ docnav.Fetcher = (*Fetcher)(nil)

const (
	// DefaultFetchTimeout bounds a single page render.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultMaxPages is the number of pages rendered before the browser is
	// relaunched. Chrome's resident memory only grows over a long session.
	DefaultMaxPages = 75
)

// Fetcher retrieves rendered HTML using a headless Chrome browser. It is used
// for documentation sites whose navigation is injected by JavaScript.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	timeout  time.Duration
	maxPages int

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	closed   bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchTimeout sets the per-page render timeout.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPages sets how many pages are rendered before the browser is relaunched.
// Values below one disable recycling.
func WithMaxPages(n int) FetcherOption {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches a headless browser. Close must be called when the
// Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	browser, l, err := launch()
	if err != nil {
		return nil, err
	}
	f.browser, f.launcher = browser, l
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := f.acquire()
	if err != nil {
		return "", err
	}

	parent := ctx
	var cancel context.CancelFunc
	if f.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", docnav.Errorf(docnav.ECONNECT, "opening page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	var status int
	waitResponse := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument || e.Response == nil {
			return false
		}
		status = e.Response.Status
		return true
	})

	if err := page.Navigate(url); err != nil {
		return "", loadError(parent, url, err)
	}
	waitResponse()
	if err := statusError(url, status); err != nil {
		return "", err
	}

	if err := page.WaitLoad(); err != nil {
		return "", loadError(parent, url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", loadError(parent, url, err)
	}
	return html, nil
}

// loadError reports a failed page load as a connection error. When the
// caller's own context is done its error is returned instead, so callers can
// tell cancellation from failure.
func loadError(parent context.Context, url string, err error) error {
	if parent.Err() != nil {
		return parent.Err()
	}
	return docnav.Errorf(docnav.ECONNECT, "loading %s: %v", url, err)
}

// statusError maps the document's HTTP status the way the plain HTTP
// fetcher does. A zero status means no response was seen.
func statusError(url string, status int) error {
	switch {
	case status == 0 || status < http.StatusBadRequest:
		return nil
	case status == http.StatusNotFound:
		return docnav.Errorf(docnav.ENOTFOUND, "page not found: %s", url)
	default:
		return docnav.Errorf(docnav.ECONNECT, "unexpected status %d fetching %s", status, url)
	}
}

// LauncherPID returns the process ID of the browser launcher, or zero after
// Close.
func (f *Fetcher) LauncherPID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.launcher == nil {
		return 0
	}
	return f.launcher.PID()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	return f.shutdown()
}

// acquire returns the current browser, relaunching it once the page budget
// is spent. A failed relaunch keeps the old browser.
func (f *Fetcher) acquire() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, docnav.Errorf(docnav.EINVALID, "fetcher is closed")
	}

	if f.maxPages > 0 && f.pages >= f.maxPages {
		if browser, l, err := launch(); err == nil {
			_ = f.shutdown()
			f.browser, f.launcher = browser, l
			f.pages = 0
		}
	}
	f.pages++
	return f.browser, nil
}

// shutdown must be called with mu held.
func (f *Fetcher) shutdown() error {
	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}

func launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return browser, l, nil
}
