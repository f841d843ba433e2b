package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/docnav"
	"golang.org/x/time/rate"
)

// DefaultSearchEndpoint is the OI Wiki search service.
const DefaultSearchEndpoint = "https://search.oi-wiki.org:8443/"

// DefaultSearchRate limits search-as-you-type to a few requests per second.
const DefaultSearchRate = 5.0

// Ensure SearchClient implements docnav.Searcher at compile time.
var _ docnav.Searcher = (*SearchClient)(nil)

// SearchClient queries a remote search endpoint that answers
// GET {endpoint}?s={keyword} with a JSON array of docnav.SearchHit.
type SearchClient struct {
	client     *http.Client
	endpoint   string
	siteURL    string
	normalizer docnav.Normalizer
	limiter    *rate.Limiter
	timeout    time.Duration
	userAgent  string
}

// SearchOption configures a SearchClient.
type SearchOption func(*SearchClient)

// WithSearchTimeout sets the timeout for search requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithSearchTimeout(d time.Duration) SearchOption {
	return func(c *SearchClient) {
		c.timeout = d
	}
}

// WithRateLimit sets the maximum number of search requests per second.
// A non-positive rps disables rate limiting.
func WithRateLimit(rps float64) SearchOption {
	return func(c *SearchClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithHTTPClient sets the client used for requests. Its timeout is
// replaced by the configured search timeout.
func WithHTTPClient(client *http.Client) SearchOption {
	return func(c *SearchClient) {
		c.client = client
	}
}

// NewSearchClient creates a SearchClient for endpoint. Result URLs are
// resolved against siteURL; titles and snippets are cleaned with normalizer.
func NewSearchClient(endpoint, siteURL string, normalizer docnav.Normalizer, opts ...SearchOption) *SearchClient {
	c := &SearchClient{
		endpoint:   endpoint,
		siteURL:    docnav.Slashify(siteURL),
		normalizer: normalizer,
		limiter:    rate.NewLimiter(rate.Limit(DefaultSearchRate), 1),
		timeout:    DefaultFetchTimeout,
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}

	client := &http.Client{}
	if c.client != nil {
		*client = *c.client
	}
	client.Timeout = c.timeout
	c.client = client

	return c
}

// Search returns the hits for keyword as link items.
// A blank keyword returns fallback without issuing a request.
func (c *SearchClient) Search(ctx context.Context, keyword string, fallback *docnav.List) (*docnav.List, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return fallback, nil
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	hits, err := c.query(ctx, keyword)
	if err != nil {
		return nil, err
	}

	list := docnav.NewList(keyword)
	list.Items = make([]*docnav.Item, 0, len(hits))
	for _, hit := range hits {
		u, err := docnav.Resolve(c.siteURL, hit.URL)
		if err != nil {
			// Unusable URLs still show up; selecting them is a no-op.
			list.Append(docnav.NewNoOp(docnav.CleanTitle(c.normalizer, hit.Title), docnav.ErrorMessage(err), docnav.IconError))
			continue
		}
		list.Append(docnav.NewLink(
			docnav.CleanTitle(c.normalizer, hit.Title),
			docnav.CleanDescription(c.normalizer, hit.Highlight),
			u,
			docnav.IconSearch,
		))
	}
	return list, nil
}

// query performs the request and decodes the raw hits.
func (c *SearchClient) query(ctx context.Context, keyword string) ([]docnav.SearchHit, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, docnav.Errorf(docnav.EINVALID, "invalid search endpoint %q: %v", c.endpoint, err)
	}
	q := u.Query()
	q.Set("s", keyword)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, docnav.Errorf(docnav.ECONNECT, "search request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, docnav.Errorf(docnav.ECONNECT, "search endpoint returned HTTP %d", resp.StatusCode)
	}

	var hits []docnav.SearchHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return nil, docnav.Errorf(docnav.EINVALID, "decoding search results: %v", err)
	}
	return hits, nil
}
