package docnav

import "context"

// SearchHit is a single raw result from the remote search endpoint.
// Title and Highlight may contain HTML tags and Markdown markup.
type SearchHit struct {
	Title     string `json:"title"`
	Highlight string `json:"highlight,omitempty"`
	URL       string `json:"url"`
}

// Searcher queries the site's search endpoint.
type Searcher interface {
	// Search returns the results for keyword as a list of link items.
	// A blank keyword returns fallback unchanged without contacting the endpoint.
	// An empty result is an empty list, not an error.
	Search(ctx context.Context, keyword string, fallback *List) (*List, error)
}
