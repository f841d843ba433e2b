package mock

import (
	"context"

	"github.com/fwojciec/docnav"
)

var _ docnav.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of docnav.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, keyword string, fallback *docnav.List) (*docnav.List, error)
}

func (s *Searcher) Search(ctx context.Context, keyword string, fallback *docnav.List) (*docnav.List, error) {
	return s.SearchFn(ctx, keyword, fallback)
}
