package mock

import (
	"context"

	"github.com/fwojciec/docnav"
)

var _ docnav.Navigator = (*Navigator)(nil)

// Navigator is a mock implementation of docnav.Navigator.
type Navigator struct {
	BuildTopLevelFn func(ctx context.Context, siteURL string) (*docnav.List, error)
	BuildSubLevelFn func(ctx context.Context, pageURL, activeTab string, parent *docnav.List) (*docnav.List, error)
}

func (n *Navigator) BuildTopLevel(ctx context.Context, siteURL string) (*docnav.List, error) {
	return n.BuildTopLevelFn(ctx, siteURL)
}

func (n *Navigator) BuildSubLevel(ctx context.Context, pageURL, activeTab string, parent *docnav.List) (*docnav.List, error) {
	return n.BuildSubLevelFn(ctx, pageURL, activeTab, parent)
}
