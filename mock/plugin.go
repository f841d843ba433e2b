package mock

import (
	"context"

	"github.com/fwojciec/docnav"
)

var _ docnav.ListPlugin = (*ListPlugin)(nil)

// ListPlugin is a mock implementation of docnav.ListPlugin.
type ListPlugin struct {
	EnterFn       func(ctx context.Context, action docnav.Action, sink docnav.ListSink)
	SearchFn      func(ctx context.Context, action docnav.Action, keyword string, sink docnav.ListSink)
	SelectFn      func(ctx context.Context, action docnav.Action, item *docnav.Item, sink docnav.ListSink)
	PlaceholderFn func() string
}

func (p *ListPlugin) Enter(ctx context.Context, action docnav.Action, sink docnav.ListSink) {
	p.EnterFn(ctx, action, sink)
}

func (p *ListPlugin) Search(ctx context.Context, action docnav.Action, keyword string, sink docnav.ListSink) {
	p.SearchFn(ctx, action, keyword, sink)
}

func (p *ListPlugin) Select(ctx context.Context, action docnav.Action, item *docnav.Item, sink docnav.ListSink) {
	p.SelectFn(ctx, action, item, sink)
}

func (p *ListPlugin) Placeholder() string {
	return p.PlaceholderFn()
}
