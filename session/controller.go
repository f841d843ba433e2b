// Package session implements the list session controller: the state
// machine that drives a list-mode host through the enter, search and
// select hooks.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fwojciec/docnav"
	"github.com/google/uuid"
)

// DefaultPlaceholder is the prompt shown while the input is empty.
const DefaultPlaceholder = "Search OI Wiki"

// State is the controller's position in the session.
type State int

// Session states.
const (
	StateRoot State = iota
	StateExpanded
	StateSearch
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case StateExpanded:
		return "expanded"
	case StateSearch:
		return "search"
	default:
		return "root"
	}
}

// Ensure Controller implements docnav.ListPlugin at compile time.
var _ docnav.ListPlugin = (*Controller)(nil)

// Controller owns the navigation tree of one plugin session and renders
// lists in response to host hooks.
//
// Every hook supersedes the previous one: its context is canceled and a
// result that arrives after a newer hook started is dropped rather than
// rendered. Sinks are called with the controller's lock held and must not
// call back into the controller.
type Controller struct {
	Navigator docnav.Navigator
	Searcher  docnav.Searcher
	Desktop   docnav.Desktop
	Logger    *slog.Logger

	// SiteURL is the documentation site's root.
	SiteURL string

	// Prompt overrides DefaultPlaceholder when set.
	Prompt string

	mu      sync.Mutex
	id      string
	root    *docnav.List
	current *docnav.List // last list that was not a search result
	depth   int
	state   State
	gen     uint64
	cancel  context.CancelFunc
}

// Enter resets the session and renders the site's top-level navigation.
// A failure is reported and renders an empty list.
func (c *Controller) Enter(ctx context.Context, action docnav.Action, sink docnav.ListSink) {
	h := c.begin(ctx, true, "enter")
	h.logger.Debug("entering", "code", action.Code, "type", action.Type)

	root, err := c.Navigator.BuildTopLevel(h.ctx, c.SiteURL)
	if err != nil {
		if h.ctx.Err() != nil {
			return
		}
		c.report(h, "loading navigation", err)
		root = docnav.NewList(c.SiteURL)
	}

	c.settle(h, sink, root, func() {
		c.root = root
		c.current = root
		c.depth = 0
		c.state = StateRoot
	})
}

// Search renders the results for keyword. A blank keyword restores the
// last navigation list without searching.
func (c *Controller) Search(ctx context.Context, action docnav.Action, keyword string, sink docnav.ListSink) {
	h := c.begin(ctx, false, "search")

	fallback := h.current
	if fallback == nil {
		fallback = docnav.NewList("")
	}

	if strings.TrimSpace(keyword) == "" {
		c.settle(h, sink, fallback, func() {
			c.state = c.navState()
		})
		return
	}

	list, err := c.Searcher.Search(h.ctx, keyword, fallback)
	if err != nil {
		if h.ctx.Err() != nil {
			return
		}
		c.report(h, "search", err)
		list = docnav.ErrorList(err)
	}

	c.settle(h, sink, list, func() {
		c.state = StateSearch
	})
}

// Select acts on the chosen item: links are opened in the browser and end
// the session, sections are expanded (fetching their children on first
// use), back items return to the parent list, anything else ends the session.
func (c *Controller) Select(ctx context.Context, action docnav.Action, item *docnav.Item, sink docnav.ListSink) {
	h := c.begin(ctx, false, "select")

	if item == nil {
		c.Desktop.ExitPlugin()
		return
	}

	switch item.Kind {
	case docnav.KindLink:
		c.open(h, item)
	case docnav.KindExpand:
		c.expand(h, item, sink)
	case docnav.KindBack:
		c.back(h, item, sink)
	default:
		c.Desktop.ExitPlugin()
	}
}

// Placeholder returns the prompt shown while the input is empty.
func (c *Controller) Placeholder() string {
	if c.Prompt != "" {
		return c.Prompt
	}
	return DefaultPlaceholder
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Depth returns how many sections deep the session is.
func (c *Controller) Depth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.depth
}

// Root returns the top-level list built by the last Enter.
func (c *Controller) Root() *docnav.List {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.root
}

// Current returns the last navigation list rendered, ignoring search results.
func (c *Controller) Current() *docnav.List {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Close cancels any hook still in flight.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	return nil
}

func (c *Controller) open(h hook, item *docnav.Item) {
	c.Desktop.HideMainWindow()
	if err := c.Desktop.OpenExternal(item.URL); err != nil {
		c.report(h, "opening "+item.URL, err)
	}
	c.Desktop.ExitPlugin()
}

func (c *Controller) expand(h hook, item *docnav.Item, sink docnav.ListSink) {
	if err := item.Validate(); err != nil {
		c.report(h, "expanding section", err)
		return
	}

	parent := h.current
	list, err := item.Sub.Load(h.ctx, func(ctx context.Context) (*docnav.List, error) {
		return c.Navigator.BuildSubLevel(ctx, item.URL, item.Title, parent)
	})
	if err != nil {
		if h.ctx.Err() != nil {
			return
		}
		c.report(h, "loading "+item.Title, err)
		return
	}

	c.settle(h, sink, list, func() {
		c.current = list
		c.depth++
		c.state = StateExpanded
	})
}

func (c *Controller) back(h hook, item *docnav.Item, sink docnav.ListSink) {
	if err := item.Validate(); err != nil {
		c.report(h, "going back", err)
		return
	}

	c.settle(h, sink, item.Parent, func() {
		c.current = item.Parent
		if c.depth > 0 {
			c.depth--
		}
		c.state = c.navState()
	})
}

// hook carries what one hook invocation needs from the session.
type hook struct {
	ctx     context.Context
	gen     uint64
	current *docnav.List
	logger  *slog.Logger
}

// begin starts a hook. It cancels the previous hook and snapshots the
// current list. With reset set the session state is discarded.
func (c *Controller) begin(ctx context.Context, reset bool, name string) hook {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.gen++

	if reset || c.id == "" {
		c.id = uuid.NewString()
	}
	if reset {
		c.root = nil
		c.current = nil
		c.depth = 0
		c.state = StateRoot
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return hook{
		ctx:     ctx,
		gen:     c.gen,
		current: c.current,
		logger:  logger.With("session", c.id, "hook", name),
	}
}

// settle applies a hook's state change and renders list, unless a newer
// hook has started in the meantime.
func (c *Controller) settle(h hook, sink docnav.ListSink, list *docnav.List, apply func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h.gen != c.gen {
		h.logger.Debug("dropping stale result", "generation", h.gen, "latest", c.gen)
		return false
	}
	apply()
	sink.SetList(list)
	return true
}

// navState returns the state matching the current depth. Callers hold mu.
func (c *Controller) navState() State {
	if c.depth > 0 {
		return StateExpanded
	}
	return StateRoot
}

func (c *Controller) report(h hook, what string, err error) {
	h.logger.Error(what+" failed", "err", err)
	c.Desktop.Notify(fmt.Sprintf("%s failed: %s", what, docnav.ErrorMessage(err)))
}
