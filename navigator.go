package docnav

import "context"

// Navigator builds navigation lists from a documentation site's markup.
type Navigator interface {
	// BuildTopLevel fetches siteURL and returns its top-level sections.
	// Sections whose children live on another page are returned with an
	// unloaded SubList, to be filled by BuildSubLevel on demand.
	BuildTopLevel(ctx context.Context, siteURL string) (*List, error)

	// BuildSubLevel fetches pageURL and returns the navigation tree of the
	// section titled activeTab. When parent is non-nil the returned list
	// starts with a back item referring to it.
	BuildSubLevel(ctx context.Context, pageURL, activeTab string, parent *List) (*List, error)
}
