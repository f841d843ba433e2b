package docnav

import (
	"context"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Kind determines what selecting an item does.
type Kind int

// Item kinds.
const (
	KindNoOp Kind = iota
	KindLink
	KindExpand
	KindBack
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindLink:
		return "link"
	case KindExpand:
		return "expand"
	case KindBack:
		return "back"
	default:
		return "noop"
	}
}

// Icons shown next to items. Hosts map them to whatever they can draw.
const (
	IconSearch = "img/search.png"
	IconPage   = "img/page.png"
	IconFolder = "img/folder.png"
	IconBack   = "img/back.png"
	IconError  = "img/error.png"
)

// BackTitle is the title of the item that returns to the parent list.
const BackTitle = ".."

// Item is a single row in a rendered list.
type Item struct {
	// ID identifies the item across renders. Derived from kind, URL and title.
	ID          uint64
	Title       string
	Description string
	URL         string
	Icon        string
	Kind        Kind

	// Sub holds the children of a KindExpand item.
	Sub *SubList

	// Parent is the list a KindBack item returns to.
	Parent *List
}

// Validate returns an error if the item violates its kind's invariants.
func (i *Item) Validate() error {
	switch i.Kind {
	case KindLink:
		if i.URL == "" {
			return Errorf(EINVALID, "link item %q requires a URL", i.Title)
		}
	case KindExpand:
		if i.Sub == nil {
			return Errorf(EINVALID, "expand item %q requires a sub-list", i.Title)
		}
	case KindBack:
		if i.Parent == nil {
			return Errorf(EINVALID, "back item requires a parent list")
		}
	}
	return nil
}

// ItemID returns the identity hash for an item.
func ItemID(kind Kind, url, title string) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(strconv.Itoa(int(kind)))
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(url)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(title)
	return h.Sum64()
}

// NewLink returns an item that opens url when selected.
func NewLink(title, description, url, icon string) *Item {
	return &Item{
		ID:          ItemID(KindLink, url, title),
		Title:       title,
		Description: description,
		URL:         url,
		Icon:        icon,
		Kind:        KindLink,
	}
}

// NewExpand returns an item that descends into sub when selected.
// Pass an empty SubList to have the children fetched on first selection.
func NewExpand(title, description, url string, sub *SubList) *Item {
	if sub == nil {
		sub = &SubList{}
	}
	return &Item{
		ID:          ItemID(KindExpand, url, title),
		Title:       title,
		Description: description,
		URL:         url,
		Icon:        IconFolder,
		Kind:        KindExpand,
		Sub:         sub,
	}
}

// NewBack returns an item that returns to parent when selected.
func NewBack(parent *List, description string) *Item {
	var title string
	if parent != nil {
		title = parent.Title
	}
	return &Item{
		ID:          ItemID(KindBack, "", title),
		Title:       BackTitle,
		Description: description,
		Icon:        IconBack,
		Kind:        KindBack,
		Parent:      parent,
	}
}

// NewNoOp returns an informational item. Selecting it ends the session.
func NewNoOp(title, description, icon string) *Item {
	return &Item{
		ID:          ItemID(KindNoOp, "", title),
		Title:       title,
		Description: description,
		Icon:        icon,
		Kind:        KindNoOp,
	}
}

// List is an ordered sequence of items rendered together.
// Lists are shared by pointer; a back item refers to its parent list
// without owning it.
type List struct {
	Title string
	Items []*Item
}

// NewList returns a list with the given title and items.
func NewList(title string, items ...*Item) *List {
	return &List{Title: title, Items: items}
}

// Len returns the number of items, treating a nil list as empty.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Items)
}

// Append adds items to the end of the list.
func (l *List) Append(items ...*Item) {
	l.Items = append(l.Items, items...)
}

// ErrorList returns a list holding a single item describing err.
func ErrorList(err error) *List {
	return NewList("error", NewNoOp(ErrorMessage(err), ErrorCode(err), IconError))
}

// SubList holds the children of an expandable item. It is filled at most
// once; later reads return the same list without rebuilding it.
type SubList struct {
	mu   sync.Mutex
	list *List
}

// NewSubList returns a SubList that is already loaded with list.
func NewSubList(list *List) *SubList {
	return &SubList{list: list}
}

// List returns the loaded children or nil if they have not been built yet.
func (s *SubList) List() *List {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list
}

// Loaded reports whether the children have been built.
func (s *SubList) Loaded() bool {
	return s.List() != nil
}

// Load returns the children, calling build on first use. Concurrent callers
// wait for the first build. A failed build is not remembered.
func (s *SubList) Load(ctx context.Context, build func(ctx context.Context) (*List, error)) (*List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.list != nil {
		return s.list, nil
	}

	list, err := build(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = &List{}
	}
	s.list = list
	return list, nil
}
