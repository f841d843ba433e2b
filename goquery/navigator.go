// Package goquery builds docnav navigation lists from MkDocs Material
// documentation sites using goquery CSS selectors.
package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docnav"
)

// Ensure Navigator implements docnav.Navigator at compile time.
var _ docnav.Navigator = (*Navigator)(nil)

// MkDocs Material markup targeted by the navigator:
//   - .md-tabs__item for the top tabs
//   - nav.md-nav--primary for the sidebar tree, one nested nav per section
//   - nav.md-nav--secondary for the on-page TOC, which is not navigation
const (
	tabSelector      = ".md-tabs__list .md-tabs__item"
	primarySelector  = "nav.md-nav--primary"
	fallbackSelector = "[data-md-component='navigation'] nav.md-nav"
	tocSelector      = ".md-nav--secondary"
	activeEntryClass = "md-nav__item--active"
)

// Navigator builds navigation lists from MkDocs Material pages.
type Navigator struct {
	fetcher docnav.Fetcher
}

// NewNavigator creates a new Navigator that reads pages through fetcher.
func NewNavigator(fetcher docnav.Fetcher) *Navigator {
	return &Navigator{fetcher: fetcher}
}

// BuildTopLevel returns one expandable item per top tab, in document order.
// The tabs' children are left unloaded. Sites without tabs get their whole
// sidebar tree built up front.
func (n *Navigator) BuildTopLevel(ctx context.Context, siteURL string) (*docnav.List, error) {
	siteURL = docnav.Slashify(siteURL)

	doc, err := n.load(ctx, siteURL)
	if err != nil {
		return nil, err
	}

	title := siteTitle(doc)

	tabs := doc.Find(tabSelector)
	if tabs.Length() > 0 {
		list := docnav.NewList(title)
		tabs.Each(func(_ int, tab *goquery.Selection) {
			a := tab.Find("a[href]").First()
			href, _ := a.Attr("href")
			u, err := docnav.Resolve(siteURL, href)
			if err != nil {
				return
			}
			name := cleanText(a)
			if name == "" {
				return
			}
			list.Append(docnav.NewExpand(name, u, u, nil))
		})
		return list, nil
	}

	if nav := primaryNav(doc); nav.Length() > 0 {
		return buildList(nav, siteURL, nil, title), nil
	}

	return nil, docnav.Errorf(docnav.EINVALID, "navigation markers not found at %s", siteURL)
}

// BuildSubLevel returns the sidebar tree of the section titled activeTab on
// pageURL. The list starts with a back item to parent when parent is set.
// A section without entries yields a list holding only that back item.
func (n *Navigator) BuildSubLevel(ctx context.Context, pageURL, activeTab string, parent *docnav.List) (*docnav.List, error) {
	doc, err := n.load(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	nav := primaryNav(doc)
	if nav.Length() == 0 {
		return nil, docnav.Errorf(docnav.EINVALID, "navigation markers not found at %s", pageURL)
	}

	section := findSection(nav, activeTab)
	if section == nil {
		return emptyList(activeTab, parent), nil
	}

	nested := nestedNav(section)
	if nested.Length() == 0 {
		// The tab is a single page rather than a section.
		list := emptyList(activeTab, parent)
		if item := buildItem(section, pageURL, list); item != nil {
			list.Append(item)
		}
		return list, nil
	}

	return buildList(nested, pageURL, parent, activeTab), nil
}

// load fetches and parses a page.
func (n *Navigator) load(ctx context.Context, url string) (*goquery.Document, error) {
	html, err := n.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docnav.Errorf(docnav.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// buildList builds the entries of nav into a new list. Nested sections are
// built first so that every sub-list is complete when it is attached.
func buildList(nav *goquery.Selection, base string, parent *docnav.List, label string) *docnav.List {
	list := emptyList(label, parent)
	entries(nav).Each(func(_ int, li *goquery.Selection) {
		if item := buildItem(li, base, list); item != nil {
			list.Append(item)
		}
	})
	return list
}

// buildItem turns one navigation entry into an item. Entries with a nested
// navigation become expandable items whose children return to current.
// Returns nil for entries without a usable link.
func buildItem(li *goquery.Selection, base string, current *docnav.List) *docnav.Item {
	if nested := nestedNav(li); nested.Length() > 0 {
		title := entryTitle(li, nested)
		label := navLabel(nested, title)
		u := entryURL(li, base)

		children := buildList(nested, base, current, label)

		desc := u
		if desc == "" {
			desc = label
		}
		return docnav.NewExpand(title, desc, u, docnav.NewSubList(children))
	}

	a := li.Find("a[href]").Not(tocSelector + " a").First()
	href, ok := a.Attr("href")
	if !ok {
		return nil
	}
	u, err := docnav.Resolve(base, href)
	if err != nil {
		return nil
	}
	title := cleanText(a)
	if title == "" {
		title = docnav.PlaceholderTitle
	}
	return docnav.NewLink(title, u, u, docnav.IconPage)
}

// emptyList returns a list that holds only a back item to parent, if any.
func emptyList(label string, parent *docnav.List) *docnav.List {
	list := docnav.NewList(label)
	if parent != nil {
		list.Append(docnav.NewBack(parent, label))
	}
	return list
}

// findSection returns the top-level entry of nav titled title, falling back
// to the active entry. Returns nil if neither exists.
func findSection(nav *goquery.Selection, title string) *goquery.Selection {
	want := normalizeSpace(title)

	var match, active *goquery.Selection
	entries(nav).EachWithBreak(func(_ int, li *goquery.Selection) bool {
		if entryTitle(li, nestedNav(li)) == want {
			match = li
			return false
		}
		if active == nil && li.HasClass(activeEntryClass) {
			active = li
		}
		return true
	})

	if match != nil {
		return match
	}
	return active
}

// primaryNav returns the sidebar navigation root.
func primaryNav(doc *goquery.Document) *goquery.Selection {
	nav := doc.Find(primarySelector).First()
	if nav.Length() == 0 {
		nav = doc.Find(fallbackSelector).First()
	}
	return nav
}

// entries returns the direct entries of a navigation container.
func entries(nav *goquery.Selection) *goquery.Selection {
	return nav.ChildrenFiltered("ul").ChildrenFiltered("li")
}

// nestedNav returns the section navigation nested in an entry, ignoring
// the page table of contents.
func nestedNav(li *goquery.Selection) *goquery.Selection {
	return li.ChildrenFiltered("nav").Not(tocSelector).First()
}

// entryTitle returns the visible title of an entry.
func entryTitle(li, nested *goquery.Selection) string {
	if title := cleanText(li.ChildrenFiltered("label, a, .md-nav__link").First()); title != "" {
		return title
	}
	if nested != nil && nested.Length() > 0 {
		return navLabel(nested, "")
	}
	return ""
}

// entryURL returns the resolved URL of a section's index page, if it has one.
func entryURL(li *goquery.Selection, base string) string {
	a := li.ChildrenFiltered("a[href]")
	if a.Length() == 0 {
		a = li.ChildrenFiltered(".md-nav__link, .md-nav__container").ChildrenFiltered("a[href]")
	}
	href, ok := a.First().Attr("href")
	if !ok {
		return ""
	}
	u, err := docnav.Resolve(base, href)
	if err != nil {
		return ""
	}
	return u
}

// navLabel returns the label of a nested navigation.
func navLabel(nav *goquery.Selection, fallback string) string {
	if label := normalizeSpace(nav.AttrOr("aria-label", "")); label != "" {
		return label
	}
	if label := cleanText(nav.ChildrenFiltered("label.md-nav__title").First()); label != "" {
		return label
	}
	return fallback
}

// siteTitle returns the site name shown in the header, or the page title.
func siteTitle(doc *goquery.Document) string {
	if title := cleanText(doc.Find(".md-header__topic").First()); title != "" {
		return title
	}
	return cleanText(doc.Find("title").First())
}

func cleanText(sel *goquery.Selection) string {
	return normalizeSpace(sel.Text())
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
