package docnav

import "strings"

// Placeholders substituted for text that normalizes to nothing.
const (
	PlaceholderTitle       = "------"
	PlaceholderDescription = "no description"
)

// Normalizer turns raw snippet text containing HTML and Markdown into plain
// display text.
type Normalizer interface {
	Normalize(raw string) string
}

// CleanTitle normalizes a raw title, strips leading heading marks and
// substitutes PlaceholderTitle when nothing is left.
func CleanTitle(n Normalizer, raw string) string {
	title := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(n.Normalize(raw)), "#"))
	if title == "" {
		return PlaceholderTitle
	}
	return title
}

// CleanDescription normalizes a raw snippet and substitutes
// PlaceholderDescription when it is absent or normalizes to nothing.
func CleanDescription(n Normalizer, raw string) string {
	desc := strings.TrimSpace(n.Normalize(raw))
	if desc == "" {
		return PlaceholderDescription
	}
	return desc
}
