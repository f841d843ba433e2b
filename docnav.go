// Package docnav provides a quick-launcher style list tool for browsing and
// searching a documentation website. It walks the site's navigation markup
// into nested lists, queries the site's remote search endpoint, and opens the
// chosen page in the default browser.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, bubbletea/).
package docnav
