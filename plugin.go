package docnav

import "context"

// Action describes how the host activated the plugin.
type Action struct {
	// Code is the feature code that launched the plugin.
	Code string
	// Type is the trigger type (e.g., "text", "over").
	Type string
	// Payload is whatever the user typed or selected when launching.
	Payload string
}

// ListSink receives lists to display. The host redraws on every call.
type ListSink interface {
	SetList(list *List)
}

// ListSinkFunc adapts a function to the ListSink interface.
type ListSinkFunc func(list *List)

// SetList calls f(list).
func (f ListSinkFunc) SetList(list *List) {
	f(list)
}

// ListPlugin is driven by a list-mode host through the enter, search and
// select hooks. Hooks never return errors; failures are reported through
// the host's Desktop and rendered as lists.
type ListPlugin interface {
	// Enter is called when the user activates the plugin.
	Enter(ctx context.Context, action Action, sink ListSink)

	// Search is called whenever the input text changes.
	Search(ctx context.Context, action Action, keyword string, sink ListSink)

	// Select is called when the user chooses an item.
	Select(ctx context.Context, action Action, item *Item, sink ListSink)

	// Placeholder returns the prompt shown while the input is empty.
	Placeholder() string
}

// Desktop is the host's desktop integration.
type Desktop interface {
	// HideMainWindow hides the host window.
	HideMainWindow()

	// OpenExternal opens url with the system's default browser.
	OpenExternal(url string) error

	// ExitPlugin ends the plugin session.
	ExitPlugin()

	// Notify shows a message to the user.
	Notify(message string)
}
