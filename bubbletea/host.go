package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/docnav"
)

// Ensure Host implements docnav.Desktop at compile time.
var _ docnav.Desktop = (*Host)(nil)

// Opener opens URLs outside the terminal.
type Opener interface {
	OpenExternal(url string) error
}

// Host runs a docnav.ListPlugin as a full-screen terminal program and acts
// as the plugin's desktop.
type Host struct {
	// Opener handles OpenExternal.
	Opener Opener

	// Input and Output default to the process's terminal when nil.
	Input  io.Reader
	Output io.Writer

	// AltScreen runs the program in the alternate screen buffer.
	AltScreen bool

	mu   sync.Mutex
	send func(tea.Msg)
}

// NewHost returns a Host that opens URLs with opener.
func NewHost(opener Opener) *Host {
	return &Host{Opener: opener, AltScreen: true}
}

// Run enters plugin and blocks until the plugin exits, the user quits, or
// ctx is canceled.
func (h *Host) Run(ctx context.Context, plugin docnav.ListPlugin, action docnav.Action) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if h.Input != nil {
		opts = append(opts, tea.WithInput(h.Input))
	}
	if h.Output != nil {
		opts = append(opts, tea.WithOutput(h.Output))
	}
	if h.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(NewModel(ctx, plugin, action), opts...)
	h.attach(p.Send)
	defer h.attach(nil)

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("running terminal host: %w", err)
	}
	return nil
}

// HideMainWindow clears the screen.
func (h *Host) HideMainWindow() {
	h.dispatch(hideMsg{})
}

// OpenExternal delegates to the Opener.
func (h *Host) OpenExternal(url string) error {
	if h.Opener == nil {
		return docnav.Errorf(docnav.EINTERNAL, "no opener configured")
	}
	return h.Opener.OpenExternal(url)
}

// ExitPlugin stops the program.
func (h *Host) ExitPlugin() {
	h.dispatch(exitMsg{})
}

// Notify shows message below the list.
func (h *Host) Notify(message string) {
	h.dispatch(noticeMsg{text: message})
}

func (h *Host) attach(send func(tea.Msg)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.send = send
}

// dispatch drops messages when no program is running.
func (h *Host) dispatch(msg tea.Msg) {
	h.mu.Lock()
	send := h.send
	h.mu.Unlock()
	if send != nil {
		send(msg)
	}
}
