package bubbletea

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/docnav"
	"github.com/muesli/reflow/truncate"
)

var (
	cursorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	titleStyle       = lipgloss.NewStyle()
	descriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// glyphs maps item icons to terminal markers.
var glyphs = map[string]string{
	docnav.IconSearch: "?",
	docnav.IconPage:   "·",
	docnav.IconFolder: "▸",
	docnav.IconBack:   "‹",
	docnav.IconError:  "!",
}

// listMsg carries a list rendered by a plugin hook. seq orders lists by the
// time the plugin produced them, not the time the command returned.
type listMsg struct {
	list *docnav.List
	seq  uint64
}

type noticeMsg struct{ text string }

type hideMsg struct{}

type exitMsg struct{}

// Model is the list view driven by a docnav.ListPlugin. Hooks run as
// commands so the UI stays responsive while pages are fetched.
type Model struct {
	ctx    context.Context
	plugin docnav.ListPlugin
	action docnav.Action

	input  textinput.Model
	list   *docnav.List
	cursor int
	notice string
	hidden bool
	width  int
	height int

	seq     *atomic.Uint64
	applied uint64
}

// NewModel returns a Model for plugin. ctx is passed to every hook.
func NewModel(ctx context.Context, plugin docnav.ListPlugin, action docnav.Action) *Model {
	input := textinput.New()
	input.Placeholder = plugin.Placeholder()
	input.Prompt = "> "
	input.Cursor.SetMode(cursor.CursorStatic)
	input.Focus()

	return &Model{
		ctx:    ctx,
		plugin: plugin,
		action: action,
		input:  input,
		seq:    new(atomic.Uint64),
	}
}

// Init enters the plugin.
func (m *Model) Init() tea.Cmd {
	return m.hook(func(sink docnav.ListSink) {
		m.plugin.Enter(m.ctx, m.action, sink)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - len(m.input.Prompt) - 1
		return m, nil

	case listMsg:
		if msg.seq < m.applied {
			return m, nil
		}
		m.applied = msg.seq
		m.show(msg.list)
		return m, nil

	case noticeMsg:
		m.notice = msg.text
		return m, nil

	case hideMsg:
		m.hidden = true
		return m, nil

	case exitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.input.Value() == "" {
			return m, tea.Quit
		}
		m.input.SetValue("")
		return m, m.search("")
	case "up", "ctrl+p":
		m.move(-1)
		return m, nil
	case "down", "ctrl+n", "tab":
		m.move(1)
		return m, nil
	case "enter":
		item := m.Selected()
		return m, m.hook(func(sink docnav.ListSink) {
			m.plugin.Select(m.ctx, m.action, item, sink)
		})
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.notice = ""
		return m, tea.Batch(cmd, m.search(after))
	}
	return m, cmd
}

func (m *Model) search(keyword string) tea.Cmd {
	return m.hook(func(sink docnav.ListSink) {
		m.plugin.Search(m.ctx, m.action, keyword, sink)
	})
}

// hook runs fn off the UI goroutine and delivers the last list it rendered.
func (m *Model) hook(fn func(sink docnav.ListSink)) tea.Cmd {
	seq := m.seq
	return func() tea.Msg {
		var out *listMsg
		fn(docnav.ListSinkFunc(func(list *docnav.List) {
			out = &listMsg{list: list, seq: seq.Add(1)}
		}))
		if out == nil {
			return nil
		}
		return *out
	}
}

// show replaces the visible list, keeping the cursor on the same item when
// it is still present.
func (m *Model) show(list *docnav.List) {
	var keep uint64
	if item := m.Selected(); item != nil {
		keep = item.ID
	}
	m.list = list
	m.cursor = 0
	if list == nil {
		return
	}
	for i, item := range list.Items {
		if item != nil && item.ID == keep && keep != 0 {
			m.cursor = i
			return
		}
	}
}

func (m *Model) move(delta int) {
	n := m.list.Len()
	if n == 0 {
		return
	}
	m.cursor = (m.cursor + delta + n) % n
}

// Selected returns the item under the cursor, or nil for an empty list.
func (m *Model) Selected() *docnav.Item {
	if m.list.Len() == 0 {
		return nil
	}
	return m.list.Items[m.cursor]
}

// List returns the visible list.
func (m *Model) List() *docnav.List {
	return m.list
}

// Notice returns the last notification.
func (m *Model) Notice() string {
	return m.notice
}

// Hidden reports whether the host asked for the window to be hidden.
func (m *Model) Hidden() bool {
	return m.hidden
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.hidden {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.list != nil && m.list.Title != "" {
		b.WriteString(headerStyle.Render(m.list.Title))
		b.WriteString("\n")
	}

	first, last := m.window()
	for i := first; i < last; i++ {
		item := m.list.Items[i]
		marker := "  "
		title := titleStyle.Render(item.Title)
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
			title = cursorStyle.Render(item.Title)
		}
		glyph, ok := glyphs[item.Icon]
		if !ok {
			glyph = " "
		}
		row := marker + glyph + " " + title
		if item.Description != "" {
			row += "  " + descriptionStyle.Render(item.Description)
		}
		if m.width > 0 {
			row = truncate.StringWithTail(row, uint(m.width), "…")
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	return b.String()
}

// window returns the range of items that fits the terminal, keeping the
// cursor visible.
func (m *Model) window() (int, int) {
	n := m.list.Len()
	rows := m.height - 3
	if m.height <= 0 || rows >= n {
		return 0, n
	}
	if rows < 1 {
		rows = 1
	}
	first := 0
	if m.cursor >= rows {
		first = m.cursor - rows + 1
	}
	return first, first + rows
}
