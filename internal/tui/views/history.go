// history.go renders the server-side analysis history.
package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alprnalcri/dyslexia-cli/internal/api"
	"github.com/alprnalcri/dyslexia-cli/internal/tui"
)

// RefreshHistoryMsg asks the app to re-fetch the history listing.
type RefreshHistoryMsg struct{}

// ClearHistoryMsg asks the app to delete the history on the server.
type ClearHistoryMsg struct{}

// HistoryModel is the view model for the history screen.
type HistoryModel struct {
	entries []api.HistoryEntry
	loading bool
	errText string
	offset  int
	width   int
	height  int
}

// NewHistoryModel creates an empty history screen in the loading state.
func NewHistoryModel(width, height int) HistoryModel {
	return HistoryModel{loading: true, width: width, height: height}
}

// Init triggers the initial history fetch.
func (m HistoryModel) Init() tea.Cmd {
	return func() tea.Msg { return RefreshHistoryMsg{} }
}

// SetEntries replaces the listing after a fetch.
func (m HistoryModel) SetEntries(entries []api.HistoryEntry, err error) HistoryModel {
	m.loading = false
	m.offset = 0
	if err != nil {
		m.errText = err.Error()
		return m
	}
	m.errText = ""
	m.entries = entries
	return m
}

// Update handles messages for the history view.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyUp:
			if m.offset > 0 {
				m.offset--
			}
		case tui.KeyDown:
			if m.offset < len(m.entries)-1 {
				m.offset++
			}
		case "r":
			m.loading = true
			return m, func() tea.Msg { return RefreshHistoryMsg{} }
		case "x":
			m.loading = true
			return m, func() tea.Msg { return ClearHistoryMsg{} }
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the history view.
func (m HistoryModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("History"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(tui.DimStyle.Render("Loading..."))
		b.WriteString("\n")
	case m.errText != "":
		b.WriteString(tui.ErrorStyle.Render(m.errText))
		b.WriteString("\n")
	case len(m.entries) == 0:
		b.WriteString(tui.DimStyle.Render("No analyses yet."))
		b.WriteString("\n")
	default:
		visible := m.height - 12
		if visible < 3 {
			visible = 3
		}
		end := m.offset + visible
		if end > len(m.entries) {
			end = len(m.entries)
		}
		for _, e := range m.entries[m.offset:end] {
			when := ""
			if e.Timestamp != nil {
				when = e.Timestamp.Local().Format("01-02 15:04")
			}
			badge := tui.LabelEasyBadge
			if e.Label == api.LabelDifficult {
				badge = tui.LabelDifficultBadge
			}
			line := fmt.Sprintf("  %-11s %s %.2f  %s", when, badge, e.Score, clip(e.Text, m.width-30))
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render(fmt.Sprintf("%d entries", len(m.entries))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("↑/↓: Scroll    r: Refresh    x: Clear all    Tab: Switch tabs"))

	return tui.BoxStyle.Width(m.width - 4).Render(b.String())
}

// clip shortens s to at most n runes for single-line display.
func clip(s string, n int) string {
	if n < 10 {
		n = 10
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
