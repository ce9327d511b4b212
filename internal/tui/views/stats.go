// stats.go renders the server-computed statistics aggregate.
package views

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alprnalcri/dyslexia-cli/internal/api"
	"github.com/alprnalcri/dyslexia-cli/internal/tui"
)

// RefreshStatsMsg asks the app to re-fetch statistics.
type RefreshStatsMsg struct{}

// StatsModel is the view model for the statistics screen.
type StatsModel struct {
	stats   *api.Statistics
	loading bool
	errText string
	width   int
	height  int
}

// NewStatsModel creates an empty statistics screen in the loading state.
func NewStatsModel(width, height int) StatsModel {
	return StatsModel{loading: true, width: width, height: height}
}

// Init triggers the initial statistics fetch.
func (m StatsModel) Init() tea.Cmd {
	return func() tea.Msg { return RefreshStatsMsg{} }
}

// SetStats replaces the aggregate after a fetch.
func (m StatsModel) SetStats(stats *api.Statistics, err error) StatsModel {
	m.loading = false
	if err != nil {
		m.errText = err.Error()
		return m
	}
	m.errText = ""
	m.stats = stats
	return m
}

// Update handles messages for the statistics view.
func (m StatsModel) Update(msg tea.Msg) (StatsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, func() tea.Msg { return RefreshStatsMsg{} }
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the statistics view.
func (m StatsModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Statistics"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(tui.DimStyle.Render("Loading..."))
		b.WriteString("\n")
	case m.errText != "":
		b.WriteString(tui.ErrorStyle.Render(m.errText))
		b.WriteString("\n")
	case m.stats == nil || m.stats.TotalTexts == 0:
		b.WriteString(tui.DimStyle.Render("Nothing analyzed yet."))
		b.WriteString("\n")
	default:
		b.WriteString(fmt.Sprintf("Texts analyzed:  %d\n", m.stats.TotalTexts))
		b.WriteString(fmt.Sprintf("Average score:   %.2f\n", m.stats.AverageScore))

		labels := make([]string, 0, len(m.stats.LabelCounts))
		for label := range m.stats.LabelCounts {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			b.WriteString(fmt.Sprintf("%-16s %d\n", label+":", m.stats.LabelCounts[label]))
		}

		if m.stats.LastAnalysis != nil {
			b.WriteString(fmt.Sprintf("Last analysis:   %s\n",
				m.stats.LastAnalysis.Local().Format("2006-01-02 15:04")))
		}
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("r: Refresh    Tab: Switch tabs    Ctrl+C: Exit"))

	return tui.BoxStyle.Width(m.width - 4).Render(b.String())
}
