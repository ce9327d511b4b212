// result.go renders the outcome of one analysis.
package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alprnalcri/dyslexia-cli/internal/analyze"
	"github.com/alprnalcri/dyslexia-cli/internal/api"
	"github.com/alprnalcri/dyslexia-cli/internal/tui"
)

// BackMsg is sent when the user leaves the result screen.
type BackMsg struct{}

// ResultModel is the view model for the result screen.
type ResultModel struct {
	result *analyze.Result
	width  int
	height int
}

// NewResultModel creates a result screen for a completed analysis.
func NewResultModel(result *analyze.Result, width, height int) ResultModel {
	return ResultModel{result: result, width: width, height: height}
}

// Init returns the initial command for the result view.
func (m ResultModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the result view.
func (m ResultModel) Update(msg tea.Msg) (ResultModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEsc, tui.KeyEnter:
			return m, func() tea.Msg { return BackMsg{} }
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the result view.
func (m ResultModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Analysis Result"))
	b.WriteString("\n\n")

	badge := tui.LabelEasyBadge
	if m.result.Label == api.LabelDifficult {
		badge = tui.LabelDifficultBadge
	}
	b.WriteString(fmt.Sprintf("Label: %s    Score: %.2f\n\n", badge, m.result.Score))

	b.WriteString(tui.DimStyle.Render("Text"))
	b.WriteString("\n")
	b.WriteString(wrap(m.result.Text, m.width-10))
	b.WriteString("\n")

	if m.result.Simplified != nil {
		b.WriteString("\n")
		b.WriteString(tui.SuccessStyle.Render("Simplified"))
		b.WriteString("\n")
		b.WriteString(wrap(*m.result.Simplified, m.width-10))
		b.WriteString("\n")
	} else if m.result.Label == api.LabelDifficult {
		b.WriteString("\n")
		b.WriteString(tui.WarningStyle.Render("Simplification unavailable for this text."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Enter/Esc: Back to analyze"))

	return tui.BoxStyle.Width(m.width - 4).Render(b.String())
}

// wrap breaks text into lines of at most width runes.
func wrap(text string, width int) string {
	if width < 10 {
		width = 10
	}

	var b strings.Builder
	line := 0
	for _, word := range strings.Fields(text) {
		n := len([]rune(word))
		if line > 0 && line+1+n > width {
			b.WriteString("\n")
			line = 0
		} else if line > 0 {
			b.WriteString(" ")
			line++
		}
		b.WriteString(word)
		line += n
	}
	return b.String()
}
