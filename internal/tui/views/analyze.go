// analyze.go renders the text-entry screen and the in-flight spinner.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alprnalcri/dyslexia-cli/internal/api"
	"github.com/alprnalcri/dyslexia-cli/internal/tui"
)

// SubmitAnalysisMsg is sent when the user submits a text for analysis.
type SubmitAnalysisMsg struct {
	Text   string
	Method string
}

// AnalyzeModel is the view model for the analyze screen.
type AnalyzeModel struct {
	textarea textarea.Model
	spinner  spinner.Model
	method   string
	busy     bool
	errText  string
	width    int
	height   int
}

// NewAnalyzeModel creates an analyze screen with the given default
// simplification method.
func NewAnalyzeModel(method string, width, height int) AnalyzeModel {
	ta := textarea.New()
	ta.Placeholder = "Analiz edilecek metni yazın..."
	ta.CharLimit = 5000
	ta.SetWidth(width - 10)
	ta.SetHeight(6)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return AnalyzeModel{
		textarea: ta,
		spinner:  sp,
		method:   method,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the analyze view.
func (m AnalyzeModel) Init() tea.Cmd {
	return textarea.Blink
}

// SetError displays a failure under the form and re-enables input.
// Submission stays disabled while a request is in flight, so rapid
// repeated submissions cannot overlap.
func (m AnalyzeModel) SetError(text string) AnalyzeModel {
	m.errText = text
	m.busy = false
	return m
}

// Reset clears the form after a completed analysis.
func (m AnalyzeModel) Reset() AnalyzeModel {
	m.textarea.Reset()
	m.busy = false
	m.errText = ""
	return m
}

// Update handles messages for the analyze view.
func (m AnalyzeModel) Update(msg tea.Msg) (AnalyzeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+s":
			// Enter inside the textarea inserts a newline; ctrl+s submits.
			text := strings.TrimSpace(m.textarea.Value())
			if text == "" {
				m.errText = "enter a text first"
				return m, nil
			}
			m.busy = true
			m.errText = ""
			method := m.method
			return m, tea.Batch(
				m.spinner.Tick,
				func() tea.Msg {
					return SubmitAnalysisMsg{Text: m.textarea.Value(), Method: method}
				},
			)
		case "ctrl+t":
			// Toggle simplification method.
			if m.method == api.MethodMT5 {
				m.method = api.MethodOpenAI
			} else {
				m.method = api.MethodMT5
			}
			return m, nil
		}

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textarea.SetWidth(msg.Width - 10)
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View renders the analyze view.
func (m AnalyzeModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Analyze"))
	b.WriteString("\n\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Method: %s", tui.SuccessStyle.Render(m.method)))
	b.WriteString("\n")

	if m.busy {
		b.WriteString(fmt.Sprintf("\n%s Analyzing...\n", m.spinner.View()))
	}
	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(tui.ErrorStyle.Render(m.errText))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Ctrl+S: Analyze    Ctrl+T: Toggle method    Tab: Switch tabs    Ctrl+C: Exit"))

	return tui.BoxStyle.Width(m.width - 4).Render(b.String())
}
