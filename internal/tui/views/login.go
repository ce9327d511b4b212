// Package views provides TUI view components for the dyslexia client.
package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alprnalcri/dyslexia-cli/internal/tui"
)

// SubmitLoginMsg is sent when the user submits the login form.
type SubmitLoginMsg struct {
	Username string
	Password string
}

// LoginModel is the view model for the login screen.
type LoginModel struct {
	username textinput.Model
	password textinput.Model
	focused  int // 0 = username, 1 = password
	errText  string
	busy     bool
	width    int
	height   int
}

// NewLoginModel creates a login form.
func NewLoginModel(width, height int) LoginModel {
	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 100
	user.Width = 40
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 100
	pass.Width = 40
	pass.EchoMode = textinput.EchoPassword

	return LoginModel{
		username: user,
		password: pass,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the login view.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetError displays a failure under the form and re-enables input.
func (m LoginModel) SetError(text string) LoginModel {
	m.errText = text
	m.busy = false
	return m
}

// Update handles messages for the login view.
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case tui.KeyTab, tui.KeyDown, tui.KeyUp:
			m.focused = 1 - m.focused
			if m.focused == 0 {
				m.username.Focus()
				m.password.Blur()
			} else {
				m.password.Focus()
				m.username.Blur()
			}
			return m, nil
		case tui.KeyEnter:
			username := strings.TrimSpace(m.username.Value())
			password := m.password.Value()
			if username == "" || password == "" {
				m.errText = "username and password are required"
				return m, nil
			}
			m.busy = true
			m.errText = ""
			return m, func() tea.Msg {
				return SubmitLoginMsg{Username: username, Password: password}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	if m.focused == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

// View renders the login view.
func (m LoginModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Dyslexia Text Analyzer - Sign In"))
	b.WriteString("\n\n")

	b.WriteString(m.username.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(tui.DimStyle.Render("Signing in..."))
		b.WriteString("\n")
	}
	if m.errText != "" {
		b.WriteString(tui.ErrorStyle.Render(m.errText))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Tab: Switch field       Enter: Sign in       Ctrl+C: Exit"))

	return tui.BoxStyle.Width(m.width - 4).Render(b.String())
}
