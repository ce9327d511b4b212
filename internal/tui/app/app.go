// Package app composes the TUI views into the top-level Bubble Tea model.
package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alprnalcri/dyslexia-cli/internal/analyze"
	"github.com/alprnalcri/dyslexia-cli/internal/api"
	"github.com/alprnalcri/dyslexia-cli/internal/config"
	"github.com/alprnalcri/dyslexia-cli/internal/session"
	"github.com/alprnalcri/dyslexia-cli/internal/tui"
	"github.com/alprnalcri/dyslexia-cli/internal/tui/views"
)

// viewState represents the current screen of the TUI.
type viewState int

const (
	stateLogin viewState = iota
	stateTabs
	stateResult
)

// Tab represents the active tab once signed in.
type Tab int

const (
	TabAnalyze Tab = iota
	TabHistory
	TabStats
)

var tabNames = []string{"Analyze", "History", "Statistics"}

// App is the top-level TUI model.
type App struct {
	cfg     *config.Config
	session *session.Controller
	api     *api.Client
	runner  *analyze.Runner

	state viewState
	tab   Tab

	login   views.LoginModel
	analyze views.AnalyzeModel
	result  views.ResultModel
	history views.HistoryModel
	stats   views.StatsModel

	width  int
	height int
}

// New creates the TUI model. The session controller must already be
// bootstrapped so the initial screen can be chosen from its state.
func New(cfg *config.Config, ctrl *session.Controller, client *api.Client, runner *analyze.Runner) *App {
	a := &App{
		cfg:     cfg,
		session: ctrl,
		api:     client,
		runner:  runner,
		width:   80,
		height:  24,
	}

	a.login = views.NewLoginModel(a.width, a.height)
	a.analyze = views.NewAnalyzeModel(cfg.Analyze.Method, a.width, a.height)
	a.history = views.NewHistoryModel(a.width, a.height)
	a.stats = views.NewStatsModel(a.width, a.height)

	if ctrl.State() == session.StateAuthenticated {
		a.state = stateTabs
	} else {
		a.state = stateLogin
	}
	return a
}

// Init returns the initial command.
func (a *App) Init() tea.Cmd {
	if a.state == stateLogin {
		return a.login.Init()
	}
	return tea.Batch(a.analyze.Init(), a.history.Init(), a.stats.Init())
}

// Update routes messages to the active view and runs API commands.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyCtrlC:
			return a, tea.Quit
		case tui.KeyTab:
			if a.state == stateTabs {
				a.tab = (a.tab + 1) % 3
				return a, nil
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Every view tracks the window size.
		a.login, _ = a.login.Update(msg)
		a.analyze, _ = a.analyze.Update(msg)
		a.history, _ = a.history.Update(msg)
		a.stats, _ = a.stats.Update(msg)
		if a.state == stateResult {
			a.result, _ = a.result.Update(msg)
		}
		return a, nil

	case views.SubmitLoginMsg:
		return a, a.loginCmd(msg.Username, msg.Password)

	case tui.LoginResultMsg:
		if msg.Err != nil {
			a.login = a.login.SetError(loginErrText(msg.Err))
			return a, nil
		}
		a.state = stateTabs
		a.tab = TabAnalyze
		return a, tea.Batch(a.analyze.Init(), a.history.Init(), a.stats.Init())

	case views.SubmitAnalysisMsg:
		return a, a.analysisCmd(msg.Text, msg.Method)

	case tui.AnalysisDoneMsg:
		if msg.Err != nil {
			if errors.Is(msg.Err, api.ErrUnauthorized) {
				return a, a.sessionExpired()
			}
			a.analyze = a.analyze.SetError(msg.Err.Error())
			return a, nil
		}
		a.analyze = a.analyze.Reset()
		a.result = views.NewResultModel(msg.Result, a.width, a.height)
		a.state = stateResult
		return a, nil

	case views.BackMsg:
		a.state = stateTabs
		a.tab = TabAnalyze
		return a, nil

	case views.RefreshHistoryMsg:
		return a, a.historyCmd()

	case tui.HistoryLoadedMsg:
		if errors.Is(msg.Err, api.ErrUnauthorized) {
			return a, a.sessionExpired()
		}
		a.history = a.history.SetEntries(msg.Entries, msg.Err)
		return a, nil

	case views.ClearHistoryMsg:
		return a, a.clearHistoryCmd()

	case tui.HistoryClearedMsg:
		if errors.Is(msg.Err, api.ErrUnauthorized) {
			return a, a.sessionExpired()
		}
		return a, a.historyCmd()

	case views.RefreshStatsMsg:
		return a, a.statsCmd()

	case tui.StatsLoadedMsg:
		if errors.Is(msg.Err, api.ErrUnauthorized) {
			return a, a.sessionExpired()
		}
		a.stats = a.stats.SetStats(msg.Stats, msg.Err)
		return a, nil
	}

	return a.routeToActive(msg)
}

// routeToActive forwards msg to the view that currently has focus.
func (a *App) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.state {
	case stateLogin:
		a.login, cmd = a.login.Update(msg)
	case stateResult:
		a.result, cmd = a.result.Update(msg)
	case stateTabs:
		switch a.tab {
		case TabAnalyze:
			a.analyze, cmd = a.analyze.Update(msg)
		case TabHistory:
			a.history, cmd = a.history.Update(msg)
		case TabStats:
			a.stats, cmd = a.stats.Update(msg)
		}
	}
	return a, cmd
}

// View renders the active screen with the tab bar.
func (a *App) View() string {
	switch a.state {
	case stateLogin:
		return a.login.View()
	case stateResult:
		return a.result.View()
	}

	var body string
	switch a.tab {
	case TabAnalyze:
		body = a.analyze.View()
	case TabHistory:
		body = a.history.View()
	case TabStats:
		body = a.stats.View()
	}

	return a.tabBar() + "\n" + body
}

// tabBar renders the tab strip above the active view.
func (a *App) tabBar() string {
	rendered := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == a.tab {
			rendered[i] = tui.ActiveTabStyle.Render(name)
		} else {
			rendered[i] = tui.InactiveTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// sessionExpired drops back to the login screen after a forced
// sign-out. The credential is already cleared by the gateway.
func (a *App) sessionExpired() tea.Cmd {
	a.state = stateLogin
	a.login = views.NewLoginModel(a.width, a.height).SetError("session expired; sign in again")
	return a.login.Init()
}

// loginCmd exchanges credentials for a token and signs the session in.
func (a *App) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		token, err := a.api.Login(ctx, username, password)
		if err != nil {
			return tui.LoginResultMsg{Username: username, Err: err}
		}
		if err := a.session.SignIn(ctx, token); err != nil {
			return tui.LoginResultMsg{Username: username, Err: err}
		}
		return tui.LoginResultMsg{Username: username}
	}
}

// analysisCmd runs the full analysis workflow off the UI loop.
func (a *App) analysisCmd(text, method string) tea.Cmd {
	return func() tea.Msg {
		result, err := a.runner.Analyze(context.Background(), text, method)
		return tui.AnalysisDoneMsg{Result: result, Err: err}
	}
}

func (a *App) historyCmd() tea.Cmd {
	return func() tea.Msg {
		entries, err := a.api.History(context.Background())
		return tui.HistoryLoadedMsg{Entries: entries, Err: err}
	}
}

func (a *App) clearHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		err := a.api.ClearHistory(context.Background())
		return tui.HistoryClearedMsg{Err: err}
	}
}

func (a *App) statsCmd() tea.Cmd {
	return func() tea.Msg {
		stats, err := a.api.Statistics(context.Background())
		return tui.StatsLoadedMsg{Stats: stats, Err: err}
	}
}

// loginErrText maps login failures to a short form message.
func loginErrText(err error) string {
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) {
		switch {
		case reqErr.Status == 401:
			return "wrong username or password"
		case reqErr.Status == 0:
			return "cannot reach the analysis service"
		}
	}
	return err.Error()
}
