// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/alprnalcri/dyslexia-cli/internal/analyze"
	"github.com/alprnalcri/dyslexia-cli/internal/api"
)

// ============================================================================
// Session Messages
// ============================================================================

// LoginResultMsg carries the outcome of a login attempt.
type LoginResultMsg struct {
	Username string
	Err      error
}

// ============================================================================
// Analysis Messages
// ============================================================================

// AnalysisDoneMsg carries the outcome of one analysis workflow run.
type AnalysisDoneMsg struct {
	Result *analyze.Result
	Err    error
}

// ============================================================================
// History & Statistics Messages
// ============================================================================

// HistoryLoadedMsg carries the fetched history listing.
type HistoryLoadedMsg struct {
	Entries []api.HistoryEntry
	Err     error
}

// HistoryClearedMsg signals that the history was cleared on the server.
type HistoryClearedMsg struct {
	Err error
}

// StatsLoadedMsg carries the fetched statistics aggregate.
type StatsLoadedMsg struct {
	Stats *api.Statistics
	Err   error
}
