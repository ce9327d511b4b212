// Package analyze composes the classify -> simplify -> persist workflow
// over the API gateway. It holds no persistent state of its own.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alprnalcri/dyslexia-cli/internal/api"
	"github.com/alprnalcri/dyslexia-cli/internal/log"
)

// ErrEmptyText is returned when the submitted text is empty or
// whitespace-only. No remote call is made in that case.
var ErrEmptyText = errors.New("analyze: text is empty")

// Gateway is the slice of the API client the workflow needs.
type Gateway interface {
	Classify(ctx context.Context, text string) (api.Prediction, error)
	Simplify(ctx context.Context, text, method string) (string, error)
	SaveHistory(ctx context.Context, entry api.HistoryEntry) error
}

// Result is the outcome of one analysis. Simplified is nil when no
// usable rewrite was produced.
type Result struct {
	Text       string
	Score      float64
	Label      string
	Simplified *string
}

// Runner drives the analysis workflow.
type Runner struct {
	gw     Gateway
	logger *log.Logger // may be nil
}

// NewRunner creates a Runner over the given gateway. logger may be nil
// to disable event logging.
func NewRunner(gw Gateway, logger *log.Logger) *Runner {
	return &Runner{gw: gw, logger: logger}
}

// simplifyOutcome makes the degrade-gracefully decision visible in the
// workflow: ok is false when the step failed or produced nothing, and
// the analysis continues without a rewrite.
type simplifyOutcome struct {
	text string
	ok   bool
}

// Analyze runs classify -> simplify (when Difficult) -> save, strictly
// in that order, and returns the merged result.
//
// Classification and persistence failures propagate to the caller; a
// simplification failure only degrades the result, never aborts it.
func (r *Runner) Analyze(ctx context.Context, text, method string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	started := time.Now()
	r.log(log.LogEvent{Event: log.EventAnalysisStarted, Method: method})

	pred, err := r.gw.Classify(ctx, text)
	if err != nil {
		r.log(log.LogEvent{Event: log.EventRequestFailed, Operation: "classify", Error: err.Error()})
		return nil, err
	}

	var outcome simplifyOutcome
	if pred.Label == api.LabelDifficult {
		outcome = r.trySimplify(ctx, text, method)
	}

	result := &Result{
		Text:  text,
		Score: pred.Score,
		Label: pred.Label,
	}
	if outcome.ok {
		simplified := outcome.text
		result.Simplified = &simplified
	}

	entry := api.HistoryEntry{
		Text:       text,
		Score:      result.Score,
		Label:      result.Label,
		Simplified: result.Simplified,
	}
	if err := r.gw.SaveHistory(ctx, entry); err != nil {
		r.log(log.LogEvent{Event: log.EventRequestFailed, Operation: "save_history", Error: err.Error()})
		return nil, fmt.Errorf("saving history entry: %w", err)
	}

	r.log(log.LogEvent{
		Event:      log.EventAnalysisComplete,
		Label:      result.Label,
		Score:      result.Score,
		Method:     method,
		DurationMs: time.Since(started).Milliseconds(),
	})

	return result, nil
}

// trySimplify runs the optional simplify step. An error or an empty
// rewrite both leave the result unsimplified.
func (r *Runner) trySimplify(ctx context.Context, text, method string) simplifyOutcome {
	simplified, err := r.gw.Simplify(ctx, text, method)
	if err != nil {
		r.log(log.LogEvent{Event: log.EventSimplifyDegraded, Method: method, Error: err.Error()})
		return simplifyOutcome{}
	}
	if strings.TrimSpace(simplified) == "" {
		r.log(log.LogEvent{Event: log.EventSimplifyDegraded, Method: method, Error: "empty simplification"})
		return simplifyOutcome{}
	}

	return simplifyOutcome{text: simplified, ok: true}
}

func (r *Runner) log(event log.LogEvent) {
	if r.logger == nil {
		return
	}
	_ = r.logger.Append(event)
}
