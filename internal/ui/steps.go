// Package ui provides terminal UI components for the dyslexia CLI.
// This file implements the step display shown while an analysis runs.
package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// StepStatus represents the state of a single workflow step.
type StepStatus int

const (
	StatusPending   StepStatus = iota
	StatusRunning              // Currently in flight
	StatusCompleted            // Finished successfully
	StatusDegraded             // Failed but the workflow continued
	StatusFailed               // Failed and aborted the workflow
	StatusSkipped              // Not needed for this text
)

// StepState holds the display state of a single step.
type StepState struct {
	ID      string
	Title   string
	Status  StepStatus
	Detail  string
	Elapsed time.Duration
}

// StepDisplay manages a live-updating terminal view of the analysis
// workflow (classify, simplify, save).
type StepDisplay struct {
	mu          sync.Mutex
	title       string
	steps       []*StepState
	stepIndex   map[string]int
	started     bool
	isTTY       bool
	linesDrawn  int
	startTimes  map[string]time.Time
	lastPrinted map[string]StepStatus // tracks last printed status per step (non-TTY)
}

// NewStepDisplay creates a StepDisplay with the given title line.
func NewStepDisplay(title string) *StepDisplay {
	return &StepDisplay{
		title:       title,
		stepIndex:   make(map[string]int),
		startTimes:  make(map[string]time.Time),
		lastPrinted: make(map[string]StepStatus),
		isTTY:       term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// AddStep registers a step for progress tracking.
func (p *StepDisplay) AddStep(id, title string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	state := &StepState{
		ID:     id,
		Title:  title,
		Status: StatusPending,
	}
	p.stepIndex[id] = len(p.steps)
	p.steps = append(p.steps, state)
}

// Start draws the initial display.
func (p *StepDisplay) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.started = true
	p.render()
}

// UpdateStep updates a step's status and re-renders the display.
func (p *StepDisplay) UpdateStep(id string, status StepStatus, detail string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx, ok := p.stepIndex[id]
	if !ok {
		return
	}

	step := p.steps[idx]
	step.Status = status
	step.Detail = detail

	switch status {
	case StatusRunning:
		p.startTimes[id] = time.Now()
	case StatusCompleted, StatusDegraded, StatusFailed, StatusSkipped:
		if start, ok := p.startTimes[id]; ok {
			step.Elapsed = time.Since(start)
		}
	}

	if p.started {
		p.render()
	}
}

// Finish moves the cursor below the display.
func (p *StepDisplay) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isTTY && p.linesDrawn > 0 {
		fmt.Print("\n")
	}
}

// render draws or redraws the display.
func (p *StepDisplay) render() {
	if !p.isTTY {
		p.renderPlain()
		return
	}
	p.renderTTY()
}

// renderTTY draws the display using ANSI escape codes for in-place updates.
func (p *StepDisplay) renderTTY() {
	if p.linesDrawn > 0 {
		fmt.Printf("\033[%dA", p.linesDrawn)
	}

	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("\033[2K\033[1m%s\033[0m\n", p.title))
	buf.WriteString("\033[2K\n")

	for _, step := range p.steps {
		buf.WriteString("\033[2K")
		buf.WriteString(formatStepLine(step, p.startTimes))
		buf.WriteString("\n")
	}

	fmt.Print(buf.String())
	p.linesDrawn = len(p.steps) + 2 // title + blank + steps
}

// renderPlain writes non-TTY output (for CI/piping).
// Only prints on status transitions to avoid duplicate lines.
func (p *StepDisplay) renderPlain() {
	for _, step := range p.steps {
		if step.Status == StatusPending {
			continue
		}
		if prev, seen := p.lastPrinted[step.ID]; seen && prev == step.Status {
			continue
		}
		fmt.Println(formatStepLinePlain(step))
		p.lastPrinted[step.ID] = step.Status
	}
}

// formatStepLine formats a single step line with ANSI colors and icons.
func formatStepLine(step *StepState, startTimes map[string]time.Time) string {
	icon := statusIcon(step.Status)
	detail := statusDetail(step, startTimes)
	return fmt.Sprintf("  %s %-10s %s", icon, step.Title, detail)
}

// formatStepLinePlain formats a step line for non-TTY output.
func formatStepLinePlain(step *StepState) string {
	var status string
	switch step.Status {
	case StatusRunning:
		status = "RUNNING"
	case StatusCompleted:
		status = fmt.Sprintf("DONE [%s]", formatDuration(step.Elapsed))
	case StatusDegraded:
		status = "DEGRADED"
	case StatusFailed:
		status = "FAILED"
	case StatusSkipped:
		status = "SKIPPED"
	default:
		status = "PENDING"
	}

	line := fmt.Sprintf("[%s] %s", status, step.Title)
	if step.Detail != "" {
		line += " - " + step.Detail
	}
	return line
}

// statusIcon returns the status icon for a step.
func statusIcon(status StepStatus) string {
	switch status {
	case StatusCompleted:
		return "\033[32m✓\033[0m" // green check
	case StatusRunning:
		return "\033[33m▸\033[0m" // yellow arrow
	case StatusDegraded:
		return "\033[33m≈\033[0m" // yellow approx
	case StatusFailed:
		return "\033[31m✗\033[0m" // red X
	case StatusSkipped:
		return "\033[90m⊘\033[0m" // dim skip
	default:
		return "\033[90m○\033[0m" // dim circle
	}
}

// statusDetail returns the right-side detail text for a step.
func statusDetail(step *StepState, startTimes map[string]time.Time) string {
	switch step.Status {
	case StatusCompleted:
		return fmt.Sprintf("\033[90m[%s]\033[0m", formatDuration(step.Elapsed))
	case StatusRunning:
		elapsed := time.Since(startTimes[step.ID])
		return fmt.Sprintf("\033[33m[%s]\033[0m", formatDuration(elapsed))
	case StatusDegraded:
		return fmt.Sprintf("\033[33m[%s]\033[0m", step.Detail)
	case StatusFailed:
		return "\033[31m[failed]\033[0m"
	case StatusSkipped:
		return "\033[90m[skipped]\033[0m"
	default:
		return "\033[90m[pending]\033[0m"
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", m, s)
}
