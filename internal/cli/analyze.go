// analyze.go implements the "dyslexia analyze" command which drives the
// classify -> simplify -> save workflow for one text.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alprnalcri/dyslexia-cli/internal/analyze"
	"github.com/alprnalcri/dyslexia-cli/internal/api"
	"github.com/alprnalcri/dyslexia-cli/internal/ui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Analyze the readability of a text",
	Long: `Classify the readability of a Turkish text. Texts classified as
Difficult are additionally simplified; every completed analysis is saved
to your history on the server.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var methodFlag string

func init() {
	analyzeCmd.Flags().StringVar(&methodFlag, "method", "",
		"Simplification method: mt5 or openai (default from config)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text := args[0]
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text is empty")
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	method := methodFlag
	if method == "" {
		method = a.cfg.Analyze.Method
	}
	if method != api.MethodMT5 && method != api.MethodOpenAI {
		return fmt.Errorf("unknown method %q (want %s or %s)", method, api.MethodMT5, api.MethodOpenAI)
	}

	display := ui.NewStepDisplay(fmt.Sprintf("Analyzing %q", truncate(text, 40)))
	display.AddStep("classify", "classify")
	display.AddStep("simplify", "simplify")
	display.AddStep("save", "save")
	display.Start()

	tracked := &trackedGateway{gw: a.api, display: display}
	runner := analyze.NewRunner(tracked, a.logger)
	result, err := runner.Analyze(cmd.Context(), text, method)
	tracked.finish()
	display.Finish()
	if err != nil {
		return friendlyErr(err)
	}

	fmt.Printf("\nLabel: %s (score %.2f)\n", result.Label, result.Score)
	if result.Simplified != nil {
		fmt.Printf("Simplified: %s\n", *result.Simplified)
	} else if result.Label == api.LabelDifficult {
		fmt.Println("Simplified: unavailable (simplification failed)")
	}
	return nil
}

// trackedGateway decorates the API client so each workflow step is
// reflected in the step display as it runs.
type trackedGateway struct {
	gw      analyze.Gateway
	display *ui.StepDisplay

	simplifyRan bool
}

func (g *trackedGateway) Classify(ctx context.Context, text string) (api.Prediction, error) {
	g.display.UpdateStep("classify", ui.StatusRunning, "")
	pred, err := g.gw.Classify(ctx, text)
	if err != nil {
		g.display.UpdateStep("classify", ui.StatusFailed, err.Error())
		return pred, err
	}
	g.display.UpdateStep("classify", ui.StatusCompleted, pred.Label)
	return pred, nil
}

func (g *trackedGateway) Simplify(ctx context.Context, text, method string) (string, error) {
	g.simplifyRan = true
	g.display.UpdateStep("simplify", ui.StatusRunning, "")
	simplified, err := g.gw.Simplify(ctx, text, method)
	if err != nil {
		// The workflow continues without a rewrite.
		g.display.UpdateStep("simplify", ui.StatusDegraded, "degraded")
		return simplified, err
	}
	g.display.UpdateStep("simplify", ui.StatusCompleted, "")
	return simplified, nil
}

func (g *trackedGateway) SaveHistory(ctx context.Context, entry api.HistoryEntry) error {
	g.display.UpdateStep("save", ui.StatusRunning, "")
	if err := g.gw.SaveHistory(ctx, entry); err != nil {
		g.display.UpdateStep("save", ui.StatusFailed, err.Error())
		return err
	}
	g.display.UpdateStep("save", ui.StatusCompleted, "")
	return nil
}

// finish marks the simplify step skipped when the text never needed it.
func (g *trackedGateway) finish() {
	if !g.simplifyRan {
		g.display.UpdateStep("simplify", ui.StatusSkipped, "")
	}
}

// truncate shortens s for display.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
