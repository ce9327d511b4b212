// history.go implements the "dyslexia history" command group:
// listing, clearing, and exporting the server-side analysis history.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alprnalcri/dyslexia-cli/internal/log"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your analysis history",
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete your entire analysis history",
	RunE:  runHistoryClear,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export your history as a CSV file",
	RunE:  runHistoryExport,
}

var exportOutFlag string

func init() {
	historyExportCmd.Flags().StringVar(&exportOutFlag, "out", "",
		"Output file (default from config, '-' for stdout)")

	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	entries, err := a.api.History(cmd.Context())
	if err != nil {
		return friendlyErr(err)
	}

	if len(entries) == 0 {
		fmt.Println("No analyses yet. Run: dyslexia analyze \"<text>\"")
		return nil
	}

	for _, e := range entries {
		when := ""
		if e.Timestamp != nil {
			when = e.Timestamp.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-16s  %-9s  %.2f  %s\n", when, e.Label, e.Score, truncate(e.Text, 60))
		if e.Simplified != nil {
			fmt.Printf("  %-16s  %s\n", "", truncate("→ "+*e.Simplified, 70))
		}
	}
	fmt.Printf("\n%d entries\n", len(entries))
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.api.ClearHistory(cmd.Context()); err != nil {
		return friendlyErr(err)
	}

	_ = a.logger.Append(log.LogEvent{Event: log.EventHistoryCleared})
	fmt.Println("History cleared.")
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	doc, err := a.api.ExportHistory(cmd.Context())
	if err != nil {
		return friendlyErr(err)
	}

	out := exportOutFlag
	if out == "" {
		out = a.cfg.History.ExportFile
	}
	if out == "-" {
		fmt.Print(doc)
		return nil
	}

	if err := os.WriteFile(out, []byte(doc), 0644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}

	abs, err := filepath.Abs(out)
	if err != nil {
		abs = out
	}
	_ = a.logger.Append(log.LogEvent{Event: log.EventHistoryExported})
	fmt.Printf("Exported history to %s\n", abs)
	return nil
}
