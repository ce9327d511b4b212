// stats.go implements the "dyslexia stats" command showing the
// server-computed aggregate over your history.
package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics over your analyses",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := a.api.Statistics(cmd.Context())
	if err != nil {
		return friendlyErr(err)
	}

	fmt.Println("Statistics")
	fmt.Printf("  Texts analyzed: %d\n", stats.TotalTexts)
	fmt.Printf("  Average score:  %.2f\n", stats.AverageScore)

	labels := make([]string, 0, len(stats.LabelCounts))
	for label := range stats.LabelCounts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		fmt.Printf("  %-14s  %d\n", label+":", stats.LabelCounts[label])
	}

	if stats.LastAnalysis != nil {
		fmt.Printf("  Last analysis:  %s\n", stats.LastAnalysis.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
