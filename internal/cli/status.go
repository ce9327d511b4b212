// status.go implements the "dyslexia status" command showing session
// state and service health.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session state and service health",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Println("Dyslexia Status")
	fmt.Printf("  Server:  %s\n", a.cfg.Server.URL)
	fmt.Printf("  Session: %s\n", a.session.State())

	health, err := a.api.Health(cmd.Context())
	if err != nil {
		fmt.Printf("  Health:  unreachable (%v)\n", friendlyErr(err))
		return nil
	}
	fmt.Printf("  Health:  %s (database %s)\n", health.Status, health.Database)
	return nil
}
