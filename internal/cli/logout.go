// logout.go implements the "dyslexia logout" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alprnalcri/dyslexia-cli/internal/log"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and discard the stored session token",
	RunE:  runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	// Idempotent: signing out while signed out is fine.
	if err := a.session.SignOut(cmd.Context()); err != nil {
		return err
	}

	_ = a.logger.Append(log.LogEvent{Event: log.EventSignOut})
	fmt.Println("Signed out.")
	return nil
}
