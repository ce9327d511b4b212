// login.go implements the "dyslexia login" command.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alprnalcri/dyslexia-cli/internal/log"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Sign in to the analysis service",
	Long: `Exchange your username and password for a session token and store it
durably. All later commands use the stored token automatically.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		fmt.Print("Username: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading username: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	if username == "" {
		return fmt.Errorf("username is required")
	}

	password, err := readPassword()
	if err != nil {
		return err
	}

	token, err := a.api.Login(cmd.Context(), username, password)
	if err != nil {
		return friendlyErr(err)
	}

	if err := a.session.SignIn(cmd.Context(), token); err != nil {
		return err
	}

	_ = a.logger.Append(log.LogEvent{Event: log.EventSignIn})
	fmt.Printf("Signed in as %s\n", username)
	return nil
}

// readPassword reads a password without echo when stdin is a terminal,
// falling back to a plain line read otherwise (tests, pipes).
func readPassword() (string, error) {
	fmt.Print("Password: ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
