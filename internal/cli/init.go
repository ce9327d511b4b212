// init.go implements the "dyslexia init" command creating config.yaml.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alprnalcri/dyslexia-cli/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the default configuration",
	Long: `Write a config.yaml with default settings to the app directory
(~/.dyslexia, or DYSLEXIA_HOME if set). Existing config is not overwritten
unless --force is given.`,
	RunE: runInit,
}

var (
	serverFlag    string
	forceInitFlag bool
)

func init() {
	initCmd.Flags().StringVar(&serverFlag, "server", "", "Analysis service base URL")
	initCmd.Flags().BoolVar(&forceInitFlag, "force", false, "Overwrite an existing config.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	home, err := config.Home()
	if err != nil {
		return err
	}

	if _, err := config.ReadConfig(home); err == nil && !forceInitFlag {
		return fmt.Errorf("config already exists in %s (use --force to overwrite)", home)
	}

	cfg := config.DefaultConfig()
	if serverFlag != "" {
		cfg.Server.URL = serverFlag
	}

	if err := config.WriteConfig(home, cfg); err != nil {
		return err
	}

	fmt.Printf("Initialized %s\n", home)
	fmt.Printf("  server: %s\n", cfg.Server.URL)
	fmt.Printf("  method: %s\n", cfg.Analyze.Method)
	return nil
}
