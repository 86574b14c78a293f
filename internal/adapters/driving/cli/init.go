package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/patternpath/pagepatch/internal/core/domain"
)

var initCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a configuration file with the default settings",
	Annotations: map[string]string{skipSetup: "true"},
	RunE:        runInit,
}

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	if app == nil || app.WriteConfig == nil {
		return errors.New("application not configured")
	}

	path := configPath
	if path == "" {
		path = "pagepatch.toml"
	}
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := domain.DefaultConfig()
	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}
	if err := app.WriteConfig(path, cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	cmd.Printf("Wrote %s\n", path)
	return nil
}
