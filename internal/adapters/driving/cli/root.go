// Package cli implements the pagepatch command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patternpath/pagepatch/internal/core/domain"
	"github.com/patternpath/pagepatch/internal/core/ports/driving"
	"github.com/patternpath/pagepatch/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// App connects the commands to the rest of the program. It is provided by
// the composition root before Execute.
type App struct {
	// LoadConfig resolves the configuration file at path.
	LoadConfig func(path string) (domain.Config, error)

	// WriteConfig writes cfg to path.
	WriteConfig func(path string, cfg domain.Config) error

	// LoadDescriptors reads a descriptor table; an empty path means the built-in one.
	LoadDescriptors func(path string) ([]domain.PageDescriptor, error)

	// NewDriver builds the batch driver for cfg.
	NewDriver func(cfg domain.Config) (driving.BatchDriver, error)
}

// skipSetup marks commands that run without a configuration or driver.
const skipSetup = "skip-setup"

var (
	app *App

	// Resolved once per invocation by setup.
	config      domain.Config
	batchDriver driving.BatchDriver
)

// Global flags.
var (
	configPath  string
	corpusDir   string
	dataDir     string
	exclusions  []string
	concurrency int
	verbose     bool
	noColor     bool
)

var rootCmd = &cobra.Command{
	Use:   "pagepatch",
	Short: "Idempotent patcher for lesson pages",
	Long: `pagepatch rewrites a directory of lesson pages in place: inline problem
rows move to data artifacts, progress and credits widgets are tagged,
activation scripts are linked and layout drift is cleaned up.

Every step checks for its own marker first, so running pagepatch again
on an already patched corpus changes nothing.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default pagepatch.toml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "print pipeline progress to stderr")
	flags.StringVar(&corpusDir, "corpus", "", "directory holding the lesson pages")
	flags.StringVar(&dataDir, "data", "", "directory data artifacts are written to")
	flags.StringSliceVar(&exclusions, "exclude", nil, "document names never to touch")
	flags.IntVar(&concurrency, "concurrency", 0, "documents processed at once")
	flags.BoolVar(&noColor, "no-color", false, "disable coloured output")
}

// SetApp installs the wiring used by the commands.
func SetApp(a *App) {
	app = a
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// setup resolves configuration, applies flag overrides and builds the driver.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if cmd.Annotations[skipSetup] != "" {
		return nil
	}
	if app == nil || app.LoadConfig == nil || app.NewDriver == nil {
		return errors.New("application not configured")
	}

	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}

	driver, err := app.NewDriver(cfg)
	if err != nil {
		return err
	}
	config = cfg
	batchDriver = driver

	logger.Debug("corpus=%s data=%s exclusions=%v concurrency=%d",
		cfg.CorpusDir, cfg.DataDir, cfg.Exclusions, cfg.Concurrency)
	return nil
}

// applyFlags overrides configuration with the flags given on the command line.
func applyFlags(cmd *cobra.Command, cfg *domain.Config) error {
	flags := cmd.Flags()
	if flags.Changed("corpus") {
		cfg.CorpusDir = corpusDir
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("exclude") {
		cfg.Exclusions = exclusions
	}
	if flags.Changed("concurrency") {
		if concurrency < 1 {
			return fmt.Errorf("%w: --concurrency must be at least 1", domain.ErrInvalidInput)
		}
		cfg.Concurrency = concurrency
	}
	return nil
}
