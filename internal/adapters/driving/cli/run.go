package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patternpath/pagepatch/internal/core/domain"
	"github.com/patternpath/pagepatch/internal/core/ports/driving"
)

var runCmd = &cobra.Command{
	Use:   "run [files...]",
	Short: "Patch the lesson pages in the corpus",
	Long: `Runs the page pipeline over every document in the corpus directory.
If file names are given, only those documents are processed.

A document that is missing an expected anchor is reported and skipped;
the rest of the corpus is still processed. Only a missing corpus
directory fails the command.`,
	RunE: runRun,
}

var (
	runSteps  []string
	runDryRun bool
)

func init() {
	runCmd.Flags().StringSliceVar(&runSteps, "steps", nil,
		"transitions to run: rows, widgets, scripts, cleanup, animations")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "report what would change without writing")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if batchDriver == nil {
		return errors.New("batch driver not configured")
	}

	steps, err := domain.ParseTransitions(runSteps)
	if err != nil {
		return err
	}

	report, err := batchDriver.Run(cmd.Context(), driving.RunOptions{
		Files:  args,
		Steps:  steps,
		DryRun: runDryRun,
	})
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	printReport(cmd, report)
	return nil
}
