package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patternpath/pagepatch/internal/core/ports/driving"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate lesson pages from the master template",
	Long: `Creates one page per entry of the descriptor table by copying the master
template and substituting its title, heading, description and problem
count. New pages start with placeholder rows.

The descriptor table is read from --descriptors, the generate.descriptors
config key, or the built-in list.`,
	RunE: runGenerate,
}

var (
	generateTemplate    string
	generateDescriptors string
	generateDryRun      bool
)

func init() {
	generateCmd.Flags().StringVar(&generateTemplate, "template", "", "master template file name in the corpus")
	generateCmd.Flags().StringVar(&generateDescriptors, "descriptors", "", "YAML or TOML descriptor table")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "report what would be written without writing")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if batchDriver == nil || app == nil || app.LoadDescriptors == nil {
		return errors.New("batch driver not configured")
	}

	path := config.DescriptorsPath
	if generateDescriptors != "" {
		path = generateDescriptors
	}
	descriptors, err := app.LoadDescriptors(path)
	if err != nil {
		return fmt.Errorf("load descriptors: %w", err)
	}

	template := config.TemplateName
	if generateTemplate != "" {
		template = generateTemplate
	}

	report, err := batchDriver.Generate(cmd.Context(), driving.GenerateOptions{
		Template:    template,
		Descriptors: descriptors,
		DryRun:      generateDryRun,
	})
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	printReport(cmd, report)
	return nil
}
