package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/patternpath/pagepatch/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of each lesson page",
	Long: `Reads every document in the corpus and reports how far it has
progressed through the pipeline, without changing anything.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if batchDriver == nil {
		return errors.New("batch driver not configured")
	}

	statuses, err := batchDriver.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}
	if len(statuses) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	s := stylesFor(cmd.OutOrStdout())
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("FILE", "STATE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Title
			}
			if col == 1 && row < len(statuses) && statuses[row].State == domain.StateDone {
				return s.Success
			}
			return lipgloss.NewStyle()
		})
	done := 0
	for _, st := range statuses {
		t.Row(st.File, st.State.String())
		if st.State == domain.StateDone {
			done++
		}
	}

	cmd.Println(t.Render())
	cmd.Printf("%d of %d documents done\n", done, len(statuses))
	return nil
}
