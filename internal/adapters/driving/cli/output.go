package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/patternpath/pagepatch/internal/core/domain"
)

// printOutcome writes one line for a document, followed by its notes.
func printOutcome(cmd *cobra.Command, s *Styles, o domain.Outcome) {
	style := s.Status(o.Status)
	if o.Status == domain.StatusPatched {
		line := "Processed " + o.File
		if len(o.Applied) > 0 {
			line += " (" + joinTransitions(o.Applied) + ")"
		}
		cmd.Println(style.Render(line))
	} else {
		cmd.Println(style.Render("Skipping " + o.File + ": " + o.Reason()))
	}
	for _, note := range o.Notes {
		cmd.Println(s.Muted.Render("  note: " + note))
	}
}

// printReport writes every outcome and the summary line.
func printReport(cmd *cobra.Command, report *domain.Report) {
	s := stylesFor(cmd.OutOrStdout())
	for _, o := range report.Outcomes {
		printOutcome(cmd, s, o)
	}

	summary := report.Summary()
	if report.DryRun {
		summary += " (dry run, nothing written)"
	}
	cmd.Println(s.Title.Render(summary))
}

func joinTransitions(ts []domain.Transition) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
