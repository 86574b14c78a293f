package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/patternpath/pagepatch/internal/core/domain"
)

// Theme defines the colour palette for command output.
type Theme struct {
	// Primary is the accent colour for headings.
	Primary lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates patched documents.
	Success lipgloss.Color

	// Warning indicates skipped documents.
	Warning lipgloss.Color

	// Error indicates failures.
	Error lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary: lipgloss.Color("#7C3AED"), // Purple
		Muted:   lipgloss.Color("#6C7086"), // Medium gray
		Success: lipgloss.Color("#A6E3A1"), // Green
		Warning: lipgloss.Color("#F9E2AF"), // Yellow
		Error:   lipgloss.Color("#F38BA8"), // Red
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles creates styles rendering to w. With colour off every style
// renders its input unchanged.
func NewStyles(w io.Writer, theme *Theme, colour bool) *Styles {
	if !colour {
		plain := lipgloss.NewStyle()
		return &Styles{Title: plain, Muted: plain, Success: plain, Warning: plain, Error: plain}
	}
	if theme == nil {
		theme = DefaultTheme()
	}

	r := lipgloss.NewRenderer(w)
	return &Styles{
		Title:   r.NewStyle().Bold(true).Foreground(theme.Primary),
		Muted:   r.NewStyle().Foreground(theme.Muted),
		Success: r.NewStyle().Foreground(theme.Success),
		Warning: r.NewStyle().Foreground(theme.Warning),
		Error:   r.NewStyle().Foreground(theme.Error),
	}
}

// Status returns the style for an outcome status.
func (s *Styles) Status(status domain.OutcomeStatus) lipgloss.Style {
	switch status {
	case domain.StatusPatched:
		return s.Success
	case domain.StatusAnchorMissing, domain.StatusFailed:
		return s.Error
	case domain.StatusExcluded:
		return s.Muted
	default:
		return s.Warning
	}
}

// stylesFor returns styles for w, coloured only when w is a terminal and
// --no-color is not set.
func stylesFor(w io.Writer) *Styles {
	return NewStyles(w, DefaultTheme(), !noColor && isTerminal(w))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
