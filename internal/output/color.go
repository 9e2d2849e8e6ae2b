// Package output provides styled terminal rendering helpers for taskwatch.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorSuccess is used for positive indicators and completed work.
	ColorSuccess = lipgloss.Color("#66bb6a")

	// ColorError is used for warnings and overdue work.
	ColorError = lipgloss.Color("#ef5350")

	// ColorWarning is used for caution indicators.
	ColorWarning = lipgloss.Color("#fff59d")

	// ColorInsight is used for informational insights.
	ColorInsight = lipgloss.Color("#ce93d8")

	// ColorMuted is used for secondary text and borders.
	ColorMuted = lipgloss.Color("#888888")
)

// Styles provides reusable lipgloss styles.
var (
	// StyleHeader is used for section headers.
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	// StyleSuccess is used for positive values.
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleError is used for negative values.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleWarning is used for cautionary values.
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// StyleInsight is used for informational insights.
	StyleInsight = lipgloss.NewStyle().
			Foreground(ColorInsight)

	// StyleMuted is used for de-emphasized text.
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleBold is used for emphasized text.
	StyleBold = lipgloss.NewStyle().
			Bold(true)

	// StyleBadge is used for the streak badge.
	StyleBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#ff6b6b")).
			Bold(true).
			Padding(0, 1)
)

// noColor tracks whether color output is disabled.
var noColor bool

var colorStyles = [...]lipgloss.Style{
	StyleHeader, StyleSuccess, StyleError, StyleWarning,
	StyleInsight, StyleMuted, StyleBold, StyleBadge,
}

// SetNoColor disables or enables color output globally.
// When disabled, all package-level styles are reassigned to unstyled renderers;
// enabling restores them.
func SetNoColor(disabled bool) {
	noColor = disabled
	styles := colorStyles
	if disabled {
		for i := range styles {
			styles[i] = lipgloss.NewStyle()
		}
	}
	StyleHeader, StyleSuccess, StyleError, StyleWarning = styles[0], styles[1], styles[2], styles[3]
	StyleInsight, StyleMuted, StyleBold, StyleBadge = styles[4], styles[5], styles[6], styles[7]
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

// StdoutIsTerminal reports whether stdout is attached to a terminal.
func StdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
