package output

import (
	"fmt"
	"strings"
)

// ProgressBar renders a visual bar for a 0-100 percentage.
// Example: "████████░░ 80%"
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int((percent / 100.0) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	var style func(string) string
	switch {
	case percent >= 70:
		style = func(s string) string { return StyleSuccess.Render(s) }
	case percent >= 40:
		style = func(s string) string { return StyleWarning.Render(s) }
	default:
		style = func(s string) string { return StyleError.Render(s) }
	}

	return fmt.Sprintf("%s %s", style(bar), StyleMuted.Render(fmt.Sprintf("%.0f%%", percent)))
}

// StreakBadge renders the current streak, e.g. "🔥 4 days".
func StreakBadge(days int) string {
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	return StyleBadge.Render(fmt.Sprintf("🔥 %d %s", days, unit))
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
