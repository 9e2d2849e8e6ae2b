package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KanbanColumn is one titled column of cards.
type KanbanColumn struct {
	Title string
	Cards []string
}

// Kanban lays columns out side by side, each in a rounded box of the given
// width.
func Kanban(columns []KanbanColumn, width int) string {
	if width < 16 {
		width = 16
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1).
		Width(width)

	rendered := make([]string, 0, len(columns))
	for _, col := range columns {
		var sb strings.Builder
		sb.WriteString(StyleHeader.Render(col.Title))
		sb.WriteString("\n")
		if len(col.Cards) == 0 {
			sb.WriteString(StyleMuted.Render("(empty)"))
		}
		for i, card := range col.Cards {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(card)
		}
		rendered = append(rendered, box.Render(sb.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
