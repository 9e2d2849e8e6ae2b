package output

import (
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
)

// ChartDay is one column of the daily completion chart.
type ChartDay struct {
	Label     string
	Completed int
	Open      int
}

// DailyChart renders a stacked bar chart with one column per day: completed
// tasks at the bottom, open tasks above them.
func DailyChart(days []ChartDay, width, height int) string {
	if len(days) == 0 {
		return ""
	}
	if width < 20 {
		width = 20
	}
	if height < 4 {
		height = 4
	}

	doneStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	openStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	if IsNoColor() {
		doneStyle = lipgloss.NewStyle()
		openStyle = lipgloss.NewStyle()
	}

	bars := make([]barchart.BarData, 0, len(days))
	for _, d := range days {
		bars = append(bars, barchart.BarData{
			Label: d.Label,
			Values: []barchart.BarValue{
				{Name: "Completed", Value: float64(d.Completed), Style: doneStyle},
				{Name: "Open", Value: float64(d.Open), Style: openStyle},
			},
		})
	}

	chart := barchart.New(width, height)
	chart.PushAll(bars)
	chart.Draw()

	legend := doneStyle.Render("█") + " completed  " + openStyle.Render("█") + " open"
	return strings.TrimRight(chart.View(), "\n") + "\n" + legend
}
