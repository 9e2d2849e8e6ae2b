package app

import (
	"fmt"

	"github.com/blackwell-systems/taskwatch/internal/analyzer"
	"github.com/blackwell-systems/taskwatch/internal/output"
	"github.com/blackwell-systems/taskwatch/internal/report"
	"github.com/blackwell-systems/taskwatch/internal/store"
	"github.com/spf13/cobra"
)

func runDashboard(cmd *cobra.Command, args []string) error {
	r, e, u, err := loadReport(cmd.Context(), 0)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	day := today()
	tasks, err := e.db.ListTasks(store.TaskFilter{UserID: u.ID, Date: &day})
	if err != nil {
		return err
	}

	if flagJSON {
		return outputJSON(struct {
			User       string         `json:"user"`
			TodayTasks []store.Task   `json:"today_tasks"`
			Report     *report.Report `json:"report"`
		}{u.Username, tasks, r})
	}

	var open int
	for _, t := range tasks {
		if !t.Completed {
			open++
		}
	}

	fmt.Printf("\n %s %s  %s\n", output.StyleHeader.Render("taskwatch"), output.StyleMuted.Render(appVersion),
		output.StyleMuted.Render(u.Username+" · "+analyzer.DayKey(day)))
	fmt.Println(output.Section("Today"))
	fmt.Println()
	fmt.Printf(" Streak     %s\n", output.StreakBadge(r.Streak))
	fmt.Printf(" Tasks      %d planned, %d open\n", len(tasks), open)
	if r.OverdueCount > 0 {
		fmt.Printf(" Overdue    %s\n", output.StyleError.Render(fmt.Sprintf("%d", r.OverdueCount)))
	}
	if rate, ok := r.Summary.CompletionRate(); ok {
		fmt.Printf(" Last %dd   %s completed\n", r.StatsWindowDays, analyzer.FormatPercent(rate))
	}

	renderRecommendations(r.Recommendations)
	return nil
}
