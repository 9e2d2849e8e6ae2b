package app

import (
	"fmt"

	"github.com/blackwell-systems/taskwatch/internal/analyzer"
	"github.com/blackwell-systems/taskwatch/internal/output"
	"github.com/spf13/cobra"
)

var statsDays int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show productivity statistics for recent days",
	Long: `Show the current streak, per-day task counts and planned versus actual
minutes for the trailing window, the window's completion rate, and a chart
of completed and open tasks per day.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsDays, "days", 0, "Window size in days (default: analytics.stats_window_days)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if statsDays < 0 {
		return fmt.Errorf("--days must be positive, got %d", statsDays)
	}
	r, e, _, err := loadReport(cmd.Context(), statsDays)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	if flagJSON {
		return outputJSON(r)
	}

	fmt.Println(output.Section("Productivity"))
	fmt.Println()
	fmt.Printf(" Streak        %s\n", output.StreakBadge(r.Streak))
	if rate, ok := r.Summary.CompletionRate(); ok {
		fmt.Printf(" Completion    %s  (%d of %d tasks)\n",
			output.ProgressBar(rate*100, 20), r.Summary.CompletedTasks, r.Summary.TotalTasks)
	} else {
		fmt.Printf(" Completion    %s\n", output.StyleMuted.Render("no tasks in window"))
	}
	fmt.Printf(" Overdue       %d\n", r.OverdueCount)
	if r.Durations.Present() {
		fmt.Printf(" Avg duration  %.0fm actual / %.0fm estimated\n",
			*r.Durations.AverageActual, *r.Durations.AverageEstimated)
	}

	if len(r.WindowStats) == 0 {
		fmt.Println()
		fmt.Printf(" No tasks in the last %d days.\n", r.StatsWindowDays)
		return nil
	}

	fmt.Println(output.Section("Daily Breakdown"))
	fmt.Println()
	tbl := output.NewTable("Day", "Tasks", "Done", "Rate", "Planned", "Actual").AlignRight(1, 2, 3, 4, 5)
	for _, d := range r.WindowStats {
		rate := "-"
		if d.TotalTasks > 0 {
			rate = analyzer.FormatPercent(float64(d.CompletedTasks) / float64(d.TotalTasks))
		}
		tbl.AddRow(
			d.Day.Format("Mon 01-02"),
			fmt.Sprintf("%d", d.TotalTasks),
			fmt.Sprintf("%d", d.CompletedTasks),
			rate,
			fmt.Sprintf("%dm", d.PlannedMinutes),
			fmt.Sprintf("%dm", d.ActualMinutes),
		)
	}
	tbl.Print()

	fmt.Println()
	fmt.Println(output.DailyChart(chartDays(r.WindowStats), e.cfg.Output.ChartWidth, e.cfg.Output.ChartHeight))
	return nil
}

func chartDays(stats []analyzer.DailyStats) []output.ChartDay {
	days := make([]output.ChartDay, len(stats))
	for i, d := range stats {
		days[i] = output.ChartDay{
			Label:     d.Day.Format("01-02"),
			Completed: d.CompletedTasks,
			Open:      d.TotalTasks - d.CompletedTasks,
		}
	}
	return days
}
