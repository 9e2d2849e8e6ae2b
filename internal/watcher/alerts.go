package watcher

import (
	"fmt"

	"github.com/blackwell-systems/taskwatch/internal/analyzer"
	"github.com/blackwell-systems/taskwatch/internal/suggest"
)

// StreakMilestones are the streak lengths that earn a celebration alert.
var StreakMilestones = []int{7, 14, 30, 60, 100}

// Compare detects notable changes between two states and returns alerts,
// critical first, then warnings, then info.
func Compare(prev, curr *State) []Alert {
	var alerts []Alert

	alerts = append(alerts, compareCritical(prev, curr)...)
	alerts = append(alerts, compareWarning(prev, curr)...)
	alerts = append(alerts, compareInfo(prev, curr)...)

	return alerts
}

func compareCritical(prev, curr *State) []Alert {
	var alerts []Alert

	if prev.Streak > 0 && curr.Streak == 0 {
		alerts = append(alerts, Alert{
			Level:   LevelCritical,
			Title:   "Streak broken",
			Message: fmt.Sprintf("Your %d-day streak has ended. Complete a task to start a new one.", prev.Streak),
			Time:    curr.Timestamp,
		})
	}

	return alerts
}

func compareWarning(prev, curr *State) []Alert {
	var alerts []Alert

	if curr.OverdueCount > prev.OverdueCount {
		alerts = append(alerts, Alert{
			Level:   LevelWarning,
			Title:   "New overdue tasks",
			Message: fmt.Sprintf("%d task(s) are now overdue (was %d)", curr.OverdueCount, prev.OverdueCount),
			Time:    curr.Timestamp,
		})
	}

	// Completion rate fell below the planning-advice threshold.
	if curr.HasRate && curr.CompletionRate < suggest.LowCompletionRate &&
		(!prev.HasRate || prev.CompletionRate >= suggest.LowCompletionRate) {
		alerts = append(alerts, Alert{
			Level:   LevelWarning,
			Title:   "Completion rate dropped",
			Message: fmt.Sprintf("Completion rate is %s", analyzer.FormatPercent(curr.CompletionRate)),
			Time:    curr.Timestamp,
		})
	}

	return alerts
}

func compareInfo(prev, curr *State) []Alert {
	var alerts []Alert

	for _, m := range StreakMilestones {
		if prev.Streak < m && curr.Streak >= m {
			alerts = append(alerts, Alert{
				Level:   LevelInfo,
				Title:   fmt.Sprintf("%d-day streak!", m),
				Message: fmt.Sprintf("You have been productive %d days in a row.", curr.Streak),
				Time:    curr.Timestamp,
			})
		}
	}

	if curr.Day != prev.Day && curr.OpenToday > 0 {
		alerts = append(alerts, Alert{
			Level:   LevelInfo,
			Title:   "New day",
			Message: fmt.Sprintf("%d task(s) planned for %s", curr.OpenToday, curr.Day),
			Time:    curr.Timestamp,
		})
	}

	if curr.Day == prev.Day && prev.OpenToday > 0 && curr.OpenToday == 0 && curr.PlannedToday > 0 {
		alerts = append(alerts, Alert{
			Level:   LevelInfo,
			Title:   "All done for today",
			Message: fmt.Sprintf("All %d task(s) planned for today are complete.", curr.PlannedToday),
			Time:    curr.Timestamp,
		})
	}

	return alerts
}
