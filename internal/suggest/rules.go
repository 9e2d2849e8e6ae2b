package suggest

import (
	"fmt"

	"github.com/blackwell-systems/taskwatch/internal/analyzer"
)

// OverdueTasks warns when open tasks are dated before today.
func OverdueTasks(in *Input) []Recommendation {
	if in.OverdueCount <= 0 {
		return nil
	}
	return []Recommendation{{
		Kind:  KindWarning,
		Title: "Overdue Tasks Alert",
		Message: fmt.Sprintf(
			"You have %d overdue tasks. Consider rescheduling or breaking them into smaller chunks.",
			in.OverdueCount,
		),
		Action: "Review overdue tasks",
	}}
}

// CompletionRate compares completed to total tasks over the stats window.
// Rates in [LowCompletionRate, HighCompletionRate] produce nothing, and so
// does a window without tasks.
func CompletionRate(in *Input) []Recommendation {
	rate, ok := analyzer.Summarize(in.WindowStats).CompletionRate()
	if !ok {
		return nil
	}

	switch {
	case rate < LowCompletionRate:
		return []Recommendation{{
			Kind:  KindTip,
			Title: "Productivity Boost",
			Message: fmt.Sprintf(
				"Your completion rate is %s. Try breaking tasks into smaller, manageable chunks.",
				analyzer.FormatPercent(rate),
			),
			Action: "Optimize task planning",
		}}
	case rate > HighCompletionRate:
		return []Recommendation{{
			Kind:  KindSuccess,
			Title: "Great Performance!",
			Message: fmt.Sprintf(
				"Excellent completion rate of %s! Keep up the great work!",
				analyzer.FormatPercent(rate),
			),
			Action: "Maintain momentum",
		}}
	}
	return nil
}

// TimeEstimation flags tasks that consistently take longer than estimated.
func TimeEstimation(in *Input) []Recommendation {
	d := in.Durations
	if !d.Present() {
		return nil
	}
	if *d.AverageActual <= *d.AverageEstimated*EstimateOverrunFactor {
		return nil
	}
	return []Recommendation{{
		Kind:    KindInsight,
		Title:   "Time Estimation",
		Message: "You're consistently underestimating task duration. Consider adding buffer time.",
		Action:  "Improve time estimates",
	}}
}
