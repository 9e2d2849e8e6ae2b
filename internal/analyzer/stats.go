package analyzer

import (
	"fmt"
	"math"
)

// ValidateDailyStats checks the per-day invariants the recommendation rules
// depend on. A violation means the query layer produced bad rows, so the
// error is returned instead of clamping the values.
func ValidateDailyStats(stats []DailyStats) error {
	for _, s := range stats {
		day := DayKey(s.Day)
		switch {
		case s.TotalTasks < 0 || s.CompletedTasks < 0:
			return fmt.Errorf("%w: negative task count on %s", ErrInvalidInput, day)
		case s.PlannedMinutes < 0 || s.ActualMinutes < 0:
			return fmt.Errorf("%w: negative minutes on %s", ErrInvalidInput, day)
		case s.CompletedTasks > s.TotalTasks:
			return fmt.Errorf("%w: %d completed of %d tasks on %s",
				ErrInvalidInput, s.CompletedTasks, s.TotalTasks, day)
		}
	}
	return nil
}

// Summarize totals a window of daily stats.
func Summarize(stats []DailyStats) WindowSummary {
	sum := WindowSummary{Days: len(stats)}
	for _, s := range stats {
		sum.TotalTasks += s.TotalTasks
		sum.CompletedTasks += s.CompletedTasks
		sum.PlannedMinutes += s.PlannedMinutes
		sum.ActualMinutes += s.ActualMinutes
		if s.CompletedTasks > 0 {
			sum.ProductiveDays++
		}
	}
	return sum
}

// CompletionRate returns completed/total for the window. The second return
// value is false when the window has no tasks.
func (w WindowSummary) CompletionRate() (float64, bool) {
	if w.TotalTasks == 0 {
		return 0, false
	}
	return float64(w.CompletedTasks) / float64(w.TotalTasks), true
}

// Validate rejects negative averages. Zero and nil are both treated as
// absent by Present.
func (d DurationSample) Validate() error {
	if d.AverageActual != nil && (*d.AverageActual < 0 || math.IsNaN(*d.AverageActual)) {
		return fmt.Errorf("%w: average actual duration %v", ErrInvalidInput, *d.AverageActual)
	}
	if d.AverageEstimated != nil && (*d.AverageEstimated < 0 || math.IsNaN(*d.AverageEstimated)) {
		return fmt.Errorf("%w: average estimated duration %v", ErrInvalidInput, *d.AverageEstimated)
	}
	return nil
}

// Present reports whether both averages are available. New users with no
// completed, timed tasks have neither.
func (d DurationSample) Present() bool {
	return d.AverageActual != nil && *d.AverageActual > 0 &&
		d.AverageEstimated != nil && *d.AverageEstimated > 0
}

// FormatPercent renders a 0-1 ratio as a percentage with one decimal place,
// e.g. 0.4286 -> "42.9%".
func FormatPercent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}
