package analyzer

import (
	"fmt"
	"sort"
	"time"
)

// ComputeStreak returns the number of consecutive productive days ending at
// the most recent record. Records are sorted most recent first before the
// walk, so input order does not matter and the caller's slice is left
// untouched.
//
// Only days present in the input count. A calendar day with no tasks has no
// record and therefore does not end the streak; a day that had tasks but
// none completed does. Use ComputeCalendarStreak when missing days should
// break the run.
func ComputeStreak(records []DailyActivity) (int, error) {
	sorted, err := sortedActivity(records)
	if err != nil {
		return 0, err
	}

	streak := 0
	for _, r := range sorted {
		if !r.Productive {
			break
		}
		streak++
	}
	return streak, nil
}

// ComputeCalendarStreak is the strict variant of ComputeStreak: every counted
// day must immediately precede the previously counted one. A gap of one or
// more calendar days ends the streak just like a non-productive day.
func ComputeCalendarStreak(records []DailyActivity) (int, error) {
	sorted, err := sortedActivity(records)
	if err != nil {
		return 0, err
	}

	streak := 0
	var prev time.Time
	for i, r := range sorted {
		if !r.Productive {
			break
		}
		day := truncateDay(r.Day)
		if i > 0 && !day.AddDate(0, 0, 1).Equal(prev) {
			break
		}
		prev = day
		streak++
	}
	return streak, nil
}

// BestStreak returns the longest run of consecutive productive records in the
// input, using the same logged-day semantics as ComputeStreak.
func BestStreak(records []DailyActivity) (int, error) {
	sorted, err := sortedActivity(records)
	if err != nil {
		return 0, err
	}

	best, run := 0, 0
	for _, r := range sorted {
		if !r.Productive {
			run = 0
			continue
		}
		run++
		if run > best {
			best = run
		}
	}
	return best, nil
}

// sortedActivity validates records and returns a copy ordered by day,
// most recent first.
func sortedActivity(records []DailyActivity) ([]DailyActivity, error) {
	sorted := make([]DailyActivity, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Day.After(sorted[j].Day)
	})

	seen := make(map[string]bool, len(sorted))
	for _, r := range sorted {
		if r.Day.IsZero() {
			return nil, fmt.Errorf("%w: activity record without a day", ErrInvalidInput)
		}
		key := DayKey(r.Day)
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate activity record for %s", ErrInvalidInput, key)
		}
		seen[key] = true
	}
	return sorted, nil
}
