package analyzer

import "time"

// DayLayout is the calendar-day format used in storage and output.
const DayLayout = "2006-01-02"

// DayKey formats t as a calendar day.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD string into midnight UTC.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayLayout, s)
}

// WindowStart returns the first day of a trailing window of n days that ends
// on (and includes) today. n < 1 is treated as 1.
func WindowStart(today time.Time, n int) time.Time {
	if n < 1 {
		n = 1
	}
	return truncateDay(today).AddDate(0, 0, -(n - 1))
}

// truncateDay drops the clock part of t, keeping its calendar date in UTC.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LocalDay returns t's calendar date in t's own location as midnight UTC,
// the form days are stored and compared in.
func LocalDay(t time.Time) time.Time {
	return truncateDay(t)
}
