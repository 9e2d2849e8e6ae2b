package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blackwell-systems/taskwatch/internal/analyzer"
)

// DailyActivity returns one record per day in the trailing window of
// windowDays ending on today that has at least one task. A day is
// productive when at least one of its tasks is completed. Days without
// tasks are omitted. Results are ordered most recent first.
func (db *DB) DailyActivity(ctx context.Context, userID int64, windowDays int, today time.Time) ([]analyzer.DailyActivity, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT date,
		       SUM(CASE WHEN completed = 1 THEN 1 ELSE 0 END) AS done
		FROM tasks
		WHERE user_id = ? AND date BETWEEN ? AND ?
		GROUP BY date
		ORDER BY date DESC`,
		userID, analyzer.DayKey(analyzer.WindowStart(today, windowDays)), analyzer.DayKey(today),
	)
	if err != nil {
		return nil, fmt.Errorf("daily activity: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var activity []analyzer.DailyActivity
	for rows.Next() {
		var date string
		var done int
		if err := rows.Scan(&date, &done); err != nil {
			return nil, err
		}
		day, err := analyzer.ParseDay(date)
		if err != nil {
			return nil, fmt.Errorf("daily activity: bad date %q: %w", date, err)
		}
		activity = append(activity, analyzer.DailyActivity{Day: day, Productive: done > 0})
	}
	return activity, rows.Err()
}

// WindowStats returns per-day task totals for the trailing window of
// windowDays ending on today, ordered by day. Planned minutes sum the
// estimates; actual minutes sum recorded actual durations only.
func (db *DB) WindowStats(ctx context.Context, userID int64, windowDays int, today time.Time) ([]analyzer.DailyStats, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT date,
		       COUNT(*),
		       SUM(CASE WHEN completed = 1 THEN 1 ELSE 0 END),
		       COALESCE(SUM(estimated_duration), 0),
		       COALESCE(SUM(actual_duration), 0)
		FROM tasks
		WHERE user_id = ? AND date BETWEEN ? AND ?
		GROUP BY date
		ORDER BY date`,
		userID, analyzer.DayKey(analyzer.WindowStart(today, windowDays)), analyzer.DayKey(today),
	)
	if err != nil {
		return nil, fmt.Errorf("window stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stats []analyzer.DailyStats
	for rows.Next() {
		var s analyzer.DailyStats
		var date string
		if err := rows.Scan(&date, &s.TotalTasks, &s.CompletedTasks, &s.PlannedMinutes, &s.ActualMinutes); err != nil {
			return nil, err
		}
		s.Day, err = analyzer.ParseDay(date)
		if err != nil {
			return nil, fmt.Errorf("window stats: bad date %q: %w", date, err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// OverdueCount returns the number of open tasks dated strictly before today.
func (db *DB) OverdueCount(ctx context.Context, userID int64, today time.Time) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tasks WHERE user_id = ? AND date < ? AND completed = 0",
		userID, analyzer.DayKey(today),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("overdue count: %w", err)
	}
	return n, nil
}

// DurationSample returns lifetime average actual and estimated durations
// over completed tasks that have an actual duration recorded.
func (db *DB) DurationSample(ctx context.Context, userID int64) (analyzer.DurationSample, error) {
	var actual, estimated sql.NullFloat64
	err := db.conn.QueryRowContext(ctx, `
		SELECT AVG(actual_duration), AVG(estimated_duration)
		FROM tasks
		WHERE user_id = ? AND completed = 1 AND actual_duration IS NOT NULL`,
		userID,
	).Scan(&actual, &estimated)
	if err != nil {
		return analyzer.DurationSample{}, fmt.Errorf("duration sample: %w", err)
	}

	var sample analyzer.DurationSample
	if actual.Valid {
		sample.AverageActual = &actual.Float64
	}
	if estimated.Valid {
		sample.AverageEstimated = &estimated.Float64
	}
	return sample, nil
}
