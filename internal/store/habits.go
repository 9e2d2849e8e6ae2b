package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/blackwell-systems/taskwatch/internal/analyzer"
)

// CreateHabit inserts h and fills in its ID and CreatedAt.
func (db *DB) CreateHabit(h *Habit) error {
	if h.Name == "" {
		return errors.New("habit name is required")
	}
	if h.Frequency == "" {
		h.Frequency = RecurDaily
	}
	if !ValidFrequency(h.Frequency) {
		return fmt.Errorf("invalid frequency %q", h.Frequency)
	}
	h.CreatedAt = time.Now().UTC().Truncate(time.Second)
	res, err := db.conn.Exec(
		`INSERT INTO habits (user_id, name, description, frequency, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		h.UserID, h.Name, h.Description, h.Frequency, h.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert habit: %w", err)
	}
	h.ID, err = res.LastInsertId()
	return err
}

// GetHabit returns a habit by ID.
func (db *DB) GetHabit(id int64) (*Habit, error) {
	row := db.conn.QueryRow(
		`SELECT id, user_id, name, description, frequency, streak, best_streak, created_at
		 FROM habits WHERE id = ?`, id,
	)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("habit %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get habit %d: %w", id, err)
	}
	return h, nil
}

// ListHabits returns a user's habits ordered by ID.
func (db *DB) ListHabits(userID int64) ([]Habit, error) {
	rows, err := db.conn.Query(
		`SELECT id, user_id, name, description, frequency, streak, best_streak, created_at
		 FROM habits WHERE user_id = ? ORDER BY id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var habits []Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, *h)
	}
	return habits, rows.Err()
}

// LogHabit records whether a habit was done on day. Logging the same day
// again replaces the earlier entry.
func (db *DB) LogHabit(habitID int64, day time.Time, completed bool, notes string) error {
	if _, err := db.GetHabit(habitID); err != nil {
		return err
	}
	_, err := db.conn.Exec(
		`INSERT INTO habit_logs (habit_id, date, completed, notes) VALUES (?, ?, ?, ?)
		 ON CONFLICT(habit_id, date) DO UPDATE SET completed = excluded.completed, notes = excluded.notes`,
		habitID, analyzer.DayKey(day), completed, notes,
	)
	if err != nil {
		return fmt.Errorf("log habit %d: %w", habitID, err)
	}
	return nil
}

// HabitLogs returns all logs for a habit, most recent first.
func (db *DB) HabitLogs(habitID int64) ([]HabitLog, error) {
	rows, err := db.conn.Query(
		"SELECT id, habit_id, date, completed, notes FROM habit_logs WHERE habit_id = ? ORDER BY date DESC",
		habitID,
	)
	if err != nil {
		return nil, fmt.Errorf("habit logs %d: %w", habitID, err)
	}
	defer func() { _ = rows.Close() }()

	var logs []HabitLog
	for rows.Next() {
		var l HabitLog
		var date string
		if err := rows.Scan(&l.ID, &l.HabitID, &date, &l.Completed, &l.Notes); err != nil {
			return nil, err
		}
		l.Date, _ = analyzer.ParseDay(date)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// HabitActivity returns a habit's logs as activity records for streak
// computation.
func (db *DB) HabitActivity(habitID int64) ([]analyzer.DailyActivity, error) {
	logs, err := db.HabitLogs(habitID)
	if err != nil {
		return nil, err
	}
	activity := make([]analyzer.DailyActivity, len(logs))
	for i, l := range logs {
		activity[i] = analyzer.DailyActivity{Day: l.Date, Productive: l.Completed}
	}
	return activity, nil
}

// UpdateHabitStreak stores the current streak. The best streak only grows.
func (db *DB) UpdateHabitStreak(id int64, streak, best int) error {
	res, err := db.conn.Exec(
		"UPDATE habits SET streak = ?, best_streak = MAX(best_streak, ?, ?) WHERE id = ?",
		streak, best, streak, id,
	)
	if err != nil {
		return fmt.Errorf("update habit streak %d: %w", id, err)
	}
	return checkAffected(res, "habit", id)
}

// DeleteHabit removes a habit and its logs.
func (db *DB) DeleteHabit(id int64) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM habit_logs WHERE habit_id = ?", id); err != nil {
		return fmt.Errorf("delete habit logs %d: %w", id, err)
	}
	res, err := tx.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete habit %d: %w", id, err)
	}
	if err := checkAffected(res, "habit", id); err != nil {
		return err
	}
	return tx.Commit()
}

func scanHabit(row rowScanner) (*Habit, error) {
	var h Habit
	var createdAt string
	if err := row.Scan(&h.ID, &h.UserID, &h.Name, &h.Description, &h.Frequency,
		&h.Streak, &h.BestStreak, &createdAt); err != nil {
		return nil, err
	}
	h.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &h, nil
}
