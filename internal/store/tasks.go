package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/blackwell-systems/taskwatch/internal/analyzer"
)

const taskColumns = `id, user_id, title, description, category, priority, completed, date,
	time_slot, estimated_duration, actual_duration, created_at, completed_at, tags,
	recurring, parent_task_id`

// CreateTask inserts t and fills in its ID and CreatedAt. Empty priority,
// recurrence, and estimate fall back to medium, none, and
// DefaultEstimateMinutes.
func (db *DB) CreateTask(t *Task) error {
	if t.Title == "" {
		return errors.New("task title is required")
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("invalid priority %q", t.Priority)
	}
	if t.Recurring == "" {
		t.Recurring = RecurNone
	}
	if !ValidRecurrence(t.Recurring) {
		return fmt.Errorf("invalid recurrence %q", t.Recurring)
	}
	if t.EstimatedMinutes == 0 {
		t.EstimatedMinutes = DefaultEstimateMinutes
	}
	if t.EstimatedMinutes < 0 {
		return fmt.Errorf("invalid estimate %d", t.EstimatedMinutes)
	}

	t.CreatedAt = time.Now().UTC().Truncate(time.Second)
	res, err := db.conn.Exec(
		`INSERT INTO tasks
		(user_id, title, description, category, priority, date, time_slot,
		 estimated_duration, created_at, tags, recurring, parent_task_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.Title, t.Description, t.Category, string(t.Priority),
		analyzer.DayKey(t.Date), t.TimeSlot, t.EstimatedMinutes,
		t.CreatedAt.Format(time.RFC3339), t.Tags, t.Recurring, t.ParentTaskID,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	t.ID, err = res.LastInsertId()
	return err
}

// GetTask returns a task by ID.
func (db *DB) GetTask(id int64) (*Task, error) {
	row := db.conn.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

// ListTasks returns the tasks matching f, ordered by time slot and then
// priority from high to low.
func (db *DB) ListTasks(f TaskFilter) ([]Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE user_id = ?"
	args := []any{f.UserID}

	if f.Date != nil {
		query += " AND date = ?"
		args = append(args, analyzer.DayKey(*f.Date))
	}
	if f.Category != "" {
		query += " AND category = ?"
		args = append(args, f.Category)
	}
	if f.Priority != "" {
		query += " AND priority = ?"
		args = append(args, string(f.Priority))
	}
	query += ` ORDER BY time_slot,
		CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, id`

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// CompleteTask marks a task done at the given time. When actualMinutes is
// nil the task's estimate is recorded as its actual duration.
func (db *DB) CompleteTask(id int64, actualMinutes *int, at time.Time) error {
	if actualMinutes != nil && *actualMinutes < 0 {
		return fmt.Errorf("invalid actual duration %d", *actualMinutes)
	}
	res, err := db.conn.Exec(
		`UPDATE tasks SET completed = 1, completed_at = ?,
		 actual_duration = COALESCE(?, estimated_duration)
		 WHERE id = ?`,
		at.UTC().Format(time.RFC3339), actualMinutes, id,
	)
	if err != nil {
		return fmt.Errorf("complete task %d: %w", id, err)
	}
	return checkAffected(res, "task", id)
}

// DeleteTask removes a task.
func (db *DB) DeleteTask(id int64) error {
	res, err := db.conn.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return checkAffected(res, "task", id)
}

func scanTask(row rowScanner) (*Task, error) {
	var t Task
	var priority, date, createdAt string
	var actual sql.NullInt64
	var completedAt sql.NullString
	var parent sql.NullInt64

	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Category, &priority,
		&t.Completed, &date, &t.TimeSlot, &t.EstimatedMinutes, &actual,
		&createdAt, &completedAt, &t.Tags, &t.Recurring, &parent,
	)
	if err != nil {
		return nil, err
	}

	t.Priority = Priority(priority)
	t.Date, _ = analyzer.ParseDay(date)
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if actual.Valid {
		m := int(actual.Int64)
		t.ActualMinutes = &m
	}
	if completedAt.Valid {
		ts, _ := time.Parse(time.RFC3339, completedAt.String)
		t.CompletedAt = &ts
	}
	if parent.Valid {
		t.ParentTaskID = &parent.Int64
	}
	return &t, nil
}
