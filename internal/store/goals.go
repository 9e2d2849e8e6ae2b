package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/blackwell-systems/taskwatch/internal/analyzer"
)

// CreateGoal inserts g and fills in its ID and CreatedAt.
func (db *DB) CreateGoal(g *Goal) error {
	if g.Title == "" {
		return errors.New("goal title is required")
	}
	g.CreatedAt = time.Now().UTC().Truncate(time.Second)
	res, err := db.conn.Exec(
		`INSERT INTO goals (user_id, title, description, target_date, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		g.UserID, g.Title, g.Description, analyzer.DayKey(g.TargetDate),
		g.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	g.ID, err = res.LastInsertId()
	return err
}

// ListGoals returns a user's goals ordered by target date.
func (db *DB) ListGoals(userID int64) ([]Goal, error) {
	rows, err := db.conn.Query(
		`SELECT id, user_id, title, description, target_date, progress, completed, created_at
		 FROM goals WHERE user_id = ? ORDER BY target_date, id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []Goal
	for rows.Next() {
		var g Goal
		var target, createdAt string
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &target,
			&g.Progress, &g.Completed, &createdAt); err != nil {
			return nil, err
		}
		g.TargetDate, _ = analyzer.ParseDay(target)
		g.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// UpdateGoalProgress sets progress as a percentage in [0, 100]. A goal at
// 100 is marked completed; lowering progress reopens it.
func (db *DB) UpdateGoalProgress(id int64, progress float64) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("progress %.1f out of range 0-100", progress)
	}
	res, err := db.conn.Exec(
		"UPDATE goals SET progress = ?, completed = ? WHERE id = ?",
		progress, progress >= 100, id,
	)
	if err != nil {
		return fmt.Errorf("update goal %d: %w", id, err)
	}
	return checkAffected(res, "goal", id)
}

// DeleteGoal removes a goal.
func (db *DB) DeleteGoal(id int64) error {
	res, err := db.conn.Exec("DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete goal %d: %w", id, err)
	}
	return checkAffected(res, "goal", id)
}
