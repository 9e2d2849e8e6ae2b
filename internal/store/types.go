// Package store provides SQLite database access for users, tasks, goals, and
// habits, plus the aggregate queries that feed the analyzer.
package store

import "time"

// Priority is a task priority level.
type Priority string

// Task priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Recurrence values for tasks, and frequencies for habits.
const (
	RecurNone    = "none"
	RecurDaily   = "daily"
	RecurWeekly  = "weekly"
	RecurMonthly = "monthly"
)

// ValidRecurrence reports whether r is a known task recurrence.
func ValidRecurrence(r string) bool {
	switch r {
	case RecurNone, RecurDaily, RecurWeekly, RecurMonthly:
		return true
	}
	return false
}

// ValidFrequency reports whether f is a known habit frequency.
func ValidFrequency(f string) bool {
	return f != RecurNone && ValidRecurrence(f)
}

// DefaultEstimateMinutes is used when a task is created without an estimate.
const DefaultEstimateMinutes = 60

// User is a registered account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email,omitempty"`
	Timezone     string    `json:"timezone"`
	CreatedAt    time.Time `json:"created_at"`
}

// Category groups tasks for a user.
type Category struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Icon   string `json:"icon,omitempty"`
}

// DefaultCategories are seeded for every new user.
var DefaultCategories = []Category{
	{Name: "Work", Color: "#1f77b4", Icon: "💼"},
	{Name: "Personal", Color: "#ff7f0e", Icon: "👤"},
	{Name: "Health", Color: "#2ca02c", Icon: "🏥"},
	{Name: "Learning", Color: "#d62728", Icon: "📚"},
	{Name: "Hobbies", Color: "#9467bd", Icon: "🎨"},
}

// Task is a unit of planned work scheduled on a calendar day.
type Task struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"user_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Category         string     `json:"category,omitempty"`
	Priority         Priority   `json:"priority"`
	Completed        bool       `json:"completed"`
	Date             time.Time  `json:"date"`
	TimeSlot         string     `json:"time_slot,omitempty"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	ActualMinutes    *int       `json:"actual_minutes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	Tags             string     `json:"tags,omitempty"`
	Recurring        string     `json:"recurring"`
	ParentTaskID     *int64     `json:"parent_task_id,omitempty"`
}

// TaskFilter narrows ListTasks. Zero fields are ignored.
type TaskFilter struct {
	UserID   int64
	Date     *time.Time
	Category string
	Priority Priority
}

// Goal is a long-running objective with percentage progress.
type Goal struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	TargetDate  time.Time `json:"target_date"`
	Progress    float64   `json:"progress"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// Habit is a recurring behaviour tracked with daily logs.
type Habit struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Frequency   string    `json:"frequency"`
	Streak      int       `json:"streak"`
	BestStreak  int       `json:"best_streak"`
	CreatedAt   time.Time `json:"created_at"`
}

// HabitLog records whether a habit was done on a day.
type HabitLog struct {
	ID        int64     `json:"id"`
	HabitID   int64     `json:"habit_id"`
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
	Notes     string    `json:"notes,omitempty"`
}
