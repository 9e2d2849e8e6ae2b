package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/blackwell-systems/taskwatch/internal/analyzer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestUser(t *testing.T, db *DB, name string) *User {
	t.Helper()
	u, err := db.CreateUser(name, name+"@example.com", "hash")
	require.NoError(t, err)
	return u
}

// addTask inserts a task daysAgo days before today and optionally completes it.
func addTask(t *testing.T, db *DB, userID int64, daysAgo int, estimate int, actual *int, done bool) *Task {
	t.Helper()
	task := &Task{
		UserID:           userID,
		Title:            "task",
		Date:             today.AddDate(0, 0, -daysAgo),
		EstimatedMinutes: estimate,
	}
	require.NoError(t, db.CreateTask(task))
	if done {
		require.NoError(t, db.CompleteTask(task.ID, actual, today))
	}
	return task
}

func intPtr(i int) *int { return &i }

// ============================================================
// Open and migrations
// ============================================================

func TestOpenInMemory_SchemaVersion(t *testing.T) {
	db := newTestDB(t)
	v, err := db.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, v)
}

func TestOpen_CreatesDirectoryAndReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "taskwatch.db")
	db, err := Open(path)
	require.NoError(t, err)
	u := newTestUser(t, db, "alice")
	require.NoError(t, db.Close())

	// Reopening must not rerun v1 or lose data.
	db, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	got, err := db.GetUser(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

// ============================================================
// Users and categories
// ============================================================

func TestCreateUser_SeedsCategories(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, "alice")

	cats, err := db.ListCategories(u.ID)
	require.NoError(t, err)
	require.Len(t, cats, len(DefaultCategories))
	for i, c := range cats {
		assert.Equal(t, DefaultCategories[i].Name, c.Name)
		assert.Equal(t, DefaultCategories[i].Color, c.Color)
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	db := newTestDB(t)
	newTestUser(t, db, "alice")

	_, err := db.CreateUser("alice", "other@example.com", "hash")
	require.ErrorIs(t, err, ErrUserExists)

	// The failed insert must not leave orphan categories behind.
	var n int
	require.NoError(t, db.conn.QueryRow("SELECT COUNT(*) FROM categories").Scan(&n))
	assert.Equal(t, len(DefaultCategories), n)
}

func TestUserByName(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, "bob")

	got, err := db.UserByName("bob")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Equal(t, "UTC", got.Timezone)

	_, err = db.UserByName("nobody")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListUsers(t *testing.T) {
	db := newTestDB(t)
	newTestUser(t, db, "carol")
	newTestUser(t, db, "alice")

	users, err := db.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "carol", users[1].Username)
}

// ============================================================
// Tasks
// ============================================================

func TestCreateTask_Defaults(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, "alice")

	task := &Task{UserID: u.ID, Title: "Write report", Date: today}
	require.NoError(t, db.CreateTask(task))
	assert.NotZero(t, task.ID)

	got, err := db.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, got.Priority)
	assert.Equal(t, RecurNone, got.Recurring)
	assert.Equal(t, DefaultEstimateMinutes, got.EstimatedMinutes)
	assert.Equal(t, today, got.Date)
	assert.False(t, got.Completed)
	assert.Nil(t, got.ActualMinutes)
	assert.Nil(t, got.CompletedAt)
}

func TestCreateTask_Validation(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, "alice")

	tests := []struct {
		name string
		task Task
	}{
		{"missing title", Task{UserID: u.ID, Date: today}},
		{"bad priority", Task{UserID: u.ID, Title: "x", Date: today, Priority: "urgent"}},
		{"bad recurrence", Task{UserID: u.ID, Title: "x", Date: today, Recurring: "hourly"}},
		{"negative estimate", Task{UserID: u.ID, Title: "x", Date: today, EstimatedMinutes: -5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			task := tc.task
			assert.Error(t, db.CreateTask(&task))
		})
	}
}

func TestListTasks_FiltersAndOrder(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, "alice")
	other := newTestUser(t, db, "bob")

	mk := func(userID int64, title, slot string, p Priority, cat string, day time.Time) {
		require.NoError(t, db.CreateTask(&Task{
			UserID: userID, Title: title, TimeSlot: slot, Priority: p, Category: cat, Date: day,
		}))
	}
	mk(u.ID, "late low", "10:00-11:00", PriorityLow, "Work", today)
	mk(u.ID, "early low", "09:00-10:00", PriorityLow, "Work", today)
	mk(u.ID, "early high", "09:00-10:00", PriorityHigh, "Health", today)
	mk(u.ID, "yesterday", "09:00-10:00", PriorityHigh, "Work", today.AddDate(0, 0, -1))
	mk(other.ID, "not mine", "09:00-10:00", PriorityHigh, "Work", today)

	tasks, err := db.ListTasks(TaskFilter{UserID: u.ID, Date: &today})
	require.NoError(t, err)
	var titles []string
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"early high", "early low", "late low"}, titles)

	tasks, err = db.ListTasks(TaskFilter{UserID: u.ID, Category: "Work"})
	require.NoError(t, err)
	assert.Len(t, tasks, 3)

	tasks, err = db.ListTasks(TaskFilter{UserID: u.ID, Priority: PriorityHigh})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestCompleteTask(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, "alice")

	withActual := addTask(t, db, u.ID, 0, 30, intPtr(45), true)
	got, err := db.GetTask(withActual.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	require.NotNil(t, got.ActualMinutes)
	assert.Equal(t, 45, *got.ActualMinutes)
	require.NotNil(t, got.CompletedAt)

	// Without an actual duration the estimate is recorded.
	noActual := addTask(t, db, u.ID, 0, 90, nil, true)
	got, err = db.GetTask(noActual.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ActualMinutes)
	assert.Equal(t, 90, *got.ActualMinutes)
}

func TestCompleteTask_Errors(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, "alice")
	task := addTask(t, db, u.ID, 0, 30, nil, false)

	require.ErrorIs(t, db.CompleteTask(999, nil, today), ErrNotFound)
	assert.Error(t, db.CompleteTask(task.ID, intPtr(-1), today))
}

func TestDeleteTask(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, "alice")
	task := addTask(t, db, u.ID, 0, 30, nil, false)

	require.NoError(t, db.DeleteTask(task.ID))
	_, err := db.GetTask(task.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, db.DeleteTask(task.ID), ErrNotFound)
}

// ============================================================
// Goals
// ============================================================

func TestGoals(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, "alice")

	later := &Goal{UserID: u.ID, Title: "Run a marathon", TargetDate: today.AddDate(0, 6, 0)}
	sooner := &Goal{UserID: u.ID, Title: "Read 5 books", TargetDate: today.AddDate(0, 1, 0)}
	require.NoError(t, db.CreateGoal(later))
	require.NoError(t, db.CreateGoal(sooner))
	assert.Error(t, db.CreateGoal(&Goal{UserID: u.ID}))

	goals, err := db.ListGoals(u.ID)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "Read 5 books", goals[0].Title)

	require.NoError(t, db.UpdateGoalProgress(sooner.ID, 100))
	require.NoError(t, db.UpdateGoalProgress(later.ID, 40))
	goals, err = db.ListGoals(u.ID)
	require.NoError(t, err)
	assert.True(t, goals[0].Completed)
	assert.InDelta(t, 100, goals[0].Progress, 1e-9)
	assert.False(t, goals[1].Completed)

	// Lowering progress reopens the goal.
	require.NoError(t, db.UpdateGoalProgress(sooner.ID, 80))
	goals, err = db.ListGoals(u.ID)
	require.NoError(t, err)
	assert.False(t, goals[0].Completed)

	assert.Error(t, db.UpdateGoalProgress(sooner.ID, 101))
	assert.Error(t, db.UpdateGoalProgress(sooner.ID, -1))
	require.ErrorIs(t, db.UpdateGoalProgress(999, 10), ErrNotFound)

	require.NoError(t, db.DeleteGoal(later.ID))
	require.ErrorIs(t, db.DeleteGoal(later.ID), ErrNotFound)
}

// ============================================================
// Habits
// ============================================================

func TestHabits_LogAndActivity(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, "alice")

	h := &Habit{UserID: u.ID, Name: "Meditate"}
	require.NoError(t, db.CreateHabit(h))
	assert.Equal(t, RecurDaily, h.Frequency)

	require.NoError(t, db.LogHabit(h.ID, today.AddDate(0, 0, -1), true, ""))
	require.NoError(t, db.LogHabit(h.ID, today, false, "skipped"))
	// Relogging replaces the entry for that day.
	require.NoError(t, db.LogHabit(h.ID, today, true, "done late"))

	logs, err := db.HabitLogs(h.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, today, logs[0].Date)
	assert.True(t, logs[0].Completed)
	assert.Equal(t, "done late", logs[0].Notes)

	activity, err := db.HabitActivity(h.ID)
	require.NoError(t, err)
	streak, err := analyzer.ComputeStreak(activity)
	require.NoError(t, err)
	assert.Equal(t, 2, streak)

	require.ErrorIs(t, db.LogHabit(999, today, true, ""), ErrNotFound)
}

func TestHabits_Validation(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, "alice")
	assert.Error(t, db.CreateHabit(&Habit{UserID: u.ID}))
	assert.Error(t, db.CreateHabit(&Habit{UserID: u.ID, Name: "x", Frequency: "none"}))
	assert.Error(t, db.CreateHabit(&Habit{UserID: u.ID, Name: "x", Frequency: "hourly"}))
}

func TestUpdateHabitStreak_BestNeverDecreases(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, "alice")
	h := &Habit{UserID: u.ID, Name: "Stretch", Frequency: RecurDaily}
	require.NoError(t, db.CreateHabit(h))

	require.NoError(t, db.UpdateHabitStreak(h.ID, 5, 5))
	require.NoError(t, db.UpdateHabitStreak(h.ID, 0, 3))

	got, err := db.GetHabit(h.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Streak)
	assert.Equal(t, 5, got.BestStreak)

	require.ErrorIs(t, db.UpdateHabitStreak(999, 1, 1), ErrNotFound)
}

func TestDeleteHabit_RemovesLogs(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, "alice")
	h := &Habit{UserID: u.ID, Name: "Journal", Frequency: RecurWeekly}
	require.NoError(t, db.CreateHabit(h))
	require.NoError(t, db.LogHabit(h.ID, today, true, ""))

	require.NoError(t, db.DeleteHabit(h.ID))
	_, err := db.GetHabit(h.ID)
	require.ErrorIs(t, err, ErrNotFound)

	logs, err := db.HabitLogs(h.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)

	require.ErrorIs(t, db.DeleteHabit(h.ID), ErrNotFound)
}

// ============================================================
// Analytics queries
// ============================================================

func TestDailyActivity(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, "alice")
	ctx := context.Background()

	addTask(t, db, u.ID, 0, 30, nil, true)
	addTask(t, db, u.ID, 0, 30, nil, false)
	addTask(t, db, u.ID, 1, 30, nil, false) // had tasks, none done
	addTask(t, db, u.ID, 3, 30, nil, true)  // day 2 has no tasks
	addTask(t, db, u.ID, 9, 30, nil, true)  // outside a 7-day window
	addTask(t, db, u.ID, -1, 30, nil, false) // tomorrow

	activity, err := db.DailyActivity(ctx, u.ID, 7, today)
	require.NoError(t, err)
	require.Len(t, activity, 3)
	assert.Equal(t, today, activity[0].Day)
	assert.True(t, activity[0].Productive)
	assert.False(t, activity[1].Productive)
	assert.True(t, activity[2].Productive)

	wide, err := db.DailyActivity(ctx, u.ID, 30, today)
	require.NoError(t, err)
	assert.Len(t, wide, 4)
}

func TestWindowStats(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, "alice")
	ctx := context.Background()

	addTask(t, db, u.ID, 0, 30, intPtr(40), true)
	addTask(t, db, u.ID, 0, 60, nil, false)
	addTask(t, db, u.ID, 2, 45, nil, true)
	addTask(t, db, u.ID, 7, 45, nil, true) // just outside a 7-day window

	stats, err := db.WindowStats(ctx, u.ID, 7, today)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, today.AddDate(0, 0, -2), stats[0].Day)
	assert.Equal(t, 1, stats[0].TotalTasks)
	assert.Equal(t, 1, stats[0].CompletedTasks)
	assert.Equal(t, 45, stats[0].ActualMinutes)

	assert.Equal(t, today, stats[1].Day)
	assert.Equal(t, 2, stats[1].TotalTasks)
	assert.Equal(t, 1, stats[1].CompletedTasks)
	assert.Equal(t, 90, stats[1].PlannedMinutes)
	assert.Equal(t, 40, stats[1].ActualMinutes)

	require.NoError(t, analyzer.ValidateDailyStats(stats))
}

func TestOverdueCount(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, "alice")
	ctx := context.Background()

	addTask(t, db, u.ID, 1, 30, nil, false)
	addTask(t, db, u.ID, 5, 30, nil, false)
	addTask(t, db, u.ID, 2, 30, nil, true) // done, not overdue
	addTask(t, db, u.ID, 0, 30, nil, false) // due today, not overdue

	n, err := db.OverdueCount(ctx, u.ID, today)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestDurationSample(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, "alice")
	ctx := context.Background()

	sample, err := db.DurationSample(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, sample.Present())

	addTask(t, db, u.ID, 40, 30, intPtr(60), true)
	addTask(t, db, u.ID, 0, 50, intPtr(140), true)
	addTask(t, db, u.ID, 0, 500, nil, false) // open tasks are excluded

	sample, err = db.DurationSample(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, sample.Present())
	assert.InDelta(t, 100, *sample.AverageActual, 1e-9)
	assert.InDelta(t, 40, *sample.AverageEstimated, 1e-9)
}

func TestAnalyticsQueries_CanceledContext(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, "alice")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := db.WindowStats(ctx, u.ID, 7, today)
	assert.Error(t, err)
}
