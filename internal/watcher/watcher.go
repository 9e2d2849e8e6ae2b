// Package watcher periodically re-evaluates a user's productivity report and
// emits alerts when something worth a reminder changes: new overdue tasks, a
// broken streak, a streak milestone, or a finished day.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/blackwell-systems/taskwatch/internal/analyzer"
	"github.com/blackwell-systems/taskwatch/internal/report"
	"github.com/blackwell-systems/taskwatch/internal/store"
)

// Alert levels.
const (
	LevelInfo     = "info"
	LevelWarning  = "warning"
	LevelCritical = "critical"
)

// State captures a point-in-time view of a user's productivity.
type State struct {
	Timestamp      time.Time
	Day            string
	Streak         int
	OverdueCount   int
	PlannedToday   int
	OpenToday      int
	CompletionRate float64
	HasRate        bool
}

// Alert represents a notable event detected by the watcher.
type Alert struct {
	Level   string
	Title   string
	Message string
	Time    time.Time
}

// SnapshotFunc produces the current State.
type SnapshotFunc func(ctx context.Context) (*State, error)

// Watcher takes snapshots at a regular interval and emits alerts when notable
// changes are detected.
type Watcher struct {
	snapshot      SnapshotFunc
	interval      time.Duration
	previous      *State
	alertFn       func(Alert)     // callback for emitting alerts
	lastAlertKeys map[string]bool // dedup: suppress repeated identical alerts
}

// New creates a Watcher that polls snapshot every interval.
func New(snapshot SnapshotFunc, interval time.Duration, alertFn func(Alert)) *Watcher {
	return &Watcher{
		snapshot:      snapshot,
		interval:      interval,
		alertFn:       alertFn,
		lastAlertKeys: make(map[string]bool),
	}
}

// Baseline takes the initial snapshot that later checks compare against.
func (w *Watcher) Baseline(ctx context.Context) (*State, error) {
	initial, err := w.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("initial snapshot: %w", err)
	}
	w.previous = initial
	return initial, nil
}

// Run checks at every interval until ctx is cancelled. It takes a baseline
// first unless Baseline was already called.
func (w *Watcher) Run(ctx context.Context) error {
	if w.previous == nil {
		if _, err := w.Baseline(ctx); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for _, a := range w.Check(ctx) {
				if w.alertFn != nil {
					w.alertFn(a)
				}
			}
		}
	}
}

// Check performs a single check cycle: takes a new snapshot, compares against
// the previous state, updates the previous state, and returns any alerts.
// Identical alerts are suppressed until the underlying data changes.
func (w *Watcher) Check(ctx context.Context) []Alert {
	curr, err := w.snapshot(ctx)
	if err != nil {
		return []Alert{{
			Level:   LevelWarning,
			Title:   "Snapshot failed",
			Message: fmt.Sprintf("Could not read task data: %v", err),
			Time:    time.Now(),
		}}
	}

	var raw []Alert
	if w.previous != nil {
		raw = Compare(w.previous, curr)
	}

	currentKeys := make(map[string]bool, len(raw))
	var alerts []Alert
	for _, a := range raw {
		key := a.Level + ":" + a.Title + ":" + a.Message
		currentKeys[key] = true
		if !w.lastAlertKeys[key] {
			alerts = append(alerts, a)
		}
	}
	w.lastAlertKeys = currentKeys

	w.previous = curr
	return alerts
}

// StoreSnapshot returns a SnapshotFunc that gathers userID's report from db
// with the given windows, using clock for the current time.
func StoreSnapshot(db *store.DB, userID int64, windows report.Windows, clock func() time.Time) SnapshotFunc {
	return func(ctx context.Context) (*State, error) {
		now := clock()
		day := analyzer.LocalDay(now)

		r, err := report.Gather(ctx, db, userID, windows, day)
		if err != nil {
			return nil, err
		}
		tasks, err := db.ListTasks(store.TaskFilter{UserID: userID, Date: &day})
		if err != nil {
			return nil, err
		}

		state := &State{
			Timestamp:    now,
			Day:          r.Today,
			Streak:       r.Streak,
			OverdueCount: r.OverdueCount,
			PlannedToday: len(tasks),
		}
		for _, t := range tasks {
			if !t.Completed {
				state.OpenToday++
			}
		}
		state.CompletionRate, state.HasRate = r.Summary.CompletionRate()
		return state, nil
	}
}
