package watcher

import (
	"strings"
	"testing"
)

func state(day string, streak, overdue, planned, open int) *State {
	return &State{Day: day, Streak: streak, OverdueCount: overdue, PlannedToday: planned, OpenToday: open}
}

func titles(alerts []Alert) []string {
	out := make([]string, len(alerts))
	for i, a := range alerts {
		out[i] = a.Title
	}
	return out
}

func TestCompare_IdenticalStates(t *testing.T) {
	prev := state("2024-03-15", 3, 1, 4, 2)
	curr := state("2024-03-15", 3, 1, 4, 2)

	if alerts := Compare(prev, curr); len(alerts) != 0 {
		t.Errorf("expected 0 alerts for identical states, got %v", titles(alerts))
	}
}

func TestCompare_StreakBroken(t *testing.T) {
	alerts := Compare(state("2024-03-15", 5, 0, 0, 0), state("2024-03-15", 0, 0, 0, 0))
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %v", titles(alerts))
	}
	if alerts[0].Level != LevelCritical || alerts[0].Title != "Streak broken" {
		t.Errorf("unexpected alert %+v", alerts[0])
	}
	if !strings.Contains(alerts[0].Message, "5-day") {
		t.Errorf("message should mention the old streak: %q", alerts[0].Message)
	}
}

func TestCompare_NewOverdue(t *testing.T) {
	alerts := Compare(state("2024-03-15", 0, 1, 0, 0), state("2024-03-15", 0, 3, 0, 0))
	if len(alerts) != 1 || alerts[0].Level != LevelWarning {
		t.Fatalf("expected one warning, got %v", titles(alerts))
	}
	if alerts[0].Message != "3 task(s) are now overdue (was 1)" {
		t.Errorf("unexpected message %q", alerts[0].Message)
	}

	// Fewer overdue tasks is not alerted.
	if alerts := Compare(state("2024-03-15", 0, 3, 0, 0), state("2024-03-15", 0, 1, 0, 0)); len(alerts) != 0 {
		t.Errorf("expected no alerts, got %v", titles(alerts))
	}
}

func TestCompare_CompletionRateDrop(t *testing.T) {
	prev := state("2024-03-15", 0, 0, 0, 0)
	prev.CompletionRate, prev.HasRate = 0.75, true
	curr := state("2024-03-15", 0, 0, 0, 0)
	curr.CompletionRate, curr.HasRate = 0.5, true

	alerts := Compare(prev, curr)
	if len(alerts) != 1 || alerts[0].Title != "Completion rate dropped" {
		t.Fatalf("expected completion rate alert, got %v", titles(alerts))
	}
	if alerts[0].Message != "Completion rate is 50.0%" {
		t.Errorf("unexpected message %q", alerts[0].Message)
	}

	// Already below the threshold: no repeat.
	prev.CompletionRate = 0.4
	if alerts := Compare(prev, curr); len(alerts) != 0 {
		t.Errorf("expected no alerts, got %v", titles(alerts))
	}
}

func TestCompare_StreakMilestone(t *testing.T) {
	alerts := Compare(state("2024-03-15", 6, 0, 0, 0), state("2024-03-15", 7, 0, 0, 0))
	if len(alerts) != 1 || alerts[0].Title != "7-day streak!" {
		t.Fatalf("expected 7-day milestone, got %v", titles(alerts))
	}

	if alerts := Compare(state("2024-03-15", 7, 0, 0, 0), state("2024-03-15", 8, 0, 0, 0)); len(alerts) != 0 {
		t.Errorf("expected no alerts past a milestone, got %v", titles(alerts))
	}
}

func TestCompare_NewDayAndAllDone(t *testing.T) {
	alerts := Compare(state("2024-03-14", 2, 0, 3, 0), state("2024-03-15", 2, 0, 4, 4))
	if len(alerts) != 1 || alerts[0].Title != "New day" {
		t.Fatalf("expected new day alert, got %v", titles(alerts))
	}

	alerts = Compare(state("2024-03-15", 2, 0, 4, 1), state("2024-03-15", 2, 0, 4, 0))
	if len(alerts) != 1 || alerts[0].Title != "All done for today" {
		t.Fatalf("expected all-done alert, got %v", titles(alerts))
	}
}

func TestCompare_Ordering(t *testing.T) {
	prev := state("2024-03-15", 6, 0, 0, 0)
	curr := state("2024-03-16", 0, 2, 1, 1)

	alerts := Compare(prev, curr)
	want := []string{"Streak broken", "New overdue tasks", "New day"}
	got := titles(alerts)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("got %v, want %v", got, want)
	}
}
