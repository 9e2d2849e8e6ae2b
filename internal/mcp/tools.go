package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/blackwell-systems/taskwatch/internal/analyzer"
	"github.com/blackwell-systems/taskwatch/internal/report"
	"github.com/blackwell-systems/taskwatch/internal/store"
	"github.com/blackwell-systems/taskwatch/internal/suggest"
)

// StreakResult is returned by get_streak.
type StreakResult struct {
	Today      string `json:"today"`
	Mode       string `json:"mode"`
	Streak     int    `json:"streak"`
	WindowDays int    `json:"window_days"`
}

// StatsResult is returned by get_stats.
type StatsResult struct {
	Today          string                 `json:"today"`
	WindowDays     int                    `json:"window_days"`
	Summary        analyzer.WindowSummary `json:"summary"`
	CompletionRate string                 `json:"completion_rate,omitempty"`
	Days           []analyzer.DailyStats  `json:"days"`
	OverdueCount   int                    `json:"overdue_count"`
}

// RecommendationsResult is returned by get_recommendations.
type RecommendationsResult struct {
	Recommendations []suggest.Recommendation `json:"recommendations"`
}

// TasksResult is returned by list_tasks.
type TasksResult struct {
	Date  string       `json:"date"`
	Tasks []store.Task `json:"tasks"`
}

// HabitsResult is returned by list_habits.
type HabitsResult struct {
	Habits []store.Habit `json:"habits"`
}

var (
	noArgsSchema = json.RawMessage(`{"type":"object","properties":{},"additionalProperties":false}`)
	daysSchema   = json.RawMessage(`{"type":"object","properties":{"days":{"type":"integer","description":"Window size in days (default: configured stats window)"}},"additionalProperties":false}`)
	dateSchema   = json.RawMessage(`{"type":"object","properties":{"date":{"type":"string","description":"Day in YYYY-MM-DD (default today)"}},"additionalProperties":false}`)
)

// maxWindowDays caps the days argument of get_stats.
const maxWindowDays = 365

func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "get_streak",
		Description: "Current productivity streak: consecutive recent days with at least one completed task.",
		InputSchema: noArgsSchema,
		Handler:     s.handleGetStreak,
	})
	s.registerTool(toolDef{
		Name:        "get_stats",
		Description: "Per-day task counts, planned and actual minutes, and completion rate for the trailing window.",
		InputSchema: daysSchema,
		Handler:     s.handleGetStats,
	})
	s.registerTool(toolDef{
		Name:        "get_recommendations",
		Description: "Productivity recommendations based on overdue tasks, completion rate, and time estimates.",
		InputSchema: noArgsSchema,
		Handler:     s.handleGetRecommendations,
	})
	s.registerTool(toolDef{
		Name:        "list_tasks",
		Description: "Tasks planned for a day, ordered by time slot and priority.",
		InputSchema: dateSchema,
		Handler:     s.handleListTasks,
	})
	s.registerTool(toolDef{
		Name:        "list_habits",
		Description: "Habits with their current and best streaks.",
		InputSchema: noArgsSchema,
		Handler:     s.handleListHabits,
	})
}

func (s *Server) today() string {
	return analyzer.DayKey(analyzer.LocalDay(s.clock()))
}

// gather builds the user's report with statsDays as the stats window.
func (s *Server) gather(ctx context.Context, statsDays int) (*report.Report, error) {
	w := s.windows
	w.StatsDays = statsDays
	return report.Gather(ctx, s.db, s.userID, w, analyzer.LocalDay(s.clock()))
}

func (s *Server) handleGetStreak(ctx context.Context, args json.RawMessage) (any, error) {
	r, err := s.gather(ctx, s.windows.StatsDays)
	if err != nil {
		return nil, err
	}
	return StreakResult{
		Today:      r.Today,
		Mode:       r.StreakMode,
		Streak:     r.Streak,
		WindowDays: s.windows.StreakDays,
	}, nil
}

func (s *Server) handleGetStats(ctx context.Context, args json.RawMessage) (any, error) {
	var params struct {
		Days *int `json:"days"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	days := s.windows.StatsDays
	if params.Days != nil {
		days = *params.Days
	}
	if days < 1 || days > maxWindowDays {
		return nil, fmt.Errorf("days must be between 1 and %d, got %d", maxWindowDays, days)
	}

	r, err := s.gather(ctx, days)
	if err != nil {
		return nil, err
	}
	result := StatsResult{
		Today:        r.Today,
		WindowDays:   days,
		Summary:      r.Summary,
		Days:         r.WindowStats,
		OverdueCount: r.OverdueCount,
	}
	if result.Days == nil {
		result.Days = []analyzer.DailyStats{}
	}
	if rate, ok := r.Summary.CompletionRate(); ok {
		result.CompletionRate = analyzer.FormatPercent(rate)
	}
	return result, nil
}

func (s *Server) handleGetRecommendations(ctx context.Context, args json.RawMessage) (any, error) {
	r, err := s.gather(ctx, s.windows.StatsDays)
	if err != nil {
		return nil, err
	}
	recs := r.Recommendations
	if recs == nil {
		recs = []suggest.Recommendation{}
	}
	return RecommendationsResult{Recommendations: recs}, nil
}

func (s *Server) handleListTasks(ctx context.Context, args json.RawMessage) (any, error) {
	var params struct {
		Date string `json:"date"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if params.Date == "" {
		params.Date = s.today()
	}
	day, err := analyzer.ParseDay(params.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", params.Date)
	}

	tasks, err := s.db.ListTasks(store.TaskFilter{UserID: s.userID, Date: &day})
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []store.Task{}
	}
	return TasksResult{Date: analyzer.DayKey(day), Tasks: tasks}, nil
}

func (s *Server) handleListHabits(ctx context.Context, args json.RawMessage) (any, error) {
	habits, err := s.db.ListHabits(s.userID)
	if err != nil {
		return nil, err
	}
	if habits == nil {
		habits = []store.Habit{}
	}
	return HabitsResult{Habits: habits}, nil
}
