// Package report assembles a user's productivity report from the store: the
// current streak, per-day statistics, and recommendations.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/blackwell-systems/taskwatch/internal/analyzer"
	"github.com/blackwell-systems/taskwatch/internal/config"
	"github.com/blackwell-systems/taskwatch/internal/store"
	"github.com/blackwell-systems/taskwatch/internal/suggest"
	"golang.org/x/sync/errgroup"
)

// Report is a user's productivity picture as of one day.
type Report struct {
	Today           string                   `json:"today"`
	StatsWindowDays int                      `json:"stats_window_days"`
	StreakMode      string                   `json:"streak_mode"`
	Streak          int                      `json:"streak"`
	Activity        []analyzer.DailyActivity `json:"activity"`
	WindowStats     []analyzer.DailyStats    `json:"window_stats"`
	Summary         analyzer.WindowSummary   `json:"summary"`
	OverdueCount    int                      `json:"overdue_count"`
	Durations       analyzer.DurationSample  `json:"durations"`
	Recommendations []suggest.Recommendation `json:"recommendations"`
}

// Windows selects the trailing window sizes and streak semantics.
type Windows struct {
	StatsDays  int
	StreakDays int
	StreakMode string
}

// WindowsFromConfig returns the configured windows.
func WindowsFromConfig(cfg *config.Config) Windows {
	return Windows{
		StatsDays:  cfg.Analytics.StatsWindowDays,
		StreakDays: cfg.Analytics.StreakWindowDays,
		StreakMode: cfg.Streak.Mode,
	}
}

// Gather runs the four analytics queries concurrently, then derives the
// streak and recommendations from their results. The first failing query
// cancels the others.
func Gather(ctx context.Context, db *store.DB, userID int64, w Windows, day time.Time) (*Report, error) {
	r := &Report{Today: analyzer.DayKey(day), StatsWindowDays: w.StatsDays, StreakMode: w.StreakMode}

	started := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		r.Activity, err = db.DailyActivity(gctx, userID, w.StreakDays, day)
		return err
	})
	g.Go(func() error {
		var err error
		r.WindowStats, err = db.WindowStats(gctx, userID, w.StatsDays, day)
		return err
	})
	g.Go(func() error {
		var err error
		r.OverdueCount, err = db.OverdueCount(gctx, userID, day)
		return err
	})
	g.Go(func() error {
		var err error
		r.Durations, err = db.DurationSample(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading analytics: %w", err)
	}
	slog.Debug("analytics loaded",
		"user", userID,
		"activity_days", len(r.Activity),
		"stats_days", len(r.WindowStats),
		"overdue", r.OverdueCount,
		"elapsed", time.Since(started))

	var err error
	if w.StreakMode == config.StreakCalendar {
		r.Streak, err = analyzer.ComputeCalendarStreak(r.Activity)
	} else {
		r.Streak, err = analyzer.ComputeStreak(r.Activity)
	}
	if err != nil {
		return nil, fmt.Errorf("computing streak: %w", err)
	}

	r.Summary = analyzer.Summarize(r.WindowStats)
	r.Recommendations, err = suggest.BuildRecommendations(r.OverdueCount, r.WindowStats, r.Durations)
	if err != nil {
		return nil, fmt.Errorf("building recommendations: %w", err)
	}
	return r, nil
}
