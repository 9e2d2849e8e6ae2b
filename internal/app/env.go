package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/blackwell-systems/taskwatch/internal/analyzer"
	"github.com/blackwell-systems/taskwatch/internal/config"
	"github.com/blackwell-systems/taskwatch/internal/output"
	"github.com/blackwell-systems/taskwatch/internal/report"
	"github.com/blackwell-systems/taskwatch/internal/store"
)

// now is the clock used by commands. Tests replace it.
var now = time.Now

// today returns the current local calendar date as midnight UTC, the form
// dates are stored in.
func today() time.Time {
	return analyzer.LocalDay(now())
}

// env holds the per-invocation configuration and database handle.
type env struct {
	cfg *config.Config
	db  *store.DB
}

// openEnv loads config and opens the database. Callers must Close it.
func openEnv() (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if !cfg.Output.Color {
		output.SetNoColor(true)
	}

	slog.Debug("opening database", "path", cfg.DBPath)
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return &env{cfg: cfg, db: db}, nil
}

func (e *env) Close() error {
	return e.db.Close()
}

// currentUser resolves the acting user from --user or the logged-in user
// recorded in the config file.
func (e *env) currentUser() (*store.User, error) {
	return resolveUser(e.db, flagUser, e.cfg.User)
}

func resolveUser(db *store.DB, override, configured string) (*store.User, error) {
	name := override
	if name == "" {
		name = configured
	}
	if name == "" {
		return nil, errors.New("no active user: run 'taskwatch login <name>' or pass --user")
	}
	u, err := db.UserByName(name)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("user %q is not registered: run 'taskwatch user register %s'", name, name)
	}
	return u, err
}

// parseID parses a positional row ID argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// parseDate parses a YYYY-MM-DD flag value, with "" and "today" meaning today.
func parseDate(s string) (time.Time, error) {
	switch s {
	case "", "today":
		return today(), nil
	case "tomorrow":
		return today().AddDate(0, 0, 1), nil
	case "yesterday":
		return today().AddDate(0, 0, -1), nil
	}
	t, err := analyzer.ParseDay(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func outputJSON(v any) error {
	return writeJSON(os.Stdout, v)
}

// loadReport opens the environment, resolves the user, and gathers the
// report with the configured windows. statsDays > 0 overrides the stats
// window. On success the caller must Close the returned env.
func loadReport(ctx context.Context, statsDays int) (*report.Report, *env, *store.User, error) {
	e, err := openEnv()
	if err != nil {
		return nil, nil, nil, err
	}
	u, err := e.currentUser()
	if err != nil {
		_ = e.Close()
		return nil, nil, nil, err
	}

	w := report.WindowsFromConfig(e.cfg)
	if statsDays > 0 {
		w.StatsDays = statsDays
	}
	r, err := report.Gather(ctx, e.db, u.ID, w, today())
	if err != nil {
		_ = e.Close()
		return nil, nil, nil, err
	}
	return r, e, u, nil
}
