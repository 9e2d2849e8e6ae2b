package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blackwell-systems/taskwatch/internal/output"
	"github.com/blackwell-systems/taskwatch/internal/report"
	"github.com/blackwell-systems/taskwatch/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	watchInterval string
	watchQuiet    bool
	watchNotify   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Monitor tasks and send reminders",
	Long: `Run a foreground monitor that periodically re-evaluates the active
user's tasks. When something notable happens (new overdue tasks, a broken
streak, a streak milestone, a finished day) an alert is printed and,
with --notify, sent as a desktop notification.

Examples:
  taskwatch watch                    # check every 10 minutes (ctrl-c to stop)
  taskwatch watch --interval 1m      # check every minute
  taskwatch watch --notify --quiet   # desktop notifications only`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchInterval, "interval", "10m", "Check interval as duration string (e.g. 5m, 1h)")
	watchCmd.Flags().BoolVar(&watchQuiet, "quiet", false, "Suppress terminal output, only send notifications")
	watchCmd.Flags().BoolVar(&watchNotify, "notify", false, "Send desktop notifications")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	interval, err := time.ParseDuration(watchInterval)
	if err != nil {
		return fmt.Errorf("invalid interval %q: %w", watchInterval, err)
	}
	if interval < 30*time.Second {
		return fmt.Errorf("interval must be at least 30s, got %s", interval)
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	u, err := e.currentUser()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	alertFn := func(a watcher.Alert) {
		if watchNotify {
			_ = watcher.Notify(a)
		}
		if !watchQuiet {
			printAlert(a)
		}
	}

	snap := watcher.StoreSnapshot(e.db, u.ID, report.WindowsFromConfig(e.cfg), now)
	w := watcher.New(snap, interval, alertFn)

	initial, err := w.Baseline(ctx)
	if err != nil {
		return err
	}
	if !watchQuiet {
		fmt.Printf("taskwatch watching %s... (checking every %s)\n", u.Username, interval)
		fmt.Printf("[%s] %s streak %d, %d open today, %d overdue\n",
			initial.Timestamp.Format("15:04:05"),
			output.StyleSuccess.Render("✓"),
			initial.Streak, initial.OpenToday, initial.OverdueCount)
	}

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		if !watchQuiet {
			fmt.Println("\nStopped.")
		}
		return nil
	}
	return err
}

// printAlert formats and prints an alert to the terminal.
func printAlert(a watcher.Alert) {
	fmt.Printf("[%s] %s %s\n", a.Time.Format("15:04:05"), alertIcon(a.Level), output.StyleBold.Render(a.Title))
	if a.Message != "" {
		fmt.Printf("           %s\n", a.Message)
	}
}

// alertIcon returns the terminal indicator for an alert level.
func alertIcon(level string) string {
	switch level {
	case watcher.LevelCritical:
		return output.StyleError.Render("●")
	case watcher.LevelWarning:
		return output.StyleWarning.Render("▲")
	case watcher.LevelInfo:
		return output.StyleSuccess.Render("✓")
	default:
		return " "
	}
}
