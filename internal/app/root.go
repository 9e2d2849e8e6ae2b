// Package app contains the Cobra command tree for taskwatch.
package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/blackwell-systems/taskwatch/internal/output"
	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
	flagUser    string
)

var rootCmd = &cobra.Command{
	Use:   "taskwatch",
	Short: "Personal productivity tracking with streaks and recommendations",
	Long: `taskwatch plans tasks per day, tracks goals and habits, and turns the
history into a productivity streak, daily statistics, and a short list of
recommendations. All data lives in a local SQLite database.

Run 'taskwatch' with no arguments to see the dashboard for the active user.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupGlobals,
	RunE:              runDashboard,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/taskwatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "Act as this user instead of the logged-in one")
}

// setupGlobals installs the logger and resolves color before any command runs.
func setupGlobals(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if flagNoColor || !output.StdoutIsTerminal() {
		output.SetNoColor(true)
	}
	return nil
}
