package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/blackwell-systems/taskwatch/internal/analyzer"
	"github.com/blackwell-systems/taskwatch/internal/output"
	"github.com/blackwell-systems/taskwatch/internal/store"
	"github.com/spf13/cobra"
)

var (
	habitDesc      string
	habitFrequency string
	habitDate      string
	habitMissed    bool
	habitNotes     string
)

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Track habits and their streaks",
}

var habitAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a habit",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitAdd,
}

var habitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits with current and best streaks",
	Args:  cobra.NoArgs,
	RunE:  runHabitList,
}

var habitLogCmd = &cobra.Command{
	Use:   "log <id>",
	Short: "Log a habit for a day",
	Long: `Record that a habit was done (or, with --missed, not done) on a day and
recompute its streak. Logging the same day twice replaces the first entry.
Days without a log do not break the streak; a --missed log does.`,
	Args: cobra.ExactArgs(1),
	RunE: runHabitLog,
}

var habitDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a habit and its logs",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitDelete,
}

func init() {
	habitAddCmd.Flags().StringVar(&habitDesc, "desc", "", "Description")
	habitAddCmd.Flags().StringVar(&habitFrequency, "frequency", store.RecurDaily, "Frequency: daily, weekly, monthly")

	habitLogCmd.Flags().StringVar(&habitDate, "date", "today", "Day to log (YYYY-MM-DD, today, yesterday)")
	habitLogCmd.Flags().BoolVar(&habitMissed, "missed", false, "Record the habit as not done")
	habitLogCmd.Flags().StringVar(&habitNotes, "notes", "", "Notes for the day")

	habitCmd.AddCommand(habitAddCmd, habitListCmd, habitLogCmd, habitDeleteCmd)
	rootCmd.AddCommand(habitCmd)
}

// ownHabit loads a habit and checks it belongs to userID.
func ownHabit(db *store.DB, userID, id int64) (*store.Habit, error) {
	h, err := db.GetHabit(id)
	if err != nil {
		return nil, err
	}
	if h.UserID != userID {
		return nil, fmt.Errorf("habit %d: %w", id, store.ErrNotFound)
	}
	return h, nil
}

// logHabit records a log entry, recomputes the habit's current and best
// streaks from its full log history, and returns the updated habit.
func logHabit(db *store.DB, habitID int64, day time.Time, completed bool, notes string) (*store.Habit, error) {
	if err := db.LogHabit(habitID, day, completed, notes); err != nil {
		return nil, err
	}
	activity, err := db.HabitActivity(habitID)
	if err != nil {
		return nil, err
	}
	streak, err := analyzer.ComputeStreak(activity)
	if err != nil {
		return nil, fmt.Errorf("habit %d streak: %w", habitID, err)
	}
	best, err := analyzer.BestStreak(activity)
	if err != nil {
		return nil, fmt.Errorf("habit %d best streak: %w", habitID, err)
	}
	slog.Debug("habit streak recomputed", "habit", habitID, "logs", len(activity), "streak", streak, "best", best)

	if err := db.UpdateHabitStreak(habitID, streak, best); err != nil {
		return nil, err
	}
	return db.GetHabit(habitID)
}

func runHabitAdd(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	u, err := e.currentUser()
	if err != nil {
		return err
	}
	h := &store.Habit{UserID: u.ID, Name: args[0], Description: habitDesc, Frequency: habitFrequency}
	if err := e.db.CreateHabit(h); err != nil {
		return err
	}

	if flagJSON {
		return outputJSON(h)
	}
	fmt.Printf(" %s Added habit #%d %s (%s)\n", output.StyleSuccess.Render("✓"), h.ID,
		output.StyleBold.Render(h.Name), h.Frequency)
	return nil
}

func runHabitList(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	u, err := e.currentUser()
	if err != nil {
		return err
	}
	habits, err := e.db.ListHabits(u.ID)
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(habits)
	}

	fmt.Println(output.Section("Habits"))
	fmt.Println()
	if len(habits) == 0 {
		fmt.Println(" No habits yet. Add one with 'taskwatch habit add <name>'.")
		return nil
	}
	tbl := output.NewTable("ID", "Habit", "Frequency", "Streak", "Best").AlignRight(0, 4)
	for _, h := range habits {
		tbl.AddRow(fmt.Sprintf("%d", h.ID), h.Name, h.Frequency,
			output.StreakBadge(h.Streak), fmt.Sprintf("%d", h.BestStreak))
	}
	tbl.Print()
	return nil
}

func runHabitLog(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	day, err := parseDate(habitDate)
	if err != nil {
		return err
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
	if _, err := ownHabit(e.db, u.ID, id); err != nil {
		return err
	}

	h, err := logHabit(e.db, id, day, !habitMissed, habitNotes)
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(h)
	}

	mark := output.StyleSuccess.Render("✓")
	if habitMissed {
		mark = output.StyleMuted.Render("✗")
	}
	fmt.Printf(" %s %s on %s  %s  best %d\n", mark, output.StyleBold.Render(h.Name),
		analyzer.DayKey(day), output.StreakBadge(h.Streak), h.BestStreak)
	return nil
}

func runHabitDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
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
	h, err := ownHabit(e.db, u.ID, id)
	if err != nil {
		return err
	}
	if err := e.db.DeleteHabit(h.ID); err != nil {
		return err
	}
	fmt.Printf(" Deleted habit #%d %s\n", h.ID, h.Name)
	return nil
}
