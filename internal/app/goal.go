package app

import (
	"fmt"
	"strconv"

	"github.com/blackwell-systems/taskwatch/internal/analyzer"
	"github.com/blackwell-systems/taskwatch/internal/output"
	"github.com/blackwell-systems/taskwatch/internal/store"
	"github.com/spf13/cobra"
)

var (
	goalDesc   string
	goalTarget string
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Track long-running goals",
}

var goalAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a goal with a target date",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalAdd,
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals by target date",
	Args:  cobra.NoArgs,
	RunE:  runGoalList,
}

var goalProgressCmd = &cobra.Command{
	Use:   "progress <id> <percent>",
	Short: "Set goal progress (0-100)",
	Long: `Set a goal's progress as a percentage. A goal at 100 is completed;
setting a lower value reopens it.`,
	Args: cobra.ExactArgs(2),
	RunE: runGoalProgress,
}

var goalDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalDelete,
}

func init() {
	goalAddCmd.Flags().StringVar(&goalDesc, "desc", "", "Description")
	goalAddCmd.Flags().StringVar(&goalTarget, "target", "", "Target date (YYYY-MM-DD)")
	_ = goalAddCmd.MarkFlagRequired("target")

	goalCmd.AddCommand(goalAddCmd, goalListCmd, goalProgressCmd, goalDeleteCmd)
	rootCmd.AddCommand(goalCmd)
}

// ownGoal finds goal id among userID's goals.
func ownGoal(db *store.DB, userID, id int64) (*store.Goal, error) {
	goals, err := db.ListGoals(userID)
	if err != nil {
		return nil, err
	}
	for i := range goals {
		if goals[i].ID == id {
			return &goals[i], nil
		}
	}
	return nil, fmt.Errorf("goal %d: %w", id, store.ErrNotFound)
}

func runGoalAdd(cmd *cobra.Command, args []string) error {
	target, err := parseDate(goalTarget)
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
	g := &store.Goal{UserID: u.ID, Title: args[0], Description: goalDesc, TargetDate: target}
	if err := e.db.CreateGoal(g); err != nil {
		return err
	}

	if flagJSON {
		return outputJSON(g)
	}
	fmt.Printf(" %s Added goal #%d %s (target %s)\n", output.StyleSuccess.Render("✓"), g.ID,
		output.StyleBold.Render(g.Title), analyzer.DayKey(g.TargetDate))
	return nil
}

func runGoalList(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	u, err := e.currentUser()
	if err != nil {
		return err
	}
	goals, err := e.db.ListGoals(u.ID)
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(goals)
	}

	fmt.Println(output.Section("Goals"))
	fmt.Println()
	if len(goals) == 0 {
		fmt.Println(" No goals yet. Add one with 'taskwatch goal add <title> --target YYYY-MM-DD'.")
		return nil
	}

	t := today()
	tbl := output.NewTable("ID", "Goal", "Target", "Progress")
	for _, g := range goals {
		target := analyzer.DayKey(g.TargetDate)
		switch {
		case g.Completed:
			target = output.StyleSuccess.Render(target)
		case g.TargetDate.Before(t):
			target = output.StyleError.Render(target)
		}
		tbl.AddRow(fmt.Sprintf("%d", g.ID), g.Title, target, output.ProgressBar(g.Progress, 20))
	}
	tbl.Print()
	return nil
}

func runGoalProgress(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	progress, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid progress %q", args[1])
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
	g, err := ownGoal(e.db, u.ID, id)
	if err != nil {
		return err
	}
	if err := e.db.UpdateGoalProgress(g.ID, progress); err != nil {
		return err
	}

	fmt.Printf(" %s %s\n", output.StyleBold.Render(g.Title), output.ProgressBar(progress, 20))
	if progress >= 100 {
		fmt.Printf(" %s Goal completed!\n", output.StyleSuccess.Render("✓"))
	}
	return nil
}

func runGoalDelete(cmd *cobra.Command, args []string) error {
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
	g, err := ownGoal(e.db, u.ID, id)
	if err != nil {
		return err
	}
	if err := e.db.DeleteGoal(g.ID); err != nil {
		return err
	}
	fmt.Printf(" Deleted goal #%d %s\n", g.ID, g.Title)
	return nil
}
