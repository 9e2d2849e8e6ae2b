package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/taskwatch/internal/analyzer"
	"github.com/blackwell-systems/taskwatch/internal/output"
	"github.com/blackwell-systems/taskwatch/internal/store"
	"github.com/spf13/cobra"
)

var (
	taskDesc      string
	taskCategory  string
	taskPriority  string
	taskDate      string
	taskSlot      string
	taskEstimate  int
	taskTags      string
	taskRecurring string
	taskView      string
	taskActual    int
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Plan, list, and complete tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task for a day",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks for a day",
	Long: `List the active user's tasks for one day, ordered by time slot and then
priority. Use --view kanban to show open and completed tasks side by side.`,
	Args: cobra.NoArgs,
	RunE: runTaskList,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task completed",
	Long: `Mark a task completed now. Without --actual the estimated duration is
recorded as the actual duration.`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskDone,
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDelete,
}

func init() {
	f := taskAddCmd.Flags()
	f.StringVar(&taskDesc, "desc", "", "Description")
	f.StringVar(&taskCategory, "category", "", "Category name (see the user's categories)")
	f.StringVar(&taskPriority, "priority", string(store.PriorityMedium), "Priority: high, medium, low")
	f.StringVar(&taskDate, "date", "today", "Day the task is planned for (YYYY-MM-DD, today, tomorrow)")
	f.StringVar(&taskSlot, "slot", "", "Time slot, e.g. 09:00-10:00")
	f.IntVar(&taskEstimate, "estimate", store.DefaultEstimateMinutes, "Estimated duration in minutes")
	f.StringVar(&taskTags, "tags", "", "Comma-separated tags")
	f.StringVar(&taskRecurring, "recurring", store.RecurNone, "Recurrence: none, daily, weekly, monthly")

	lf := taskListCmd.Flags()
	lf.StringVar(&taskDate, "date", "today", "Day to list (YYYY-MM-DD, today, tomorrow, yesterday)")
	lf.StringVar(&taskCategory, "category", "", "Only this category")
	lf.StringVar(&taskPriority, "priority", "", "Only this priority")
	lf.StringVar(&taskView, "view", "list", "Layout: list or kanban")

	taskDoneCmd.Flags().IntVar(&taskActual, "actual", 0, "Actual duration in minutes (default: the estimate)")

	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskDoneCmd, taskDeleteCmd)
	rootCmd.AddCommand(taskCmd)
}

// matchCategory returns the user's category whose name equals name, ignoring
// case. An empty name is allowed and returns "".
func matchCategory(db *store.DB, userID int64, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	cats, err := db.ListCategories(userID)
	if err != nil {
		return "", err
	}
	names := make([]string, len(cats))
	for i, c := range cats {
		if strings.EqualFold(c.Name, name) {
			return c.Name, nil
		}
		names[i] = c.Name
	}
	return "", fmt.Errorf("unknown category %q (have: %s)", name, strings.Join(names, ", "))
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	u, err := e.currentUser()
	if err != nil {
		return err
	}
	day, err := parseDate(taskDate)
	if err != nil {
		return err
	}
	category, err := matchCategory(e.db, u.ID, taskCategory)
	if err != nil {
		return err
	}
	if taskEstimate <= 0 {
		return fmt.Errorf("estimate must be positive, got %d", taskEstimate)
	}

	t := &store.Task{
		UserID:           u.ID,
		Title:            args[0],
		Description:      taskDesc,
		Category:         category,
		Priority:         store.Priority(strings.ToLower(taskPriority)),
		Date:             day,
		TimeSlot:         taskSlot,
		EstimatedMinutes: taskEstimate,
		Tags:             taskTags,
		Recurring:        strings.ToLower(taskRecurring),
	}
	if err := e.db.CreateTask(t); err != nil {
		return err
	}

	if flagJSON {
		return outputJSON(t)
	}
	fmt.Printf(" %s Added task #%d %s for %s\n", output.StyleSuccess.Render("✓"), t.ID,
		output.StyleBold.Render(t.Title), analyzer.DayKey(t.Date))
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	u, err := e.currentUser()
	if err != nil {
		return err
	}
	day, err := parseDate(taskDate)
	if err != nil {
		return err
	}
	category, err := matchCategory(e.db, u.ID, taskCategory)
	if err != nil {
		return err
	}
	priority := store.Priority(strings.ToLower(taskPriority))
	if priority != "" && !priority.Valid() {
		return fmt.Errorf("invalid priority %q", taskPriority)
	}

	tasks, err := e.db.ListTasks(store.TaskFilter{
		UserID:   u.ID,
		Date:     &day,
		Category: category,
		Priority: priority,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return outputJSON(tasks)
	}

	fmt.Println(output.Section("Tasks for " + day.Format("January 2, 2006")))
	fmt.Println()
	if len(tasks) == 0 {
		fmt.Println(" No tasks found. Add one with 'taskwatch task add <title>'.")
		return nil
	}

	switch taskView {
	case "kanban":
		fmt.Println(renderKanban(tasks))
	case "list", "":
		renderTaskList(tasks)
	default:
		return fmt.Errorf("unknown view %q (want list or kanban)", taskView)
	}
	return nil
}

func renderTaskList(tasks []store.Task) {
	tbl := output.NewTable("ID", "", "Title", "Slot", "Est", "Category", "Tags").AlignRight(0, 4)
	for _, t := range tasks {
		title := t.Title
		status := priorityMark(t.Priority)
		if t.Completed {
			title = output.StyleMuted.Render(title)
			status = output.StyleSuccess.Render("✓")
		}
		tbl.AddRow(
			fmt.Sprintf("%d", t.ID),
			status,
			title,
			t.TimeSlot,
			fmt.Sprintf("%dm", t.EstimatedMinutes),
			t.Category,
			t.Tags,
		)
	}
	tbl.Print()
}

func renderKanban(tasks []store.Task) string {
	todo := output.KanbanColumn{Title: "To Do"}
	done := output.KanbanColumn{Title: "Completed"}
	for _, t := range tasks {
		card := fmt.Sprintf("%s %s\n%s", priorityMark(t.Priority), output.StyleBold.Render(t.Title),
			output.StyleMuted.Render(fmt.Sprintf("#%d %s %dm", t.ID, t.TimeSlot, t.EstimatedMinutes)))
		if t.Completed {
			done.Cards = append(done.Cards, card)
		} else {
			todo.Cards = append(todo.Cards, card)
		}
	}
	return output.Kanban([]output.KanbanColumn{todo, done}, 32)
}

func priorityMark(p store.Priority) string {
	switch p {
	case store.PriorityHigh:
		return output.StyleError.Render("●")
	case store.PriorityMedium:
		return output.StyleWarning.Render("●")
	default:
		return output.StyleSuccess.Render("●")
	}
}

func runTaskDone(cmd *cobra.Command, args []string) error {
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
	t, err := ownTask(e.db, u.ID, id)
	if err != nil {
		return err
	}

	var actual *int
	if cmd.Flags().Changed("actual") {
		actual = &taskActual
	}
	if err := e.db.CompleteTask(t.ID, actual, now()); err != nil {
		return err
	}
	fmt.Printf(" %s Completed #%d %s\n", output.StyleSuccess.Render("✓"), t.ID, output.StyleBold.Render(t.Title))
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
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
	t, err := ownTask(e.db, u.ID, id)
	if err != nil {
		return err
	}
	if err := e.db.DeleteTask(t.ID); err != nil {
		return err
	}
	fmt.Printf(" Deleted #%d %s\n", t.ID, t.Title)
	return nil
}

// ownTask loads a task and checks it belongs to userID. Other users' tasks
// are reported as not found.
func ownTask(db *store.DB, userID, id int64) (*store.Task, error) {
	t, err := db.GetTask(id)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, fmt.Errorf("task %d: %w", id, store.ErrNotFound)
	}
	return t, nil
}
