package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tend/internal/db"
	"github.com/balkashynov/tend/internal/models"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List todos",
	Long:    "List open todos, or completed ones with --completed / --today, optionally for one habit or value",
	Run: withStore(func(cmd *cobra.Command, args []string, store *db.Store) {
		ctx, user := cmd.Context(), currentUser()
		completed, _ := cmd.Flags().GetBool("completed")
		today, _ := cmd.Flags().GetBool("today")
		habitID, _ := cmd.Flags().GetUint("habit")
		valueID, _ := cmd.Flags().GetUint("value")

		var (
			todos []models.Todo
			err   error
		)
		switch {
		case today:
			todos, err = store.ListCompletedTodayNoEvent(ctx, user)
		case completed:
			todos, err = store.ListCompleted(ctx, user)
		case habitID != 0:
			todos, err = store.ListIncompleteByHabit(ctx, user, habitID)
		case valueID != 0:
			todos, err = store.ListIncompleteByValue(ctx, user, valueID)
		default:
			todos, err = store.ListIncomplete(ctx, user)
		}
		if err != nil {
			fmt.Printf("Error fetching todos: %v\n", err)
			return
		}

		if len(todos) == 0 {
			fmt.Println("No todos found. Use 'tend add \"todo description\"' to create your first todo.")
			return
		}

		// Print table header
		fmt.Printf("%-5s %-5s %-40s %s\n", "ID", "DONE", "CONTENT", "UNDER")
		fmt.Println(strings.Repeat("-", 70))

		for _, todo := range todos {
			done := ""
			if todo.Completed {
				done = "✓"
			}
			fmt.Printf("%-5d %-5s %-40s %s\n", todo.ItemID, done, truncate(todo.Content, 38), parentLabel(todo))
		}
	}),
}

// parentLabel renders what a todo is filed under.
func parentLabel(todo models.Todo) string {
	switch p := todo.Parent(); p.Kind {
	case models.ParentValue:
		if todo.Value != nil {
			return "value: " + todo.Value.Description
		}
		return fmt.Sprintf("value #%d", p.ID)
	case models.ParentHabit:
		if todo.Habit != nil {
			return "habit: " + todo.Habit.Description
		}
		return fmt.Sprintf("habit #%d", p.ID)
	case models.ParentInput:
		return fmt.Sprintf("input #%d", p.ID)
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	listCmd.Flags().Bool("completed", false, "Show completed todos")
	listCmd.Flags().Bool("today", false, "Show top-level todos completed today")
	listCmd.Flags().Uint("habit", 0, "Show open todos of this habit id")
	listCmd.Flags().Uint("value", 0, "Show open todos under this value id")
}
