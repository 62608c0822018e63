package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tend/internal/db"
	"github.com/balkashynov/tend/internal/models"
	"github.com/balkashynov/tend/internal/parser"
)

var addCmd = &cobra.Command{
	Use:   "add [todo description]",
	Short: "Add a new todo",
	Long: `Add a new todo, optionally filed under a value, habit or input.

Modes:
  Interactive: tend add (no arguments opens the TUI)
  Quick: tend add "Buy milk" --value 3
  Smart parsing: tend add "Buy milk +value:3"

Smart parsing syntax:
  +value:ID   - File under a value
  +habit:ID   - Instance of a habit
  +input:ID   - Reply to an input`,
	Args: cobra.ArbitraryArgs,
	Run: withStore(func(cmd *cobra.Command, args []string, store *db.Store) {
		if len(args) == 0 {
			if err := runTUI(cmd, store); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		valueID, _ := cmd.Flags().GetUint("value")
		habitID, _ := cmd.Flags().GetUint("habit")
		req, problems := addRequest(strings.Join(args, " "), valueID, habitID)
		if len(problems) > 0 {
			fmt.Printf("⚠️  Found issues with parsing: %s\n", strings.Join(problems, ", "))
			return
		}

		todo, err := store.CreateTodo(cmd.Context(), currentUser(), req)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("✅ New todo \"%s\" added - ID: %d\n", todo.Content, todo.ItemID)
		if label := parentLabel(*todo); label != "" {
			fmt.Printf("Filed under: %s\n", label)
		}
	}),
}

// addRequest builds the todo for `tend add`. The --value and --habit flags
// override an inline reference; --habit wins when both are given.
func addRequest(text string, valueID, habitID uint) (db.CreateTodoRequest, []string) {
	parsed := parser.ParseContent(text)
	if valueID != 0 {
		parsed.Type, parsed.ParentID = models.TodoValue, &valueID
	}
	if habitID != 0 {
		parsed.Type, parsed.ParentID = models.TodoHabit, &habitID
	}
	return db.CreateTodoRequest{
		Content:  parsed.Content,
		Type:     parsed.Type,
		ParentID: parsed.ParentID,
	}, parsed.Errors
}

func init() {
	addCmd.Flags().Uint("value", 0, "File the todo under this value id")
	addCmd.Flags().Uint("habit", 0, "Make the todo an instance of this habit id")
}
