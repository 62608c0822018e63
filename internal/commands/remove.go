package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tend/internal/db"
	"github.com/balkashynov/tend/internal/parser"
)

var removeCmd = &cobra.Command{
	Use:     "rm [todo-id]",
	Aliases: []string{"delete"},
	Short:   "Delete a todo",
	Args:    cobra.ExactArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string, store *db.Store) {
		todoID, err := parser.ParseID(args[0])
		if err != nil {
			fmt.Printf("Error: invalid todo ID '%s'\n", args[0])
			return
		}

		if err := store.DeleteTodo(cmd.Context(), currentUser(), todoID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Deleted todo #%d\n", todoID)
	}),
}
