package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tend/internal/db"
	"github.com/balkashynov/tend/internal/parser"
)

var doneCmd = &cobra.Command{
	Use:   "done [todo-id]",
	Short: "Mark a todo as completed",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string, store *db.Store) {
		setCompleted(cmd, store, args[0], true)
	}),
}

var undoneCmd = &cobra.Command{
	Use:   "undone [todo-id]",
	Short: "Mark a completed todo as open again",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string, store *db.Store) {
		setCompleted(cmd, store, args[0], false)
	}),
}

func setCompleted(cmd *cobra.Command, store *db.Store, arg string, completed bool) {
	todoID, err := parser.ParseID(arg)
	if err != nil {
		fmt.Printf("Error: invalid todo ID '%s'\n", arg)
		return
	}

	todo, err := store.SetCompleted(cmd.Context(), currentUser(), todoID, completed)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if completed {
		fmt.Printf("✅ Marked todo #%d as done: %s\n", todo.ItemID, todo.Content)
	} else {
		fmt.Printf("↩️  Marked todo #%d as open: %s\n", todo.ItemID, todo.Content)
	}
}
