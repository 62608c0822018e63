package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tend/internal/db"
	"github.com/balkashynov/tend/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive todo board",
	Args:  cobra.NoArgs,
	Run: withStore(func(cmd *cobra.Command, args []string, store *db.Store) {
		if err := runTUI(cmd, store); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}

func runTUI(cmd *cobra.Command, store *db.Store) error {
	return tui.RunBoard(cmd.Context(), store, currentUser())
}
