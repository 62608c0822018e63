package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tend/internal/db"
	"github.com/balkashynov/tend/internal/parser"
)

var valueCmd = &cobra.Command{
	Use:   "value",
	Short: "Manage values",
}

var valueAddCmd = &cobra.Command{
	Use:   "add [description]",
	Short: "Add a value",
	Args:  cobra.MinimumNArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string, store *db.Store) {
		color, _ := cmd.Flags().GetString("color")
		value, err := store.CreateValue(cmd.Context(), currentUser(), db.CreateValueRequest{
			Description: strings.Join(args, " "),
			Color:       color,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ New value \"%s\" added - ID: %d\n", value.Description, value.ItemID)
	}),
}

var valueListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List values",
	Run: withStore(func(cmd *cobra.Command, args []string, store *db.Store) {
		values, err := store.ListValues(cmd.Context(), currentUser())
		if err != nil {
			fmt.Printf("Error fetching values: %v\n", err)
			return
		}
		if len(values) == 0 {
			fmt.Println("No values yet. Use 'tend value add \"Health\"' to create one.")
			return
		}
		fmt.Printf("%-5s %-30s %s\n", "ID", "DESCRIPTION", "COLOR")
		fmt.Println(strings.Repeat("-", 50))
		for _, v := range values {
			fmt.Printf("%-5d %-30s %s\n", v.ItemID, truncate(v.Description, 28), v.Color)
		}
	}),
}

var valueRemoveCmd = &cobra.Command{
	Use:   "rm [value-id]",
	Short: "Delete a value",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string, store *db.Store) {
		id, err := parser.ParseID(args[0])
		if err != nil {
			fmt.Printf("Error: invalid value ID '%s'\n", args[0])
			return
		}
		if err := store.DeleteValue(cmd.Context(), currentUser(), id); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Deleted value #%d\n", id)
	}),
}

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage habits",
}

var habitAddCmd = &cobra.Command{
	Use:   "add [description]",
	Short: "Add a habit",
	Args:  cobra.MinimumNArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string, store *db.Store) {
		req := db.CreateHabitRequest{Description: strings.Join(args, " ")}
		if valueID, _ := cmd.Flags().GetUint("value"); valueID != 0 {
			req.ValueID = &valueID
		}
		habit, err := store.CreateHabit(cmd.Context(), currentUser(), req)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ New habit \"%s\" added - ID: %d\n", habit.Description, habit.ItemID)
	}),
}

var habitListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List habits",
	Run: withStore(func(cmd *cobra.Command, args []string, store *db.Store) {
		habits, err := store.ListHabits(cmd.Context(), currentUser())
		if err != nil {
			fmt.Printf("Error fetching habits: %v\n", err)
			return
		}
		if len(habits) == 0 {
			fmt.Println("No habits yet. Use 'tend habit add \"Stretch\"' to create one.")
			return
		}
		fmt.Printf("%-5s %-30s %s\n", "ID", "DESCRIPTION", "VALUE")
		fmt.Println(strings.Repeat("-", 50))
		for _, h := range habits {
			value := ""
			if h.Value != nil {
				value = h.Value.Description
			}
			fmt.Printf("%-5d %-30s %s\n", h.ItemID, truncate(h.Description, 28), value)
		}
	}),
}

var habitRemoveCmd = &cobra.Command{
	Use:   "rm [habit-id]",
	Short: "Delete a habit",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string, store *db.Store) {
		id, err := parser.ParseID(args[0])
		if err != nil {
			fmt.Printf("Error: invalid habit ID '%s'\n", args[0])
			return
		}
		if err := store.DeleteHabit(cmd.Context(), currentUser(), id); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Deleted habit #%d\n", id)
	}),
}

func init() {
	valueAddCmd.Flags().String("color", "", "Display color, e.g. #22C55E")
	valueCmd.AddCommand(valueAddCmd, valueListCmd, valueRemoveCmd)

	habitAddCmd.Flags().Uint("value", 0, "File the habit under this value id")
	habitCmd.AddCommand(habitAddCmd, habitListCmd, habitRemoveCmd)
}
