package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tend/internal/config"
	"github.com/balkashynov/tend/internal/db"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile string
	asUser  uint
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tend",
	Short: "A todo tracker for habits and values",
	Long: `tend keeps todos filed under the values and habits they serve.
Run the JSON API with 'tend serve', or manage todos from the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tend %s (commit %s, built %s)\n", version, commit, date)
	},
}

// openStore opens the configured database
func openStore() (*db.Store, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return db.Open(db.Config{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.DSN,
		Debug:    cfg.Log.Level == "debug",
		Location: loc,
	})
}

// withStore wraps a command function to open the database first
func withStore(fn func(*cobra.Command, []string, *db.Store)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer store.Close()
		fn(cmd, args, store)
	}
}

// currentUser is the user local commands act for.
func currentUser() uint {
	if asUser != 0 {
		return asUser
	}
	return cfg.CLI.UserID
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath(), "config file")
	rootCmd.PersistentFlags().UintVarP(&asUser, "user", "u", 0, "act as this user id (default cli.user_id)")

	// Add subcommands here
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoneCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(valueCmd)
	rootCmd.AddCommand(habitCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
