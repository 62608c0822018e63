package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for tend",
	Long:  `Display detailed help for all tend commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
tend - todos for the habits and values you care about

COMMANDS:

  serve                   Run the JSON API
    --addr                Listen address (default server.addr, ":3000")

  token                   Mint a session token for --user
                          Use it as "Authorization: Bearer <token>" or POST
                          {"token": "..."} to /api/session for a cookie

  add <todo>              Create a todo (no arguments opens the board)
    --value ID            File under a value
    --habit ID            Instance of a habit

    Smart syntax:
      +value:ID     File under a value
      +habit:ID     Instance of a habit
      +input:ID     Reply to an input

    Example:
      tend add "Buy milk +value:3"

  ls                      List open todos
    --completed           Completed todos
    --today               Top-level todos completed today
    --habit ID            Open todos of one habit
    --value ID            Open todos under one value

  done <id>               Mark a todo completed
  undone <id>             Mark a todo open again
  rm <id>                 Delete a todo

  value add|ls|rm         Manage values (add takes --color)
  habit add|ls|rm         Manage habits (add takes --value)

  tui                     Interactive board
    Quick actions:
      tab           Switch between contexts, todos and the input
      ↑/↓ or k/j    Navigate
      enter         Pick a context / add the typed todo
      space         Complete the selected todo
      d             Delete the selected todo
      q / ctrl+c    Quit

GLOBAL FLAGS:
  --config PATH           Config file (default ~/.config/tend/config.yaml)
  -u, --user ID           Act as this user (default cli.user_id)

CONFIG:
  YAML keys can also be set from the environment: TEND_SERVER_ADDR,
  TEND_DATABASE_DRIVER (sqlite|postgres), TEND_DATABASE_DSN, TEND_AUTH_SECRET,
  TEND_AUTH_SESSION_TTL, TEND_LOG_LEVEL, TEND_LOG_FORMAT, TEND_CLOCK_TIMEZONE.
`)
}
