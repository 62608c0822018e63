package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tend/internal/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a session token for a user",
	Long: `Mint a signed session token. Send it as "Authorization: Bearer <token>"
or POST it to /api/session to receive the session cookie.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, dev := cfg.SigningSecret()
		if dev {
			cmd.PrintErrln("warning: auth.secret is not set, using the development secret")
		}
		token, err := auth.NewIssuer(secret, cfg.Auth.SessionTTL).Issue(currentUser())
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}
