package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tend/internal/api"
	"github.com/balkashynov/tend/internal/auth"
	"github.com/balkashynov/tend/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

		addr := cfg.Server.Addr
		if flag, _ := cmd.Flags().GetString("addr"); flag != "" {
			addr = flag
		}

		secret, dev := cfg.SigningSecret()
		if dev {
			log.Warn("auth.secret is not set, using the development secret")
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		srv := api.New(store, auth.NewIssuer(secret, cfg.Auth.SessionTTL), api.Options{
			CookieName:   cfg.Auth.CookieName,
			SecureCookie: cfg.Auth.SecureCookie,
			AccessLog:    os.Stdout,
			Logger:       logging.Component(log, "api"),
		})
		return srv.Run(cmd.Context(), addr, cfg.Server.ShutdownTimeout)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default server.addr)")
}
