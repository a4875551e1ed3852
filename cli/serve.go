package cli

import (
	"crypto/rand"
	"fmt"
	"log"

	"nlsqlchat/cache"
	"nlsqlchat/config"
	"nlsqlchat/handlers"
	"nlsqlchat/session"

	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser UI and JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd)
			backend := newClient(cfg)

			secret := []byte(cfg.SessionSecret)
			if len(secret) == 0 {
				secret = make([]byte, 32)
				if _, err := rand.Read(secret); err != nil {
					return fmt.Errorf("failed to generate session secret: %w", err)
				}
				log.Println("[SESSION] NLSQL_SESSION_SECRET not set; cookies will not survive a restart")
			}

			appSessions := cache.New(cfg.SessionTTL, func() *session.App {
				return newApp(cfg, backend)
			})
			h := handlers.New(*cfg, appSessions, handlers.NewCookieStore(secret, cfg.CookieSecure), backend)

			log.Printf("Server starting on port %s (backend %s)", cfg.Port, cfg.APIURL)
			log.Printf("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
			return h.Router().Run(":" + cfg.Port)
		},
	}
	cmd.Flags().StringP("port", "p", "", "Port to listen on (default "+config.DefaultPort+")")
	cmd.Flags().Bool("cookie-secure", false, "Mark the session cookie Secure (serve over https only)")
	return cmd
}
