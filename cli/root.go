// Package cli wires configuration, the backend client and the two front ends into cobra commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"nlsqlchat/client"
	"nlsqlchat/config"
	"nlsqlchat/session"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

type configKey struct{}

// NewRootCmd creates the root command with the serve and repl subcommands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nlsqlchat",
		Short: "Ask questions about a spreadsheet in plain English",
		Long: `nlsqlchat uploads a CSV or Excel file to an NL-to-SQL backend and lets you
ask questions about it, either in the browser (serve) or in the terminal (repl).`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("api-url", "", "NL-to-SQL backend base URL (default "+config.DefaultAPIURL+")")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Backend request timeout")
	rootCmd.PersistentFlags().Int64("max-upload-size", 0, "Largest file accepted for upload, in bytes")
	rootCmd.PersistentFlags().Int("page-size", 0, "Result rows per page")
	rootCmd.PersistentFlags().Int("history-limit", 0, "Questions kept in the history")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newREPLCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func configFrom(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	cfg := config.Default()
	return &cfg
}

func newApp(cfg *config.Config, backend session.Backend) *session.App {
	return session.NewApp(backend, session.Options{
		MaxUploadSize: cfg.MaxUploadSize,
		PageSize:      cfg.PageSize,
		HistoryLimit:  cfg.HistoryLimit,
	})
}

func newClient(cfg *config.Config) *client.Client {
	return client.New(cfg.APIURL, cfg.DefaultTimeout)
}
