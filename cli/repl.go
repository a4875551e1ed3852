package cli

import (
	"nlsqlchat/repl"

	"github.com/spf13/cobra"
)

func newREPLCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Ask questions from the terminal",
		Example: `  nlsqlchat repl --file sales.csv
  NLSQL_API_URL=http://backend:5000 nlsqlchat repl`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd)
			app := newApp(cfg, newClient(cfg))
			shell := repl.New(app, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return shell.Run(cmd.Context(), file)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV or Excel file to upload on start")
	return cmd
}
