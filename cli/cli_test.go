package cli

import (
	"bytes"
	"testing"
	"time"

	"nlsqlchat/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithConfig(t *testing.T, args ...string) *config.Config {
	t.Helper()
	var got *config.Config
	root := NewRootCmd()
	root.AddCommand(&cobra.Command{
		Use: "show-config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			got = configFrom(cmd)
			return nil
		},
	})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"show-config"}, args...))
	require.NoError(t, root.Execute())
	require.NotNil(t, got)
	return got
}

func TestRootFlagsReachConfig(t *testing.T) {
	t.Setenv("NLSQL_API_URL", "")
	t.Setenv("REACT_APP_API_URL", "")

	cfg := runWithConfig(t, "--api-url", "http://backend:5000/", "--timeout", "5s", "--page-size", "25")
	assert.Equal(t, "http://backend:5000", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.DefaultTimeout)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, config.DefaultHistoryLimit, cfg.HistoryLimit)
}

func TestRootEnvUsedWithoutFlags(t *testing.T) {
	t.Setenv("NLSQL_API_URL", "http://env:5000")

	cfg := runWithConfig(t)
	assert.Equal(t, "http://env:5000", cfg.APIURL)
}

func TestSubcommandsRegistered(t *testing.T) {
	root := NewRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["repl"])

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.NotNil(t, serve.Flags().Lookup("port"))

	replCmd, _, err := root.Find([]string{"repl"})
	require.NoError(t, err)
	assert.NotNil(t, replCmd.Flags().Lookup("file"))
}
