package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("REACT_APP_API_URL", "")
	t.Setenv("NLSQL_API_URL", "")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.DefaultTimeout)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadSize)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, 100, cfg.HistoryLimit)
	assert.False(t, cfg.CookieSecure)
}

func TestLoad_CookieSecureFromEnv(t *testing.T) {
	t.Setenv("NLSQL_COOKIE_SECURE", "true")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.True(t, cfg.CookieSecure)
}

func TestLoad_LegacyAPIURL(t *testing.T) {
	t.Setenv("REACT_APP_API_URL", "http://backend:5000/")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:5000", cfg.APIURL)
}

func TestLoad_EnvOverridesLegacy(t *testing.T) {
	t.Setenv("REACT_APP_API_URL", "http://legacy:5000")
	t.Setenv("NLSQL_API_URL", "http://primary:5000")
	t.Setenv("NLSQL_TIMEOUT", "5s")
	t.Setenv("NLSQL_HISTORY_LIMIT", "7")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "http://primary:5000", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.DefaultTimeout)
	assert.Equal(t, 7, cfg.HistoryLimit)
}

func TestLoad_FlagsWin(t *testing.T) {
	t.Setenv("NLSQL_PORT", "4000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("port", "", "")
	flags.String("api-url", "", "")
	require.NoError(t, flags.Parse([]string{"--port", "8081"}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	// unchanged flags do not clobber defaults
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
}

func TestLoad_NonPositiveValuesFallBack(t *testing.T) {
	t.Setenv("NLSQL_PAGE_SIZE", "0")
	t.Setenv("NLSQL_HISTORY_LIMIT", "-3")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
	assert.Equal(t, DefaultHistoryLimit, cfg.HistoryLimit)
}
