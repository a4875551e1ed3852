package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	DefaultAPIURL        = "http://localhost:5000"
	DefaultPort          = "3000"
	DefaultTimeout       = 30 * time.Second
	DefaultMaxUploadSize = 10 * 1024 * 1024 // 10MB
	DefaultPageSize      = 50
	DefaultHistoryLimit  = 100
	DefaultSessionTTL    = 2 * time.Hour

	envPrefix = "NLSQL_"
	// legacyAPIURLEnv is the variable the browser build used to point at the backend.
	legacyAPIURLEnv = "REACT_APP_API_URL"
)

type Config struct {
	Port           string        `koanf:"port"`
	APIURL         string        `koanf:"api_url"`
	DefaultTimeout time.Duration `koanf:"timeout"`
	MaxUploadSize  int64         `koanf:"max_upload_size"`
	PageSize       int           `koanf:"page_size"`
	HistoryLimit   int           `koanf:"history_limit"`
	SessionSecret  string        `koanf:"session_secret"`
	SessionTTL     time.Duration `koanf:"session_ttl"`
	// CookieSecure marks the session cookie Secure; only set it when served over https.
	CookieSecure   bool          `koanf:"cookie_secure"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"port":            DefaultPort,
		"api_url":         DefaultAPIURL,
		"timeout":         DefaultTimeout.String(),
		"max_upload_size": DefaultMaxUploadSize,
		"page_size":       DefaultPageSize,
		"history_limit":   DefaultHistoryLimit,
		"session_secret":  "",
		"session_ttl":     DefaultSessionTTL.String(),
		"cookie_secure":   false,
	}
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Port:           DefaultPort,
		APIURL:         DefaultAPIURL,
		DefaultTimeout: DefaultTimeout,
		MaxUploadSize:  DefaultMaxUploadSize,
		PageSize:       DefaultPageSize,
		HistoryLimit:   DefaultHistoryLimit,
		SessionTTL:     DefaultSessionTTL,
	}
}

// Load reads configuration with precedence flags > NLSQL_* env > REACT_APP_API_URL > defaults.
// flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if v := os.Getenv(legacyAPIURLEnv); v != "" {
		if err := k.Load(confmap.Provider(map[string]interface{}{"api_url": v}, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", legacyAPIURLEnv, err)
		}
	}

	// NLSQL_API_URL -> api_url
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.normalize()
	return &cfg, nil
}

func (c *Config) normalize() {
	c.APIURL = strings.TrimSuffix(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.Port == "" {
		c.Port = DefaultPort
	}
	if c.DefaultTimeout <= 0 {
		c.DefaultTimeout = DefaultTimeout
	}
	if c.MaxUploadSize <= 0 {
		c.MaxUploadSize = DefaultMaxUploadSize
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = DefaultHistoryLimit
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = DefaultSessionTTL
	}
}
