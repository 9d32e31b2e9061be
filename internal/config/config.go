package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Defaults applied when a variable is unset or set to "".
const (
	DefaultBaseURL  = "http://localhost:8000"
	DefaultLogLevel = "info"
	DefaultPrefsDir = "~/.journalapp"
)

// Config holds settings shared by the journal binaries.
// Environment variables are parsed from the JOURNAL_ prefix, for example
// JOURNAL_BASE_URL or JOURNAL_HTTP_TIMEOUT=10s.
type Config struct {
	// Backend
	BaseURL     string        `envconfig:"BASE_URL" default:"http://localhost:8000"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// Credentials. Either Email/Password for a fresh sign-in or an existing
	// SessionID/CSRFToken pair copied from a browser.
	Email     string `envconfig:"EMAIL"`
	Password  string `envconfig:"PASSWORD"`
	SessionID string `envconfig:"SESSION_ID"`
	CSRFToken string `envconfig:"CSRF_TOKEN"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	PrefsDir string `envconfig:"PREFS_DIR" default:"~/.journalapp"`

	// MCP server
	MCPTransport string `envconfig:"MCP_TRANSPORT" default:"stdio"`
	MCPAddr      string `envconfig:"MCP_ADDR" default:":11545"`

	// Dev backend
	FakeAPIAddr string `envconfig:"FAKEAPI_ADDR" default:":8000"`
}

// HasPassword reports whether email/password sign-in is configured.
func (c *Config) HasPassword() bool { return c.Email != "" && c.Password != "" }

// HasSession reports whether a session cookie pair was supplied.
func (c *Config) HasSession() bool { return c.SessionID != "" }

// Level returns the parsed log level.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// ResolveDefaults fills empty values, validates the result and expands
// PrefsDir. Callers that layer overrides on top of the environment call it
// once, after the last override.
func (c *Config) ResolveDefaults() error {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.MCPTransport == "" {
		c.MCPTransport = TransportStdio
	}
	if c.PrefsDir == "" {
		c.PrefsDir = DefaultPrefsDir
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("unsupported BASE_URL: %q", c.BaseURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("unsupported LOG_LEVEL: %s", c.LogLevel)
	}
	switch c.MCPTransport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("unsupported MCP_TRANSPORT: %s", c.MCPTransport)
	}
	dir, err := homedir.Expand(c.PrefsDir)
	if err != nil {
		return fmt.Errorf("expand PREFS_DIR: %w", err)
	}
	c.PrefsDir = dir
	return nil
}

// Load reads JOURNAL_ environment variables without validating them.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("JOURNAL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return &cfg, nil
}

// New creates a validated Config from JOURNAL_ environment variables.
func New() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("base_url", cfg.BaseURL).
		Dur("http_timeout", cfg.HTTPTimeout).
		Bool("password_present", cfg.HasPassword()).
		Bool("session_present", cfg.HasSession()).
		Str("prefs_dir", cfg.PrefsDir).
		Str("mcp_transport", cfg.MCPTransport).
		Msg("configuration loaded")

	return cfg, nil
}
