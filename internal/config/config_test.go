package config

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestConfigLoad_Defaults(t *testing.T) {
	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8000" {
		t.Fatalf("unexpected base url: %s", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.HTTPTimeout)
	}
	if cfg.MCPTransport != TransportStdio || cfg.MCPAddr != ":11545" {
		t.Fatalf("unexpected mcp defaults: %+v", cfg)
	}
	if strings.HasPrefix(cfg.PrefsDir, "~") {
		t.Fatalf("prefs dir not expanded: %s", cfg.PrefsDir)
	}
	if cfg.HasPassword() || cfg.HasSession() {
		t.Fatalf("no credentials expected: %+v", cfg)
	}
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	t.Setenv("JOURNAL_BASE_URL", "https://journal.example.com/")
	t.Setenv("JOURNAL_HTTP_TIMEOUT", "5s")
	t.Setenv("JOURNAL_EMAIL", "me@example.com")
	t.Setenv("JOURNAL_PASSWORD", "pw")
	t.Setenv("JOURNAL_LOG_LEVEL", "DEBUG")
	t.Setenv("JOURNAL_MCP_TRANSPORT", "http")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.BaseURL != "https://journal.example.com" {
		t.Fatalf("trailing slash not trimmed: %s", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("timeout override failed: %s", cfg.HTTPTimeout)
	}
	if !cfg.HasPassword() {
		t.Fatalf("expected credentials")
	}
	if cfg.Level() != zerolog.DebugLevel {
		t.Fatalf("level: %s", cfg.Level())
	}
}

func TestResolveDefaults_Rejects(t *testing.T) {
	cases := map[string]Config{
		"relative url": {BaseURL: "/api", HTTPTimeout: time.Second, LogLevel: "info", MCPTransport: "stdio"},
		"zero timeout": {BaseURL: "http://x", LogLevel: "info", MCPTransport: "stdio"},
		"bad level":    {BaseURL: "http://x", HTTPTimeout: time.Second, LogLevel: "loud", MCPTransport: "stdio"},
		"bad mcp":      {BaseURL: "http://x", HTTPTimeout: time.Second, LogLevel: "info", MCPTransport: "sse"},
	}
	for name, c := range cases {
		c := c
		if err := c.ResolveDefaults(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestConfigLoad_EmptyEnvFallsBack(t *testing.T) {
	t.Setenv("JOURNAL_BASE_URL", "")
	t.Setenv("JOURNAL_LOG_LEVEL", "")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("empty BASE_URL should fall back: %q", cfg.BaseURL)
	}
	if cfg.Level() != zerolog.InfoLevel {
		t.Fatalf("level: %s", cfg.Level())
	}
}

func TestLoad_DefersValidation(t *testing.T) {
	t.Setenv("JOURNAL_BASE_URL", "localhost:8000")

	if _, err := New(); err == nil {
		t.Fatalf("expected New to reject a schemeless BASE_URL")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.BaseURL = "http://127.0.0.1:1/"
	if err := cfg.ResolveDefaults(); err != nil {
		t.Fatalf("override should validate: %v", err)
	}
	if cfg.BaseURL != "http://127.0.0.1:1" {
		t.Fatalf("base url: %s", cfg.BaseURL)
	}
}
