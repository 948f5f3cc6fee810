package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Mail.Host != "smtp.gmail.com" || cfg.Mail.Port != 465 {
		t.Fatalf("unexpected mail defaults: %+v", cfg.Mail)
	}
	if cfg.TopLeadsLimit != 5 {
		t.Fatalf("expected top leads limit 5, got %d", cfg.TopLeadsLimit)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("expected session ttl 2h, got %s", cfg.SessionTTL)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
port: "9090"
env: prod
session_ttl: 30m
mail:
  host: smtp.example.com
  port: 2465
  from: reports@example.com
nats:
  url: nats://localhost:4222
notify:
  burst: 7
archive:
  bucket: lead-exports
  prefix: team-a
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SMTP_HOST", "relay.internal")
	t.Setenv("SMTP_USERNAME", "mailer")
	t.Setenv("SMTP_PASSWORD", "secret")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Fatalf("expected port from file, got %q", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected normalized env production, got %q", cfg.Env)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("expected session ttl 30m, got %s", cfg.SessionTTL)
	}
	if cfg.Mail.Host != "relay.internal" {
		t.Fatalf("expected env to override file host, got %q", cfg.Mail.Host)
	}
	if cfg.Mail.Port != 2465 || cfg.Mail.From != "reports@example.com" {
		t.Fatalf("unexpected mail config: %+v", cfg.Mail)
	}
	if cfg.NATSURL != "nats://localhost:4222" {
		t.Fatalf("unexpected nats url %q", cfg.NATSURL)
	}
	if cfg.NotifyBurst != 7 {
		t.Fatalf("expected burst 7, got %d", cfg.NotifyBurst)
	}
	if !cfg.Mail.Configured() {
		t.Fatalf("expected mail to be configured")
	}
	if cfg.Archive.Bucket != "lead-exports" || cfg.Archive.Prefix != "team-a" {
		t.Fatalf("unexpected archive config: %+v", cfg.Archive)
	}
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SMTP_PORT", "not-a-port")
	t.Setenv("SESSION_TTL", "soon")

	cfg := Load()
	if cfg.Mail.Port != 465 {
		t.Fatalf("expected fallback port 465, got %d", cfg.Mail.Port)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("expected fallback ttl, got %s", cfg.SessionTTL)
	}
}

func TestMailFromDefaultsToUsername(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SMTP_FROM", "")
	t.Setenv("SMTP_USERNAME", "ops@example.com")

	cfg := Load()
	if cfg.Mail.From != "ops@example.com" {
		t.Fatalf("expected from to default to username, got %q", cfg.Mail.From)
	}
}

func TestParseEnvLine(t *testing.T) {
	tests := []struct {
		line   string
		key    string
		val    string
		wantOK bool
	}{
		{line: "SMTP_HOST=smtp.example.com", key: "SMTP_HOST", val: "smtp.example.com", wantOK: true},
		{line: `export SMTP_PASSWORD="a b c"`, key: "SMTP_PASSWORD", val: "a b c", wantOK: true},
		{line: "NAME='quoted'", key: "NAME", val: "quoted", wantOK: true},
		{line: "# comment", wantOK: false},
		{line: "no-equals", wantOK: false},
		{line: "=value", wantOK: false},
	}
	for _, tt := range tests {
		key, val, ok := parseEnvLine(tt.line)
		if ok != tt.wantOK {
			t.Fatalf("parseEnvLine(%q) ok=%v, want %v", tt.line, ok, tt.wantOK)
		}
		if !ok {
			continue
		}
		if key != tt.key || val != tt.val {
			t.Fatalf("parseEnvLine(%q) = %q,%q want %q,%q", tt.line, key, val, tt.key, tt.val)
		}
	}
}
