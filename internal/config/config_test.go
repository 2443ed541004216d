package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sethvargo/go-envconfig"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %q, expected %q", cfg.Database.Driver, "sqlite")
	}
	if cfg.Admin.Email != "admin@consultoria.py" {
		t.Errorf("Admin.Email = %q, expected %q", cfg.Admin.Email, "admin@consultoria.py")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port == "" {
		t.Error("expected default port")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  port: "9090"
database:
  driver: postgres
  dsn: "host=localhost user=postgres dbname=consultoria_db"
session:
  secret: from-file
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, expected %q", cfg.Server.Port, "9090")
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Driver = %q, expected %q", cfg.Database.Driver, "postgres")
	}
	if cfg.Session.Secret != "from-file" {
		t.Errorf("Secret = %q, expected %q", cfg.Session.Secret, "from-file")
	}
	// untouched keys keep their defaults
	if cfg.Session.CookieName != "portal_session" {
		t.Errorf("CookieName = %q, expected default", cfg.Session.CookieName)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestOverrideFromEnv(t *testing.T) {
	cfg := DefaultConfig()
	lookuper := envconfig.MapLookuper(map[string]string{
		"SERVER_PORT":         "7000",
		"DB_DRIVER":           "mysql",
		"DB_DSN":              "user:pass@tcp(localhost:3306)/portal",
		"SESSION_SECRET":      "env-secret",
		"SESSION_EXPIRE_HOUR": "2",
		"SESSION_SECURE":      "true",
		"LOGIN_RPS":           "0.5",
	})

	if err := cfg.overrideFromEnv(context.Background(), lookuper); err != nil {
		t.Fatalf("overrideFromEnv() error = %v", err)
	}

	if cfg.Server.Port != "7000" {
		t.Errorf("Port = %q, expected %q", cfg.Server.Port, "7000")
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("Driver = %q, expected %q", cfg.Database.Driver, "mysql")
	}
	if cfg.Session.Secret != "env-secret" {
		t.Errorf("Secret = %q, expected %q", cfg.Session.Secret, "env-secret")
	}
	if cfg.Session.ExpireHour != 2 {
		t.Errorf("ExpireHour = %d, expected 2", cfg.Session.ExpireHour)
	}
	if !cfg.Session.Secure {
		t.Error("Secure should be true")
	}
	if cfg.RateLimit.LoginRPS != 0.5 {
		t.Errorf("LoginRPS = %v, expected 0.5", cfg.RateLimit.LoginRPS)
	}
	// not set in the environment
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Host = %q, expected default to survive", cfg.Server.Host)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }},
		{"empty dsn", func(c *Config) { c.Database.DSN = "" }},
		{"empty secret", func(c *Config) { c.Session.Secret = "" }},
		{"zero expiry", func(c *Config) { c.Session.ExpireHour = 0 }},
		{"empty cookie name", func(c *Config) { c.Session.CookieName = "" }},
		{"unknown mode", func(c *Config) { c.Server.Mode = "verbose" }},
		{"zero burst", func(c *Config) { c.RateLimit.LoginBurst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Server.Port = "1234"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Server.Port != "1234" {
		t.Errorf("Port = %q, expected %q", loaded.Server.Port, "1234")
	}
}
