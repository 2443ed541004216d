package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Session   SessionConfig   `yaml:"session"`
	Admin     AdminConfig     `yaml:"admin"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type ServerConfig struct {
	Host         string `yaml:"host" env:"SERVER_HOST, overwrite"`
	Port         string `yaml:"port" env:"SERVER_PORT, overwrite"`
	Mode         string `yaml:"mode" env:"SERVER_MODE, overwrite"` // debug, release, test
	ReadTimeout  int    `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT, overwrite"`   // seconds
	WriteTimeout int    `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT, overwrite"` // seconds
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DB_DRIVER, overwrite"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn" env:"DB_DSN, overwrite"`
}

// SessionConfig controls the signed session cookie.
type SessionConfig struct {
	Secret     string `yaml:"secret" env:"SESSION_SECRET, overwrite"`
	ExpireHour int    `yaml:"expire_hour" env:"SESSION_EXPIRE_HOUR, overwrite"`
	CookieName string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME, overwrite"`
	Secure     bool   `yaml:"secure" env:"SESSION_SECURE, overwrite"`
}

// AdminConfig is the development admin account seeded at startup.
type AdminConfig struct {
	Email    string `yaml:"email" env:"ADMIN_EMAIL, overwrite"`
	Password string `yaml:"password" env:"ADMIN_PASSWORD, overwrite"`
	Name     string `yaml:"name" env:"ADMIN_NAME, overwrite"`
	Company  string `yaml:"company" env:"ADMIN_COMPANY, overwrite"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL, overwrite"` // debug, info, warn, error
}

// RateLimitConfig throttles POST /login per client IP.
type RateLimitConfig struct {
	LoginRPS   float64 `yaml:"login_rps" env:"LOGIN_RPS, overwrite"`
	LoginBurst int     `yaml:"login_burst" env:"LOGIN_BURST, overwrite"`
}

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.overrideFromEnv(context.Background(), envconfig.OsLookuper()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultSessionSecret is only fit for development.
const DefaultSessionSecret = "portal-secret-key-change-in-production"

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         "8080",
			Mode:         "debug",
			ReadTimeout:  15,
			WriteTimeout: 15,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "portal.db?_foreign_keys=on",
		},
		Session: SessionConfig{
			Secret:     DefaultSessionSecret,
			ExpireHour: 24,
			CookieName: "portal_session",
		},
		Admin: AdminConfig{
			Email:    "admin@consultoria.py",
			Password: "admin123",
			Name:     "Administrador",
			Company:  "Consultoría PY",
		},
		Log: LogConfig{
			Level: "info",
		},
		RateLimit: RateLimitConfig{
			LoginRPS:   1,
			LoginBurst: 5,
		},
	}
}

func (c *Config) overrideFromEnv(ctx context.Context, lookuper envconfig.Lookuper) error {
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   c,
		Lookuper: lookuper,
	}); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	return nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is required")
	}
	if c.Session.Secret == "" {
		return errors.New("session secret is required")
	}
	if c.Session.ExpireHour <= 0 {
		return fmt.Errorf("session expire_hour must be positive, got %d", c.Session.ExpireHour)
	}
	if c.Session.CookieName == "" {
		return errors.New("session cookie_name is required")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unsupported server mode: %s", c.Server.Mode)
	}
	if c.RateLimit.LoginRPS <= 0 || c.RateLimit.LoginBurst <= 0 {
		return errors.New("rate_limit login_rps and login_burst must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (c *Config) Save(configPath string) error {
	if configPath == "" {
		configPath = "config.yaml"
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}
