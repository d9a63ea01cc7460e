package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AlenaMolokova/payhook/internal/constants"
	"github.com/caarlos0/env/v11"
)

var (
	ErrDatabaseURIRequired   = errors.New("DATABASE_URI is required")
	ErrWebhookSecretRequired = errors.New("WEBHOOK_SECRET is required")
	ErrUnknownEnv            = errors.New("APP_ENV must be one of local, dev, prod")
	ErrInvalidTokenTTL       = errors.New("TOKEN_TTL must be positive")
)

type Config struct {
	RunAddr         string        `env:"RUN_ADDRESS"`
	DatabaseURI     string        `env:"DATABASE_URI"`
	JWTSecret       string        `env:"JWT_SECRET"`
	WebhookSecret   string        `env:"WEBHOOK_SECRET"`
	TokenTTL        time.Duration `env:"TOKEN_TTL"`
	Env             string        `env:"APP_ENV"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
	AdminEmail      string        `env:"ADMIN_EMAIL"`
	AdminPassword   string        `env:"ADMIN_PASSWORD"`
}

// NewConfig reads the process flags and environment.
func NewConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, then flags from args, then environment variables.
// Environment wins over flags.
func Load(args []string) (*Config, error) {
	cfg := &Config{
		RunAddr:         constants.DefaultRunAddr,
		JWTSecret:       constants.DefaultJWTSecret,
		TokenTTL:        constants.DefaultTokenTTL,
		Env:             constants.DefaultEnv,
		ShutdownTimeout: constants.DefaultShutdownTimeout,
	}

	fs := flag.NewFlagSet("payhook", flag.ContinueOnError)
	fs.StringVar(&cfg.RunAddr, "a", cfg.RunAddr, "server address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "database URI")
	fs.StringVar(&cfg.JWTSecret, "j", cfg.JWTSecret, "JWT secret")
	fs.StringVar(&cfg.WebhookSecret, "w", cfg.WebhookSecret, "payment webhook signing secret")
	fs.DurationVar(&cfg.TokenTTL, "t", cfg.TokenTTL, "session token lifetime")
	fs.StringVar(&cfg.Env, "e", cfg.Env, "environment: local, dev or prod")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.DatabaseURI = strings.TrimSpace(cfg.DatabaseURI)
	cfg.WebhookSecret = strings.TrimSpace(cfg.WebhookSecret)
	cfg.AdminEmail = strings.TrimSpace(cfg.AdminEmail)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURI == "" {
		return ErrDatabaseURIRequired
	}
	if c.WebhookSecret == "" {
		return ErrWebhookSecretRequired
	}
	if c.TokenTTL <= 0 {
		return ErrInvalidTokenTTL
	}
	switch c.Env {
	case constants.EnvLocal, constants.EnvDev, constants.EnvProd:
	default:
		return ErrUnknownEnv
	}
	return nil
}

// UsesDefaultJWTSecret reports whether the built-in development secret is in effect.
func (c *Config) UsesDefaultJWTSecret() bool {
	return c.JWTSecret == constants.DefaultJWTSecret
}

// BootstrapAdmin reports whether an admin account should be ensured at startup.
func (c *Config) BootstrapAdmin() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}
