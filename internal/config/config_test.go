package config

import (
	"testing"
	"time"

	"github.com/AlenaMolokova/payhook/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RUN_ADDRESS", "DATABASE_URI", "JWT_SECRET", "WEBHOOK_SECRET", "TOKEN_TTL",
		"APP_ENV", "SHUTDOWN_TIMEOUT", "ADMIN_EMAIL", "ADMIN_PASSWORD",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		env     map[string]string
		check   func(t *testing.T, cfg *Config)
		wantErr error
	}{
		{
			name: "defaults with required flags",
			args: []string{"-d", "postgres://localhost/payhook", "-w", "hook"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, constants.DefaultRunAddr, cfg.RunAddr)
				assert.Equal(t, constants.DefaultTokenTTL, cfg.TokenTTL)
				assert.Equal(t, constants.EnvLocal, cfg.Env)
				assert.True(t, cfg.UsesDefaultJWTSecret())
				assert.False(t, cfg.BootstrapAdmin())
			},
		},
		{
			name: "env overrides flags",
			args: []string{"-a", ":9000", "-d", "postgres://flag/db", "-w", "flag-secret"},
			env: map[string]string{
				"RUN_ADDRESS":    ":7000",
				"DATABASE_URI":   "postgres://env/db",
				"WEBHOOK_SECRET": "env-secret",
				"TOKEN_TTL":      "1h",
				"APP_ENV":        "prod",
				"ADMIN_EMAIL":    "root@example.com",
				"ADMIN_PASSWORD": "root",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ":7000", cfg.RunAddr)
				assert.Equal(t, "postgres://env/db", cfg.DatabaseURI)
				assert.Equal(t, "env-secret", cfg.WebhookSecret)
				assert.Equal(t, time.Hour, cfg.TokenTTL)
				assert.Equal(t, constants.EnvProd, cfg.Env)
				assert.True(t, cfg.BootstrapAdmin())
			},
		},
		{
			name:    "missing database uri",
			args:    []string{"-w", "hook"},
			wantErr: ErrDatabaseURIRequired,
		},
		{
			name:    "missing webhook secret",
			args:    []string{"-d", "postgres://localhost/payhook"},
			wantErr: ErrWebhookSecretRequired,
		},
		{
			name:    "unknown environment",
			args:    []string{"-d", "postgres://localhost/payhook", "-w", "hook", "-e", "staging"},
			wantErr: ErrUnknownEnv,
		},
		{
			name:    "non positive ttl",
			args:    []string{"-d", "postgres://localhost/payhook", "-w", "hook", "-t", "0s"},
			wantErr: ErrInvalidTokenTTL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(tt.args)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_BadFlag(t *testing.T) {
	clearEnv(t)
	_, err := Load([]string{"-unknown"})
	assert.Error(t, err)
}
