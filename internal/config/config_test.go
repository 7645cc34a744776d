package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "./datasets", cfg.DataDir)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BONDI_DATA_DIR", "/tmp/bondi-data")
	t.Setenv("BONDI_SESSION_TTL", "2h")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "/tmp/bondi-data", cfg.DataDir)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("BONDI_SESSION_TTL", "not-a-duration")

	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty data dir",
			mutate:  func(c *Config) { c.DataDir = "" },
			wantErr: "data dir",
		},
		{
			name:    "empty secret",
			mutate:  func(c *Config) { c.SessionSecret = "" },
			wantErr: "session secret",
		},
		{
			name:    "non-positive TTL",
			mutate:  func(c *Config) { c.SessionTTL = 0 },
			wantErr: "session TTL",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "loud" },
			wantErr: "log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
