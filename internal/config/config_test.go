package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "log_level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "./data/workoutlog.db", cfg.Database.Path)
	assert.Equal(t, SessionBackendDatabase, cfg.Session.GetBackend())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 6, cfg.Auth.MinPasswordLength)
	assert.Len(t, cfg.Workouts, 3)
}

func TestLoad_CustomWorkouts(t *testing.T) {
	path := writeConfig(t, `
timezone: Europe/Rome
database:
  path: /tmp/wl.db
workouts:
  - day: " A "
    name: Full body
    exercises:
      - id: burpees
        name: Burpees
        sets: 5
        reps: "10"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Workouts, 1)
	assert.Equal(t, "a", cfg.Workouts[0].Day)
	assert.Equal(t, "burpees", cfg.Workouts[0].Exercises[0].ID)
	assert.Equal(t, "Europe/Rome", cfg.Location().String())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("WORKOUTLOG_DATABASE_PATH", "/tmp/env.db")
	path := writeConfig(t, "log_level: info\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.Database.Path)
}

func TestSessionConfig_GetBackend(t *testing.T) {
	var nilConfig *SessionConfig
	assert.Equal(t, SessionBackendDatabase, nilConfig.GetBackend())
	assert.Equal(t, SessionBackendDatabase, (&SessionConfig{}).GetBackend())
	assert.Equal(t, SessionBackendRedis, (&SessionConfig{Backend: SessionBackendRedis}).GetBackend())
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: true,
		},
		{
			name:    "invalid timezone",
			mutate:  func(c *Config) { c.Timezone = "Mars/Olympus" },
			wantErr: true,
		},
		{
			name:    "redis backend without url",
			mutate:  func(c *Config) { c.Session.Backend = SessionBackendRedis },
			wantErr: true,
		},
		{
			name: "redis backend with url",
			mutate: func(c *Config) {
				c.Session.Backend = SessionBackendRedis
				c.Session.RedisURL = "localhost:6379"
			},
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Session.Backend = "cookie" },
			wantErr: true,
		},
		{
			name:    "bcrypt cost too low",
			mutate:  func(c *Config) { c.Auth.BcryptCost = 2 },
			wantErr: true,
		},
		{
			name: "duplicate exercise id",
			mutate: func(c *Config) {
				c.Workouts[1].Exercises = append(c.Workouts[1].Exercises, Exercise{ID: "pushups"})
			},
			wantErr: true,
		},
		{
			name:   "nil session falls back to database",
			mutate: func(c *Config) { c.Session = nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
