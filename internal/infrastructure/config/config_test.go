package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8600", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	// Lock config: enabled out of the box, lock immediately on background,
	// inactivity locking off.
	assert.True(t, cfg.Lock.Enabled)
	assert.Equal(t, time.Duration(0), cfg.Lock.BackgroundLatency)
	assert.Equal(t, time.Duration(0), cfg.Lock.InactivityLatency)
	assert.Equal(t, "lock", cfg.Lock.LockRoute)
	assert.Equal(t, "home", cfg.Lock.ContentRoute)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, "lock", cfg.Lock.LockRoute)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                    "9600",
		"HOST":                    "127.0.0.1",
		"LOCK_ENABLED":            "false",
		"LOCK_BACKGROUND_LATENCY": "30s",
		"LOCK_INACTIVITY_LATENCY": "5m",
		"LOCK_ROUTE":              "pin-pad",
		"LOG_LEVEL":               "debug",
		"LOG_DEV":                 "true",
		"RATE_LIMIT_ENABLED":      "false",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9600", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.False(t, cfg.Lock.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Lock.BackgroundLatency)
	assert.Equal(t, 5*time.Minute, cfg.Lock.InactivityLatency)
	assert.Equal(t, "pin-pad", cfg.Lock.LockRoute)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.False(t, cfg.RateLimit.Enabled)
}
