package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, "beach_volley.db", cfg.DatabasePath)
	assert.Equal(t, 24*time.Hour, cfg.SessionLifetime)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, int64(2000), cfg.EntryFeeCents)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.AllowedOrigins)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"PORT":             "9000",
		"STORE_DRIVER":     "file",
		"DATA_FILE":        "/tmp/state.json",
		"SESSION_LIFETIME": "2h",
		"LOG_LEVEL":        "debug",
		"ALLOWED_ORIGINS":  "https://a.example, https://b.example,",
		"DISCORD_KEY":      "key",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, StoreFile, cfg.StoreDriver)
	assert.Equal(t, "/tmp/state.json", cfg.DataFile)
	assert.Equal(t, 2*time.Hour, cfg.SessionLifetime)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "key", cfg.DiscordKey)
}

func TestFromEnvInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"port not a number":  {"PORT": "http"},
		"port out of range":  {"PORT": "70000"},
		"unknown driver":     {"STORE_DRIVER": "redis"},
		"bad lifetime":       {"SESSION_LIFETIME": "forever"},
		"bad log level":      {"LOG_LEVEL": "loud"},
		"negative entry fee": {"DEFAULT_ENTRY_FEE_CENTS": "-1"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envMap(env))
			assert.Error(t, err)
		})
	}
}
