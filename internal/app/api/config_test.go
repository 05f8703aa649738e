package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "POSTGRES_DSN", "TEMPORAL_DISABLED", "SESSION_TTL_HOURS", "SESSION_PURGE_INTERVAL_MINUTES", "SEED_USERS", "SEED_FIXTURES", "DUMMYJSON_BASE_URL", "LOW_STOCK_THRESHOLD"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Empty(t, cfg.PostgresDSN)
	assert.False(t, cfg.TemporalDisabled)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Zero(t, cfg.SessionPurgeInterval)
	assert.True(t, cfg.SeedUsers)
	assert.Zero(t, cfg.SeedFixtures)
	assert.Equal(t, "https://dummyjson.com", cfg.DummyJSONBaseURL)
	assert.Equal(t, 5, cfg.LowStockThreshold)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TEMPORAL_DISABLED", "yes")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("SESSION_PURGE_INTERVAL_MINUTES", "15")
	t.Setenv("SEED_USERS", "false")
	t.Setenv("SEED_FIXTURES", "200")
	t.Setenv("LOW_STOCK_THRESHOLD", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.True(t, cfg.TemporalDisabled)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 15*time.Minute, cfg.SessionPurgeInterval)
	assert.False(t, cfg.SeedUsers)
	assert.Equal(t, 200, cfg.SeedFixtures)
	assert.Equal(t, 0, cfg.LowStockThreshold)
}

func TestLoadConfigRejectsInvalidNumbers(t *testing.T) {
	cases := map[string]string{
		"SESSION_TTL_HOURS":              "0",
		"SESSION_PURGE_INTERVAL_MINUTES": "soon",
		"SEED_FIXTURES":                  "-1",
		"LOW_STOCK_THRESHOLD":            "few",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := LoadConfig()
			assert.ErrorContains(t, err, key)
		})
	}
}
