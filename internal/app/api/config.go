package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	"github.com/Apurer/retail-inventory-api/internal/clients/http/dummyjson"
	usersapp "github.com/Apurer/retail-inventory-api/internal/domains/users/application"
	"github.com/Apurer/retail-inventory-api/internal/platform/metrics"
)

// Config carries environment-driven settings shared by the API, worker and purger processes.
type Config struct {
	Port              string
	PostgresDSN       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	SessionTTL        time.Duration
	// SessionPurgeInterval repeats the purge when set. Zero purges once and exits.
	SessionPurgeInterval time.Duration
	DummyJSONBaseURL     string
	SeedUsers            bool
	SeedFixtures         int
	LowStockThreshold    int
	LogLevel             string
}

// LoadConfig reads environment variables, applies defaults, and validates numeric values.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		SessionTTL:        usersapp.DefaultSessionTTL,
		DummyJSONBaseURL:  envDefault("DUMMYJSON_BASE_URL", dummyjson.DefaultBaseURL),
		SeedUsers:         true,
		LowStockThreshold: metrics.DefaultLowStockThreshold,
		LogLevel:          envDefault("LOG_LEVEL", "info"),
	}
	if raw, ok := lookup("SEED_USERS"); ok {
		cfg.SeedUsers = isTruthy(raw)
	}
	hours, err := positiveInt("SESSION_TTL_HOURS")
	if err != nil {
		return Config{}, err
	}
	if hours > 0 {
		cfg.SessionTTL = time.Duration(hours) * time.Hour
	}
	minutes, err := positiveInt("SESSION_PURGE_INTERVAL_MINUTES")
	if err != nil {
		return Config{}, err
	}
	cfg.SessionPurgeInterval = time.Duration(minutes) * time.Minute
	if raw, ok := lookup("SEED_FIXTURES"); ok {
		count, err := strconv.Atoi(raw)
		if err != nil || count < 0 {
			return Config{}, fmt.Errorf("SEED_FIXTURES must be a non-negative integer")
		}
		cfg.SeedFixtures = count
	}
	if raw, ok := lookup("LOW_STOCK_THRESHOLD"); ok {
		threshold, err := strconv.Atoi(raw)
		if err != nil || threshold < 0 {
			return Config{}, fmt.Errorf("LOW_STOCK_THRESHOLD must be a non-negative integer")
		}
		cfg.LowStockThreshold = threshold
	}
	return cfg, nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

// positiveInt returns 0 when key is unset and fails on anything but a positive integer.
func positiveInt(key string) (int, error) {
	raw, ok := lookup(key)
	if !ok {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return value, nil
}

func lookup(key string) (string, bool) {
	val := strings.TrimSpace(os.Getenv(key))
	return val, val != ""
}

func envDefault(key, fallback string) string {
	if val, ok := lookup(key); ok {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
