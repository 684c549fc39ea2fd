package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration. The sonification core is
// stateless; persistence and metrics are optional and driven entirely by
// environment variables.
type Config struct {
	// Environment
	Environment string
	Port        string

	// Optional sonification history storage (postgres). Empty disables it.
	DatabaseURL string

	// Request limits enforced at the API boundary, not in the core.
	MaxSourceBytes int

	// Default style preset applied when requests omit one.
	DefaultStyle string

	// Observability
	SentryDSN string

	// Auth mode
	// - "none": No auth (self-hosted, local dev)
	// - "gateway": Trust X-User-* headers from an upstream gateway
	AuthMode string
}

const defaultMaxSourceBytes = 256 * 1024

func Load() *Config {
	return &Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MaxSourceBytes: getEnvInt("MAX_SOURCE_BYTES", defaultMaxSourceBytes),
		DefaultStyle:   getEnv("DEFAULT_STYLE", "melodic"),
		SentryDSN:      getEnv("SENTRY_DSN", ""),
		AuthMode:       getEnv("AUTH_MODE", "none"), // Default to no auth for self-hosted
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

// IsGatewayMode returns true if running behind an auth gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == "gateway"
}
