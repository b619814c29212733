package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment.
// A .env file in the working directory is loaded first; absence is fine.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	cfg.ServerBaseURL = getEnv("SHELFKEEPER_SERVER_URL", cfg.ServerBaseURL)
	cfg.DatabasePath = getEnv("SHELFKEEPER_DB_PATH", cfg.DatabasePath)
	cfg.RequestTimeout = getEnvAsDuration("SHELFKEEPER_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.VerifyTimeout = getEnvAsDuration("SHELFKEEPER_VERIFY_TIMEOUT", cfg.VerifyTimeout)
	cfg.LogLevel = getEnv("SHELFKEEPER_LOG_LEVEL", cfg.LogLevel)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
