package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	DBPath string
}

// Load reads server configuration. JWT_SECRET and FITLOG_TIMEZONE are
// read by the auth and dates packages themselves; loading the .env
// file here makes them visible there too.
func Load() *Config {
	// We ignore the error here as we might be running in an environment
	// where env vars are set directly (e.g. docker/k8s).
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("FITLOG_ENV", "development"),
		DBPath:      getEnv("FITLOG_DB_PATH", "fitlog.db"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
