package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config collects the process-level settings. Values come from the
// environment with development-friendly fallbacks.
type Config struct {
	Port          string
	DatabasePath  string
	LogFile       string
	SweepInterval time.Duration
}

// Load reads .env if present, then resolves the configuration.
func Load() Config {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	return Config{
		Port:          getEnv("PORT", ":8008"),
		DatabasePath:  getEnv("DATABASE_PATH", "faculty-portal.db"),
		LogFile:       getEnv("LOG_FILE", "logs/faculty-portal.log"),
		SweepInterval: getDuration("SWEEP_INTERVAL", 5*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
