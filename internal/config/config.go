// Package config provides configuration management functionality.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	APIURL          string        // Base URL of the inventory intelligence API
	DealershipID    int           // Dealership context sent on every request
	LogLevel        string        // debug, info, warn, error
	LogFile         string        // Log sink; the TUI owns the terminal
	RefreshInterval time.Duration // Dashboard auto-refresh cadence (0 disables)
	MaxWidth        int           // Max columns (0 = no limit)
	MaxHeight       int           // Max rows (0 = no limit)
}

// Load reads configuration from environment variables
func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		APIURL:          getEnv("LOTPULSE_API_URL", "http://localhost:8000"),
		DealershipID:    getEnvAsInt("LOTPULSE_DEALERSHIP_ID", 1),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         getEnv("LOTPULSE_LOG_FILE", "lotpulse.log"),
		RefreshInterval: time.Duration(getEnvAsInt("LOTPULSE_REFRESH_SECONDS", 0)) * time.Second,
		MaxWidth:        getEnvAsInt("LOTPULSE_MAX_WIDTH", 0),
		MaxHeight:       getEnvAsInt("LOTPULSE_MAX_HEIGHT", 0),
	}
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves an environment variable as integer with fallback
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
