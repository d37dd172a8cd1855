package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	CORS       CORSConfig
	App        AppConfig
	MarketData MarketDataConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// AppConfig holds application-level defaults.
type AppConfig struct {
	// BaseCurrency is the reporting currency used until the settings row
	// overrides it.
	BaseCurrency string

	// EncryptionKey is the base64 fernet key used to encrypt the market-data
	// provider token at rest. Empty disables token storage.
	EncryptionKey string
}

// MarketDataConfig holds price provider configuration.
type MarketDataConfig struct {
	// RefreshSchedule is the cron expression for the daily price refresh job.
	RefreshSchedule string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/wealth_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		App: AppConfig{
			BaseCurrency:  getEnv("BASE_CURRENCY", "EUR"),
			EncryptionKey: getEnv("ENCRYPTION_KEY", ""),
		},
		MarketData: MarketDataConfig{
			RefreshSchedule: getEnv("PRICE_REFRESH_SCHEDULE", "0 6 * * *"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
