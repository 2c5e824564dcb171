package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Rate provider settings
	RateSourceURL       string
	RateRefreshSchedule string

	// Rate limit spec in ulule/limiter format, e.g. "100-M"
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RATE_SOURCE_URL", "")
	viper.SetDefault("RATE_REFRESH_SCHEDULE", "@every 15m")
	viper.SetDefault("RATE_LIMIT", "100-M")

	// Environment variables override defaults and .env values.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.RateSourceURL = viper.GetString("RATE_SOURCE_URL")
	if cfg.RateSourceURL == "" {
		log.Println("Warning: RATE_SOURCE_URL not set. Rates must be set manually via the API.")
	}
	cfg.RateRefreshSchedule = viper.GetString("RATE_REFRESH_SCHEDULE")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
