package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Reporting currency invoices are converted into.
	DefaultCurrency string

	// External exchange rate provider.
	ExchangeRateAPIURL      string
	ExchangeRateAPIKey      string
	ExchangeRateHTTPTimeout time.Duration
	ExchangeRateCacheTTL    time.Duration

	// Requests per period for the per-IP limiter, in ulule/limiter notation
	// (e.g. "100-M" for 100 per minute).
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DEFAULT_CURRENCY", "USD")
	viper.SetDefault("EXCHANGE_RATE_API_URL", "https://v6.exchangerate-api.com/v6")
	viper.SetDefault("EXCHANGE_RATE_API_KEY", "")
	viper.SetDefault("EXCHANGE_RATE_HTTP_TIMEOUT", "10s")
	viper.SetDefault("EXCHANGE_RATE_CACHE_TTL", "1h")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.DefaultCurrency = strings.ToUpper(viper.GetString("DEFAULT_CURRENCY"))
	if len(cfg.DefaultCurrency) != 3 {
		log.Printf("Warning: Invalid DEFAULT_CURRENCY (%q). Defaulting to USD.\n", cfg.DefaultCurrency)
		cfg.DefaultCurrency = "USD"
	}

	cfg.ExchangeRateAPIURL = strings.TrimRight(viper.GetString("EXCHANGE_RATE_API_URL"), "/")
	cfg.ExchangeRateAPIKey = viper.GetString("EXCHANGE_RATE_API_KEY")
	if cfg.ExchangeRateAPIKey == "" {
		log.Println("Warning: EXCHANGE_RATE_API_KEY not set. Provider calls will fail.")
	}

	cfg.ExchangeRateHTTPTimeout = durationOrDefault("EXCHANGE_RATE_HTTP_TIMEOUT", 10*time.Second)
	cfg.ExchangeRateCacheTTL = durationOrDefault("EXCHANGE_RATE_CACHE_TTL", time.Hour)

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s (%q). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
