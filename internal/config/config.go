package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DatabaseURL      string
	MigrationsPath   string
	CatalogFile      string
	CatalogRefresh   time.Duration
	LogLevel         string
	LogFormat        string
	Port             string
	PrometheusPort   string
	TelegramToken    string
	OperatorChatID   int64
	BusinessPhone    string
	BusinessWhatsApp string
	BusinessEmail    string
	PaymentRedirect  string
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present; real environment variables
// win over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{
		MigrationsPath:   getEnvOrDefault("MIGRATIONS_PATH", "migrations"),
		CatalogFile:      os.Getenv("CATALOG_FILE"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:        getEnvOrDefault("LOG_FORMAT", "text"),
		Port:             getEnvOrDefault("PORT", "8080"),
		PrometheusPort:   getEnvOrDefault("PROMETHEUS_PORT", "9090"),
		TelegramToken:    os.Getenv("TELEGRAM_TOKEN"),
		BusinessPhone:    os.Getenv("BUSINESS_PHONE"),
		BusinessWhatsApp: os.Getenv("BUSINESS_WHATSAPP"),
		BusinessEmail:    os.Getenv("BUSINESS_EMAIL"),
		PaymentRedirect:  os.Getenv("PAYMENT_REDIRECT_URL"),
	}

	// Required environment variables
	if cfg.DatabaseURL = os.Getenv("DATABASE_URL"); cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	refresh, err := time.ParseDuration(getEnvOrDefault("CATALOG_REFRESH", "5m"))
	if err != nil || refresh <= 0 {
		return nil, fmt.Errorf("CATALOG_REFRESH must be a positive duration like 5m")
	}
	cfg.CatalogRefresh = refresh

	if raw := os.Getenv("OPERATOR_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("OPERATOR_CHAT_ID must be an integer: %w", err)
		}
		cfg.OperatorChatID = id
	}

	if cfg.BusinessWhatsApp == "" {
		cfg.BusinessWhatsApp = cfg.BusinessPhone
	}

	return cfg, nil
}

// TelegramEnabled reports whether the bot channel should start
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != ""
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
