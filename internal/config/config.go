package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the dashboard.
type Config struct {
	DatabaseURL     string
	TelegramToken   string
	TelegramOwnerID int64
	ResetInterval   time.Duration
	ResetAt         string
	LogLevel        string
	LogFormat       string
	Location        *time.Location
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is applied first when present;
// variables already set in the environment win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		DatabaseURL:   envStr("DATABASE_URL", "zen_dashboard.db"),
		TelegramToken: envStr("TELEGRAM_TOKEN", ""),
		ResetInterval: parseInterval(envStr("RESET_INTERVAL_HOURS", "1")),
		ResetAt:       envStr("RESET_AT", "00:00"),
		LogLevel:      strings.ToLower(envStr("LOG_LEVEL", "info")),
		LogFormat:     strings.ToLower(envStr("LOG_FORMAT", "text")),
		Location:      time.Local,
	}

	if raw := envStr("TELEGRAM_OWNER_ID", ""); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("TELEGRAM_OWNER_ID must be a chat id: %w", err)
		}
		cfg.TelegramOwnerID = id
	}

	if name := envStr("TZ_NAME", ""); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			return cfg, fmt.Errorf("TZ_NAME: %w", err)
		}
		cfg.Location = loc
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json", "otel":
	default:
		return fmt.Errorf("LOG_FORMAT must be text, json or otel, got %q", c.LogFormat)
	}
	if c.ResetInterval <= 0 {
		return fmt.Errorf("RESET_INTERVAL_HOURS must be a positive number of hours")
	}
	if _, err := time.Parse("15:04", c.ResetAt); err != nil {
		return fmt.Errorf("RESET_AT must be HH:MM, got %q", c.ResetAt)
	}
	return nil
}

// RequireBot checks the settings only the Telegram front end needs.
func (c Config) RequireBot() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if c.TelegramOwnerID == 0 {
		return fmt.Errorf("TELEGRAM_OWNER_ID is required")
	}
	return nil
}

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
