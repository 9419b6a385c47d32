package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the server and the bot.
type Config struct {
	Environment        string
	DatabaseURL        string
	HTTPAddr           string
	JWTSecret          string
	SessionTTL         time.Duration
	TelegramToken      string
	ReportTime         string
	Location           *time.Location
	RetentionDays      int
	LoginRatePerMinute int
	MainProjectKeyword string
}

// Production reports whether cookies should be marked secure and logs emitted as JSON.
func (c Config) Production() bool {
	return c.Environment == "production"
}

// BotEnabled reports whether a Telegram token was supplied.
func (c Config) BotEnabled() bool {
	return c.TelegramToken != ""
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		Environment:        strings.ToLower(getEnv("ENVIRONMENT", "development")),
		DatabaseURL:        getEnv("DATABASE_URL", "daily_quest.db"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		SessionTTL:         time.Duration(getIntEnv("SESSION_TTL_HOURS", 168)) * time.Hour,
		TelegramToken:      getEnv("TELEGRAM_TOKEN", ""),
		ReportTime:         getEnv("REPORT_TIME", "08:00"),
		RetentionDays:      getIntEnv("RETENTION_DAYS", 30),
		LoginRatePerMinute: getIntEnv("LOGIN_RATE_PER_MIN", 10),
		MainProjectKeyword: getEnv("MAIN_PROJECT_KEYWORD", "billionaire"),
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		return cfg, fmt.Errorf("TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.SessionTTL <= 0 {
		return cfg, fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}
	if cfg.RetentionDays <= 0 {
		return cfg, fmt.Errorf("RETENTION_DAYS must be positive")
	}
	if cfg.LoginRatePerMinute <= 0 {
		return cfg, fmt.Errorf("LOGIN_RATE_PER_MIN must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return n
}
