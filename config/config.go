package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig
	Telegram TelegramConfig
	Web      WebConfig
	Payment  PaymentConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type TelegramConfig struct {
	Token    string
	AdminIDs []int64 // users allowed to run /add and /del
}

type WebConfig struct {
	Port      int
	WebAppURL string // where the mini app front-end lives
}

type PaymentConfig struct {
	ProviderToken string
	Currency      string
	PendingTTL    time.Duration // 0 disables the pending-order sweep
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	webPort, err := strconv.Atoi(getEnv("WEB_SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("WEB_SERVER_PORT must be a number: %w", err)
	}
	ttl, err := time.ParseDuration(getEnv("PENDING_ORDER_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("PENDING_ORDER_TTL must be a duration: %w", err)
	}

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "mamadoner"),
		},
		Telegram: TelegramConfig{
			Token:    getEnv("BOT_TOKEN", ""),
			AdminIDs: parseAdminIDs(os.Getenv("ADMIN_ID")),
		},
		Web: WebConfig{
			Port:      webPort,
			WebAppURL: getEnv("WEBAPP_URL", "https://your-webapp-url.com"),
		},
		Payment: PaymentConfig{
			ProviderToken: getEnv("PROVIDER_TOKEN", ""),
			Currency:      getEnv("CURRENCY", "USD"),
			PendingTTL:    ttl,
		},
	}, nil
}

// parseAdminIDs accepts a single id or a comma-separated list.
// Entries that are not integers are skipped.
func parseAdminIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.Telegram.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
