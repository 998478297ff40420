package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server       ServerConfig
	Storage      StorageConfig
	Email        EmailConfig
	Subscription SubscriptionConfig
	Reminder     ReminderConfig
	RateLimit    RateLimitConfig
	Log          LogConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
	TemplateDir  string
}

type StorageConfig struct {
	DataDir string
}

type EmailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
	BaseURL        string
	TemplateDir    string
}

type SubscriptionConfig struct {
	// CodeTTL bounds how long a verification code stays usable.
	// Zero disables expiry.
	CodeTTL time.Duration
}

type ReminderConfig struct {
	// Interval between reminder sweeps. Zero or negative disables the
	// scheduler.
	Interval time.Duration
}

type RateLimitConfig struct {
	// SubscribePerSecond limits how fast the public subscribe endpoints
	// accept requests per client.
	SubscribePerSecond float64
	SubscribeBurst     int
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8000"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:  getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:   getEnv("TLS_KEY_FILE", ""),
			TemplateDir:  getEnv("PAGE_TEMPLATE_DIR", "./web/templates/pages"),
		},
		Storage: StorageConfig{
			DataDir: getEnv("DATA_DIR", "./data"),
		},
		Email: EmailConfig{
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
			FromEmail:      getEnv("FROM_EMAIL", "no-reply@example.com"),
			FromName:       getEnv("FROM_NAME", "Task Planner"),
			BaseURL:        getEnv("BASE_URL", "http://localhost:8000"),
			TemplateDir:    getEnv("EMAIL_TEMPLATE_DIR", "./web/templates/email"),
		},
		Subscription: SubscriptionConfig{
			CodeTTL: getDurationEnv("SUBSCRIPTION_CODE_TTL", 0),
		},
		Reminder: ReminderConfig{
			Interval: getDurationEnv("REMINDER_INTERVAL", time.Hour),
		},
		RateLimit: RateLimitConfig{
			SubscribePerSecond: getFloatEnv("SUBSCRIBE_RATE_LIMIT", 1.0),
			SubscribeBurst:     getIntEnv("SUBSCRIBE_RATE_BURST", 5),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	cfg.Email.BaseURL = strings.TrimRight(cfg.Email.BaseURL, "/")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
