package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	SMTP       SMTPConfig
	Midtrans   MidtransConfig
	Settlement SettlementConfig
	Scheduler  SchedulerConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type MidtransConfig struct {
	ServerKey    string
	IsProduction bool
}

// SettlementConfig carries the fallback values used when the settings table
// has no row for a key. The live values are read through the settings cache.
type SettlementConfig struct {
	DefaultCommissionRate float64
	ProfitGraceDays       int
	AutoCancelMinutes     int
	FeedbackReminderDays  int
	SettingsCacheTTLMin   int
}

type SchedulerConfig struct {
	PollInterval string // cron spec for the due-job poll, e.g. "@every 15s"
	MaxAttempts  int
	RetryBackoff string // duration string, e.g. "5m"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "FitMarket"),
		},
		Midtrans: MidtransConfig{
			ServerKey:    getEnv("MIDTRANS_SERVER_KEY", ""),
			IsProduction: getEnv("MIDTRANS_IS_PRODUCTION", "false") == "true",
		},
		Settlement: SettlementConfig{
			DefaultCommissionRate: getEnvAsFloat("DEFAULT_COMMISSION_RATE", 0.10),
			ProfitGraceDays:       getEnvAsInt("PROFIT_GRACE_DAYS", 3),
			AutoCancelMinutes:     getEnvAsInt("AUTO_CANCEL_UNPAID_MINUTES", 30),
			FeedbackReminderDays:  getEnvAsInt("FEEDBACK_REMINDER_DAYS", 2),
			SettingsCacheTTLMin:   getEnvAsInt("SETTINGS_CACHE_TTL_MINUTES", 10),
		},
		Scheduler: SchedulerConfig{
			PollInterval: getEnv("SCHEDULER_POLL_INTERVAL", "@every 15s"),
			MaxAttempts:  getEnvAsInt("SCHEDULER_MAX_ATTEMPTS", 5),
			RetryBackoff: getEnv("SCHEDULER_RETRY_BACKOFF", "5m"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
