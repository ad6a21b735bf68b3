package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// Chat assistant upstreams
	Chat ChatSettings

	// Contact notifications
	ContactNotifyEmail  string
	NotificationWorkers int

	// SMTP
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                getEnvOrDefault("PORT", "8080"),
		Env:                 getEnvOrDefault("ENV", "development"),
		DatabaseURL:         mustGetEnv("DATABASE_URL"),
		RedisURL:            mustGetEnv("REDIS_URL"),
		Chat:                LoadChatSettings(),
		ContactNotifyEmail:  getEnvOrDefault("CONTACT_NOTIFY_EMAIL", ""),
		NotificationWorkers: getEnvAsIntOrDefault("NOTIFICATION_WORKERS", 2),
		SMTPHost:            getEnvOrDefault("SMTP_HOST", ""),
		SMTPPort:            getEnvOrDefault("SMTP_PORT", "587"),
		SMTPUser:            getEnvOrDefault("SMTP_USER", ""),
		SMTPPass:            getEnvOrDefault("SMTP_PASS", ""),
		SMTPFrom:            getEnvOrDefault("SMTP_FROM", "noreply@localhost"),
		FrontendURL:         getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	return cfg
}

// LoadChatSettings reads the upstream provider variables. Every value is
// optional; provider selection happens later in ResolveProvider.
func LoadChatSettings() ChatSettings {
	lyzrKey := getEnvOrDefault("LYZR_API_KEY", "")
	if lyzrKey == "" {
		lyzrKey = getEnvOrDefault("LYZR_AGENT_API_KEY", "")
	}

	d := DefaultChatSettings()
	return ChatSettings{
		LyzrAPIKey:        lyzrKey,
		LyzrEndpoint:      getEnvOrDefault("LYZR_API_URL", d.LyzrEndpoint),
		LyzrAgentID:       getEnvOrDefault("LYZR_AGENT_ID", d.LyzrAgentID),
		LyzrUserID:        getEnvOrDefault("LYZR_USER_ID", d.LyzrUserID),
		LyzrSessionID:     getEnvOrDefault("LYZR_SESSION_ID", ""),
		OpenAIAPIKey:      getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIEndpoint:    getEnvOrDefault("OPENAI_API_URL", d.OpenAIEndpoint),
		OpenAIModel:       getEnvOrDefault("OPENAI_MODEL", d.OpenAIModel),
		OpenAITemperature: getEnvAsFloatOrDefault("OPENAI_TEMPERATURE", d.OpenAITemperature),
		OpenAITopP:        getEnvAsFloatOrDefault("OPENAI_TOP_P", d.OpenAITopP),
		OpenAIMaxTokens:   getEnvAsIntOrDefault("OPENAI_MAX_TOKENS", d.OpenAIMaxTokens),
	}
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}
