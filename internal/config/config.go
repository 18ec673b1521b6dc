package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Chat     ChatConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	OtlpEndpoint       string
}

type DatabaseConfig struct {
	Connection string
}

// ChatConfig carries the static generation parameters for model calls.
// These are deployment-wide settings, not per-request input.
type ChatConfig struct {
	MaxTokens      int
	Temperature    float64
	TopP           float64
	HistoryWindow  int // prior messages replayed to the model per turn
	RequestTimeout int // seconds, applied by the LLM HTTP client
	DemoUserId     string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			OtlpEndpoint:       getEnv("OTLP_ENDPOINT", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Chat: ChatConfig{
			MaxTokens:      getEnvAsInt("CHAT_MAX_TOKENS", 1000),
			Temperature:    getEnvAsFloat("CHAT_TEMPERATURE", 0.7),
			TopP:           getEnvAsFloat("CHAT_TOP_P", 0.9),
			HistoryWindow:  getEnvAsInt("CHAT_HISTORY_WINDOW", 19),
			RequestTimeout: getEnvAsInt("CHAT_REQUEST_TIMEOUT_SECONDS", 120),
			DemoUserId:     getEnv("DEMO_USER_ID", "demo-user"),
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
