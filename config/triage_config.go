package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	// OpenAI
	OpenAIAPIKey        string
	ClassifyModel       string
	ReplyModel          string
	ClassifyMaxTokens   int
	ReplyMaxTokens      int
	ClassifyTemperature float64
	ReplyTemperature    float64
	LLMTimeoutSec       int

	// Triage
	MaxBatchSize int

	// Metrics
	MetricsAddr string

	// CORS
	AllowedOrigins []string
}

func Load() (*Config, error) {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", ""),

		// OpenAI
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		ClassifyModel:       getEnv("LLM_CLASSIFY_MODEL", "gpt-4o-mini"),
		ReplyModel:          getEnv("LLM_REPLY_MODEL", "gpt-4o"),
		ClassifyMaxTokens:   getEnvInt("LLM_CLASSIFY_MAX_TOKENS", 10),
		ReplyMaxTokens:      getEnvInt("LLM_REPLY_MAX_TOKENS", 100),
		ClassifyTemperature: getEnvFloat("LLM_CLASSIFY_TEMPERATURE", 0.3),
		ReplyTemperature:    getEnvFloat("LLM_REPLY_TEMPERATURE", 0.4),
		LLMTimeoutSec:       getEnvInt("LLM_TIMEOUT_SEC", 30),

		// Triage
		MaxBatchSize: getEnvInt("TRIAGE_MAX_BATCH", 100),

		// Metrics
		MetricsAddr: getEnv("METRICS_ADDR", ":9091"),

		// CORS
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
