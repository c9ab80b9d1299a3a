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

	// YouTube Data API
	YouTubeAPIKey string

	// OpenRouter (OpenAI-compatible)
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	SummaryModel      string

	// Summarization limits
	MaxTranscriptTokens int
	MaxSummaryTokens    int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                getEnvOrDefault("PORT", "5000"),
		Env:                 getEnvOrDefault("ENV", "development"),
		YouTubeAPIKey:       mustGetEnv("YOUTUBE_API_KEY"),
		OpenRouterAPIKey:    mustGetEnv("OPENROUTER_API_KEY"),
		OpenRouterBaseURL:   getEnvOrDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		SummaryModel:        getEnvOrDefault("SUMMARY_MODEL", "gpt-3.5-turbo"),
		MaxTranscriptTokens: getEnvAsIntOrDefault("MAX_TRANSCRIPT_TOKENS", 12000),
		MaxSummaryTokens:    getEnvAsIntOrDefault("MAX_SUMMARY_TOKENS", 2000),
		FrontendURL:         getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
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
