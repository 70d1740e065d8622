package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabaseURL     string
	DatabasePath    string
	MigrationsPath  string
	SessionSecret   string
	SessionDuration time.Duration
	GeminiAPIKey    string
	TextModel       string
	SpeechModel     string
	MaxUploadSize   int64
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		DatabasePath:    getEnv("DB_PATH", "./accentai.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		SessionSecret:   getEnv("SESSION_SECRET", "accent-practice-secret"),
		SessionDuration: getDurationDays("SESSION_DAYS", 30),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		TextModel:       getEnv("GEMINI_TEXT_MODEL", "gemini-2.5-flash"),
		SpeechModel:     getEnv("GEMINI_SPEECH_MODEL", "gemini-2.5-flash-preview-tts"),
		MaxUploadSize:   10 * 1024 * 1024, // 10MB, covers a minute of recorded audio
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationDays reads an integer day count from the environment
func getDurationDays(key string, defaultDays int) time.Duration {
	days := defaultDays
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			days = parsed
		}
	}
	return time.Duration(days) * 24 * time.Hour
}
