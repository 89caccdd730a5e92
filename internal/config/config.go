package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              int
	NatsURL           string
	NatsToken         string
	DatabaseURL       string
	LogLevel          string
	AnthropicAPIKey   string
	AnthropicModel    string
	LLMTimeout        time.Duration
	ActivityRetention int // days of past activities kept by maintenance
	PromptHistoryKeep int // inactive prompt revisions kept per phone number
}

func Load() Config {
	// A local .env is a dev convenience; absence is not an error.
	_ = godotenv.Load()

	return Config{
		Port:              envInt("SPEAKS_PORT", 8900),
		NatsURL:           envStr("NATS_URL", "nats://localhost:4222"),
		NatsToken:         envStr("NATS_TOKEN", ""),
		DatabaseURL:       envStr("DATABASE_URL", ""),
		LogLevel:          envStr("LOG_LEVEL", "info"),
		AnthropicAPIKey:   envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:    envStr("SPEAKS_MODEL", "claude-sonnet-4-20250514"),
		LLMTimeout:        envDuration("SPEAKS_LLM_TIMEOUT", 5*time.Second),
		ActivityRetention: envInt("SPEAKS_ACTIVITY_RETENTION_DAYS", 30),
		PromptHistoryKeep: envInt("SPEAKS_PROMPT_HISTORY_KEEP", 20),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
