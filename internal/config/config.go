package config

import (
	"os"
	"strconv"
	"time"

	"github.com/explainit/backend/internal/judge"
	"github.com/explainit/backend/internal/store"
)

// Config is assembled entirely from the environment; the service is meant
// to run as a twelve-factor container with no flag surface.
type Config struct {
	Port string

	// Durable backend selection: Postgres wins when both are set, Redis
	// otherwise, volatile-only when neither is.
	DatabaseURL   string
	RedisURL      string
	RedisPassword string

	TogetherAPIKey  string
	TogetherBaseURL string
	TogetherModel   string

	// PublicURL is the externally reachable base URL, used for QR join
	// links behind a reverse proxy.
	PublicURL string

	RoomTTL       time.Duration
	AllowResubmit bool

	LogLevel  string
	LogPretty bool
}

// Load reads the environment, applying defaults for anything unset.
func Load() (*Config, error) {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		TogetherAPIKey:  getEnv("TOGETHER_API_KEY", ""),
		TogetherBaseURL: getEnv("TOGETHER_BASE_URL", judge.DefaultBaseURL),
		TogetherModel:   getEnv("TOGETHER_MODEL", judge.DefaultModel),
		PublicURL:       getEnv("PUBLIC_URL", ""),
		RoomTTL:         getDuration("ROOM_TTL", store.DefaultRetention),
		AllowResubmit:   getBool("ALLOW_RESUBMIT", true),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogPretty:       getBool("LOG_PRETTY", false),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
