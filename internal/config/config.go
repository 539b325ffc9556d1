package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort         string
	MongoURL        string
	MongoDatabase   string
	MongoCollection string
	RedisURL        string
	ViewSessionTTL  time.Duration
	FilterDebounce  time.Duration
	LogLevel        string
	LogFile         string
	TrustedProxies  []string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:         getEnv("APP_PORT", "8080"),
		MongoURL:        getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "taskboard"),
		MongoCollection: getEnv("MONGO_COLLECTION", "tasks"),
		RedisURL:        getEnv("REDIS_URL", ""),
		ViewSessionTTL:  getDuration("VIEW_SESSION_TTL", 30*time.Minute),
		FilterDebounce:  getDuration("FILTER_DEBOUNCE", 500*time.Millisecond),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         getEnv("LOG_FILE", ""),
		TrustedProxies:  parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
