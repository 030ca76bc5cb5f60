package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"healeo-sense/internal/engine"
)

type Config struct {
	VitalsServiceURL string
	RedisAddr        string
	HTTPPort         string
	VitalsPort       string
	JWTSecret        string
	CataloguePath    string
	LogLevel         slog.Level

	UTCOffsetMinutes  int
	CacheTTL          time.Duration
	RateLimitRequests int
	RateLimitWindow   time.Duration
	GlobalRateLimit   float64
	ShutdownTimeout   time.Duration
}

func NewConfig() *Config {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	return &Config{
		VitalsServiceURL: getEnv("VITALS_SERVICE_URL", "http://localhost:8081"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		VitalsPort:       getEnv("VITALS_PORT", "8081"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		CataloguePath:    getEnv("CATALOGUE_PATH", ""),
		LogLevel:         LogLevelFromEnv(slog.LevelInfo),

		UTCOffsetMinutes:  getInt("UTC_OFFSET_MINUTES", engine.DefaultUTCOffsetMinutes),
		CacheTTL:          getDuration("CACHE_TTL", 30*time.Second),
		RateLimitRequests: getInt("RATE_LIMIT_REQUESTS", 10),
		RateLimitWindow:   getDuration("RATE_LIMIT_WINDOW", 60*time.Second),
		GlobalRateLimit:   getFloat("GLOBAL_RATE_LIMIT", 100),
		ShutdownTimeout:   getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("Invalid integer in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		slog.Warn("Invalid number in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("Invalid duration in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return d
}

// LogLevelFromEnv reads LOG_LEVEL, warning and returning fallback when it does not parse.
func LogLevelFromEnv(fallback slog.Level) slog.Level {
	return getLevel("LOG_LEVEL", fallback)
}

func getLevel(key string, fallback slog.Level) slog.Level {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		slog.Warn("Invalid log level in environment, using default", "key", key, "value", value)
		return fallback
	}
	return level
}
