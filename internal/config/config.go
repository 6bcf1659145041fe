package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from the environment
// (optionally seeded from a .env file in development).
type Config struct {
	Environment string
	Port        string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	// JWT signing secret for teacher and student session tokens.
	JWTSecret string

	// Shared static teacher credential. The password is kept as a bcrypt
	// hash; the plaintext never appears in configuration at rest.
	TeacherUsername     string
	TeacherPasswordHash string

	// Teacher sessions are valid for exactly this long after login.
	TeacherSessionTTL time.Duration
	StudentTokenTTL   time.Duration

	// Kafka brokers for event publishing; empty disables publishing.
	KafkaBrokers []string
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "3000"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		TeacherUsername:     getEnv("TEACHER_USERNAME", "teacher"),
		TeacherPasswordHash: os.Getenv("TEACHER_PASSWORD_HASH"),

		TeacherSessionTTL: 12 * time.Hour,
		StudentTokenTTL:   30 * 24 * time.Hour,
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.TeacherPasswordHash == "" {
		return nil, fmt.Errorf("TEACHER_PASSWORD_HASH is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
