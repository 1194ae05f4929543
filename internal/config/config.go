package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds process-wide settings read once at startup. It is never
// mutated afterwards; everything downstream receives it by value.
type Config struct {
	Port      string
	Env       string
	MongoURI  string
	MongoDB   string
	JWTSecret string
	JWTExpiry time.Duration
}

const defaultJWTSecret = "dev"

func Load() Config {
	cfg := Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("ENV", "development"),
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "propertyhub"),
		JWTSecret: getEnv("JWT_SECRET", defaultJWTSecret),
		JWTExpiry: time.Duration(getEnvInt("JWT_EXP_MINUTES", 60)) * time.Minute,
	}

	if cfg.Env == "production" && cfg.JWTSecret == defaultJWTSecret {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid integer in environment, using fallback", "key", key, "value", v)
		return fallback
	}
	return n
}
