// Package config loads service configuration from the environment, with
// sensible defaults for local development.
package config

import (
	"os"
	"time"
)

type Config struct {
	ServiceName string
	Port        string

	// DBDriver is "sqlite" or "postgres"; DBDSN is driver-specific.
	DBDriver string
	DBDSN    string

	// RedisAddr enables the product read cache when non-empty.
	RedisAddr string

	JWTSecret string
	JWTTTL    time.Duration

	// GatewayURL points at the external payment gateway. Empty means the
	// built-in simulated gateway (local development only).
	GatewayURL     string
	GatewayTimeout time.Duration

	// UploadDir is where product image files are written and served from.
	UploadDir string
}

func Load() Config {
	return Config{
		ServiceName:    getEnv("OTEL_SERVICE_NAME", "ecommerce-api"),
		Port:           getEnv("PORT", "8080"),
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBDSN:          getEnv("DB_DSN", "./data/ecommerce.db"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTTTL:         getDuration("JWT_TTL", time.Hour),
		GatewayURL:     os.Getenv("GATEWAY_URL"),
		GatewayTimeout: getDuration("GATEWAY_TIMEOUT", 30*time.Second),
		UploadDir:      getEnv("UPLOAD_DIR", "./public/images"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
