package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppURL                 string
	DatabaseDriver         string
	DatabaseDSN            string
	JWTSecret              string
	JWTTTL                 time.Duration
	RateLimit              int
	RateLimitBackend       string
	RedisAddr              string
	RedisPassword          string
	RedisDB                int
	RedisKeyPrefix         string
	LogLevel               string
	ShutdownTimeoutSeconds int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDriver:         getEnv("DATABASE_DRIVER", DriverSQLite),
		DatabaseDSN:            getEnv("DATABASE_DSN", "helpify.db"),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		JWTTTL:                 time.Duration(getEnvAsInt("JWT_TTL_MINUTES", 24*60)) * time.Minute,
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBackend:       getEnv("RATE_LIMIT_BACKEND", "memory"),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		RedisKeyPrefix:         getEnv("REDIS_KEY_PREFIX", "helpify:ratelimit"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_HOST/APP_PORT must not be empty (e.g. 127.0.0.1:8080)")
	}
	switch cfg.DatabaseDriver {
	case DriverSQLite, DriverPostgres, DriverMySQL:
	default:
		log.Fatalf("DATABASE_DRIVER must be one of %s, %s, %s", DriverSQLite, DriverPostgres, DriverMySQL)
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("JWT_SECRET must be at least 32 characters")
	}
	if cfg.JWTTTL <= 0 {
		log.Fatal("JWT_TTL_MINUTES must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.RateLimitBackend != "memory" && cfg.RateLimitBackend != "redis" {
		log.Fatal("RATE_LIMIT_BACKEND must be memory or redis")
	}
	if cfg.RedisDB < 0 {
		log.Fatal("REDIS_DB must not be negative")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		log.Fatal("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
