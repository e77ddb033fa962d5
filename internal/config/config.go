package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env                 string
	HTTPAddr            string
	BrokerageAPIBaseURL string
	BrokerageAPITimeout time.Duration
	DemoMode            bool
	JWTSecret           string
	CorsAllowedOrigins  []string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	SessionTTL          time.Duration
	AnalyticsCacheTTL   time.Duration
}

func Load() Config {
	cfg := Config{
		Env:                 getEnv("APP_ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8094"),
		BrokerageAPIBaseURL: getEnv("BROKERAGE_API_BASE_URL", ""),
		BrokerageAPITimeout: getEnvDuration("BROKERAGE_API_TIMEOUT", 30*time.Second),
		DemoMode:            getEnvBool("DEMO_MODE", false),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		CorsAllowedOrigins:  splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "")),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             int(getEnvInt64("REDIS_DB", 0)),
		SessionTTL:          getEnvDuration("SESSION_TTL", 30*time.Minute),
		AnalyticsCacheTTL:   getEnvDuration("ANALYTICS_CACHE_TTL", 5*time.Minute),
	}

	// Without an upstream there is nothing real to talk to.
	if strings.TrimSpace(cfg.BrokerageAPIBaseURL) == "" {
		cfg.DemoMode = true
	}

	return cfg
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt64(key string, fallback int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func splitCSV(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
