package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("ANALYTICS_CACHE_TTL", "")
	t.Setenv("SESSION_TTL", "")

	cfg := Load()

	if cfg.Env != "development" {
		t.Fatalf("unexpected env %q", cfg.Env)
	}
	if cfg.HTTPAddr != ":8094" {
		t.Fatalf("unexpected addr %q", cfg.HTTPAddr)
	}
	if cfg.AnalyticsCacheTTL != 5*time.Minute {
		t.Fatalf("unexpected analytics ttl %v", cfg.AnalyticsCacheTTL)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("unexpected session ttl %v", cfg.SessionTTL)
	}
}

func TestLoadForcesDemoModeWithoutUpstream(t *testing.T) {
	t.Setenv("BROKERAGE_API_BASE_URL", "")
	t.Setenv("DEMO_MODE", "false")

	cfg := Load()
	if !cfg.DemoMode {
		t.Fatalf("expected demo mode without an upstream base url")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("BROKERAGE_API_BASE_URL", "https://api.example.com")
	t.Setenv("BROKERAGE_API_TIMEOUT", "10s")
	t.Setenv("DEMO_MODE", "false")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := Load()
	if cfg.DemoMode {
		t.Fatalf("demo mode should be off with an upstream configured")
	}
	if cfg.BrokerageAPITimeout != 10*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.BrokerageAPITimeout)
	}
	if cfg.RedisDB != 3 {
		t.Fatalf("unexpected redis db %d", cfg.RedisDB)
	}
	if len(cfg.CorsAllowedOrigins) != 2 || cfg.CorsAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected origins %v", cfg.CorsAllowedOrigins)
	}
}
