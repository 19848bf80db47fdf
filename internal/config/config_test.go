package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.ServerPort == "" {
		t.Fatalf("expected default server port")
	}
	if cfg.PostgresURL == "" {
		t.Fatalf("expected default postgres url")
	}
	if cfg.PageSize != 10 {
		t.Fatalf("expected default page size 10, got %d", cfg.PageSize)
	}
	if cfg.CacheTTL != 20 {
		t.Fatalf("expected default cache ttl 20, got %d", cfg.CacheTTL)
	}
	if cfg.LoginURL == "" {
		t.Fatalf("expected default login url")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", ":9000")
	t.Setenv("POSTGRES_URL", "postgres://example")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PAGE_SIZE", "5")
	t.Setenv("CACHE_TTL", "60")
	t.Setenv("LOGIN_URL", "/login")

	cfg := Load()
	if cfg.ServerPort != ":9000" {
		t.Fatalf("expected override port")
	}
	if cfg.PostgresURL != "postgres://example" {
		t.Fatalf("expected override postgres")
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Fatalf("expected override redis")
	}
	if cfg.JWTSecret != "secret" {
		t.Fatalf("expected override secret")
	}
	if cfg.PageSize != 5 {
		t.Fatalf("expected override page size")
	}
	if cfg.CacheTTL != 60 {
		t.Fatalf("expected override cache ttl")
	}
	if cfg.LoginURL != "/login" {
		t.Fatalf("expected override login url")
	}
}
