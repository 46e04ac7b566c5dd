package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/tasks")
	t.Setenv("JWT_SECRET", "secret")
}

func TestParseDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.AppPort != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.AppPort)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production by default, got %q", cfg.AppEnv)
	}
	if cfg.DevEndpointsEnabled {
		t.Fatal("dev endpoints must be disabled by default")
	}
	if cfg.JWTTTL != 720*time.Hour {
		t.Fatalf("expected 720h token ttl, got %s", cfg.JWTTTL)
	}
	if cfg.RedisEnabled() {
		t.Fatal("redis should be disabled without REDIS_ADDR/REDIS_URL")
	}
}

func TestParseMissingSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/tasks")
	t.Setenv("JWT_SECRET", "")

	_, err := Parse()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestDevEndpointsRequireExplicitFlag(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "development")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.DevEndpointsEnabled {
		t.Fatal("development env alone must not enable dev endpoints")
	}

	t.Setenv("DEV_ENDPOINTS_ENABLED", "true")
	cfg, err = Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !cfg.DevEndpointsEnabled {
		t.Fatal("expected dev endpoints enabled")
	}
}

func TestDevEndpointsRejectedInProduction(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "Production")
	t.Setenv("DEV_ENDPOINTS_ENABLED", "true")

	if _, err := Parse(); err == nil {
		t.Fatal("expected error enabling dev endpoints in production")
	}
}

func TestSeedingRefusedInProduction(t *testing.T) {
	setRequired(t)

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cfg.SeedingAllowed(); err == nil {
		t.Fatal("seeding allowed with the default (production) APP_ENV")
	}

	t.Setenv("APP_ENV", "development")
	cfg, err = Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cfg.SeedingAllowed(); err != nil {
		t.Fatalf("seeding refused in development: %v", err)
	}
}

func TestParseDurationsAndLists(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_READ_TIMEOUT", "5s")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.HTTPReadTimeout != 5*time.Second {
		t.Fatalf("expected 5s, got %s", cfg.HTTPReadTimeout)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
	if !cfg.RedisEnabled() {
		t.Fatal("expected redis enabled")
	}
}

func TestParseRejectsBadBcryptCost(t *testing.T) {
	setRequired(t)
	t.Setenv("BCRYPT_COST", "2")

	if _, err := Parse(); err == nil {
		t.Fatal("expected error for bcrypt cost below minimum")
	}
}
