package db

import (
	"context"
	"testing"

	"taskmanager/internal/config"
)

func TestRedisOptionsFromURL(t *testing.T) {
	cfg := &config.Config{
		RedisURL:  "redis://default:pw@cache.internal:6380/2",
		RedisAddr: "ignored:6379",
	}
	opts, err := RedisOptions(cfg)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Addr != "cache.internal:6380" || opts.Password != "pw" || opts.DB != 2 {
		t.Fatalf("unexpected options: addr=%s password=%s db=%d", opts.Addr, opts.Password, opts.DB)
	}
}

func TestRedisOptionsFromAddr(t *testing.T) {
	cfg := &config.Config{RedisAddr: "localhost:6379", RedisPassword: "x", RedisDB: 1}
	opts, err := RedisOptions(cfg)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.Password != "x" || opts.DB != 1 {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestRedisOptionsBadScheme(t *testing.T) {
	if _, err := RedisOptions(&config.Config{RedisURL: "http://localhost"}); err == nil {
		t.Fatal("expected error for non-redis scheme")
	}
}

func TestConnectRedisDisabled(t *testing.T) {
	if rdb := ConnectRedis(context.Background(), &config.Config{}); rdb != nil {
		t.Fatal("expected nil client when redis is not configured")
	}
}
