package config

import (
	"os"
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg = applyDefaults(cfg)

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.HTTP.Addr)
	}
	if cfg.Auth.TokenTTL.Minutes() != 30 {
		t.Errorf("expected 30m, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.LoginDelay != 500*time.Millisecond {
		t.Errorf("expected 500ms login delay, got %v", cfg.Auth.LoginDelay)
	}
	if cfg.Feed.Interval != 3*time.Second {
		t.Errorf("expected 3s feed interval, got %v", cfg.Feed.Interval)
	}
	if cfg.Feed.MaxMovePercent != 2.0 {
		t.Errorf("expected 2.0 max move, got %v", cfg.Feed.MaxMovePercent)
	}
	if cfg.Feed.Warmup != time.Second {
		t.Errorf("expected 1s warmup, got %v", cfg.Feed.Warmup)
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("FEED_INTERVAL", "250ms")
	defer os.Unsetenv("HTTP_ADDR")
	defer os.Unsetenv("FEED_INTERVAL")

	cfg := Config{}
	cfg = applyEnv(cfg)

	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("expected :9090, got %s", cfg.HTTP.Addr)
	}
	if cfg.Feed.Interval != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", cfg.Feed.Interval)
	}
}

func TestConfig_LoadFromFile_Missing(t *testing.T) {
	cfg, err := LoadFromFile("does-not-exist.yaml")
	if err != nil {
		t.Fatalf("expected defaults for missing file, got %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected default addr, got %s", cfg.HTTP.Addr)
	}
}

func TestConfig_LoadFromFile(t *testing.T) {
	path := t.TempDir() + "/config.yaml"
	data := []byte("http:\n  addr: \":7070\"\nfeed:\n  max_move_percent: 1.5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.HTTP.Addr != ":7070" {
		t.Errorf("expected :7070, got %s", cfg.HTTP.Addr)
	}
	if cfg.Feed.MaxMovePercent != 1.5 {
		t.Errorf("expected 1.5, got %v", cfg.Feed.MaxMovePercent)
	}
	// 未設定的欄位仍套用預設值
	if cfg.Auth.TokenTTL.Minutes() != 30 {
		t.Errorf("expected default token ttl, got %v", cfg.Auth.TokenTTL)
	}
}
