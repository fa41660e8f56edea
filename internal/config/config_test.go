package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	path := filepath.Join("testdata", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if !cfg.Telegram.Enabled {
		t.Fatalf("expected telegram enabled")
	}
	if cfg.Telegram.ChatID != 123456 {
		t.Fatalf("unexpected chat_id: %d", cfg.Telegram.ChatID)
	}
	if cfg.AI.Model != "gemini-1.5-flash" {
		t.Fatalf("unexpected ai.model: %s", cfg.AI.Model)
	}
	if !cfg.AIEnabled() {
		t.Fatalf("expected AI enabled with api key set")
	}
	if cfg.MonitorInterval() != 5*time.Minute {
		t.Fatalf("unexpected monitor interval: %s", cfg.MonitorInterval())
	}
	if cfg.AlertCooldown() != time.Hour {
		t.Fatalf("unexpected alert cooldown: %s", cfg.AlertCooldown())
	}
	if cfg.Alerts.HistoryLimit != 100 {
		t.Fatalf("unexpected history limit: %d", cfg.Alerts.HistoryLimit)
	}
	if cfg.Web.Port != 9090 {
		t.Fatalf("unexpected web port: %d", cfg.Web.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected log level: %s", cfg.Logging.Level)
	}

	// defaults fill in what the file omits
	if cfg.AI.BaseURL == "" {
		t.Fatalf("expected default ai.base_url")
	}
	if cfg.QuoteCacheTTL() != 5*time.Minute {
		t.Fatalf("unexpected default cache TTL: %s", cfg.QuoteCacheTTL())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join("testdata", "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestValidateRejectsBadInterval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "monitor:\n  interval: \"not-a-duration\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for bad interval")
	}
}

func TestValidateRequiresTelegramToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "telegram:\n  enabled: true\n  chat_id: 1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if os.Getenv("TELEGRAM_BOT_TOKEN") != "" {
		t.Skip("TELEGRAM_BOT_TOKEN set in environment")
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for missing bot token")
	}
}
