package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	AI       AIConfig       `yaml:"ai"`
	Market   MarketConfig   `yaml:"market"`
	Monitor  MonitorConfig  `yaml:"monitor"`
	Alerts   AlertsConfig   `yaml:"alerts"`
	Web      WebConfig      `yaml:"web"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type AIConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type MarketConfig struct {
	QuoteTimeoutSeconds int `yaml:"quote_timeout_seconds"`
	CacheTTLSeconds     int `yaml:"cache_ttl_seconds"`
	HistoryDays         int `yaml:"history_days"`
}

type MonitorConfig struct {
	Interval        string `yaml:"interval"`
	SummaryHour     int    `yaml:"summary_hour"`
	MarketHoursOnly bool   `yaml:"market_hours_only"`
}

type AlertsConfig struct {
	Cooldown     string `yaml:"cooldown"`
	HistoryLimit int    `yaml:"history_limit"`
}

type WebConfig struct {
	Port int `yaml:"port"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func Load(path string) (*Config, error) {
	// .env is optional, matches the local development workflow
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnv(cfg)
	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// applyEnv lets secrets live in the environment instead of the config file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		}
	}
	if v := os.Getenv("AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.AI.BaseURL == "" {
		cfg.AI.BaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-1.5-flash"
	}
	if cfg.AI.TimeoutSeconds == 0 {
		cfg.AI.TimeoutSeconds = 60
	}
	if cfg.Market.QuoteTimeoutSeconds == 0 {
		cfg.Market.QuoteTimeoutSeconds = 10
	}
	if cfg.Market.CacheTTLSeconds == 0 {
		cfg.Market.CacheTTLSeconds = 300
	}
	if cfg.Market.HistoryDays == 0 {
		cfg.Market.HistoryDays = 90
	}
	if cfg.Monitor.Interval == "" {
		cfg.Monitor.Interval = "5m"
	}
	if cfg.Monitor.SummaryHour == 0 {
		cfg.Monitor.SummaryHour = 9
	}
	if cfg.Alerts.Cooldown == "" {
		cfg.Alerts.Cooldown = "1h"
	}
	if cfg.Alerts.HistoryLimit == 0 {
		cfg.Alerts.HistoryLimit = 100
	}
	if cfg.Web.Port == 0 {
		cfg.Web.Port = 8080
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

func (c *Config) Validate() error {
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == 0 {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}
	if _, err := time.ParseDuration(c.Monitor.Interval); err != nil {
		return fmt.Errorf("invalid monitor.interval %q: %w", c.Monitor.Interval, err)
	}
	if _, err := time.ParseDuration(c.Alerts.Cooldown); err != nil {
		return fmt.Errorf("invalid alerts.cooldown %q: %w", c.Alerts.Cooldown, err)
	}
	if c.Monitor.SummaryHour < 0 || c.Monitor.SummaryHour > 23 {
		return fmt.Errorf("monitor.summary_hour must be between 0 and 23")
	}
	return nil
}

// AIEnabled reports whether AI commentary is configured. The bot degrades
// gracefully without it.
func (c *Config) AIEnabled() bool {
	return c.AI.APIKey != ""
}

func (c *Config) MonitorInterval() time.Duration {
	d, _ := time.ParseDuration(c.Monitor.Interval)
	return d
}

func (c *Config) AlertCooldown() time.Duration {
	d, _ := time.ParseDuration(c.Alerts.Cooldown)
	return d
}

func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

func (c *Config) QuoteTimeout() time.Duration {
	return time.Duration(c.Market.QuoteTimeoutSeconds) * time.Second
}

func (c *Config) QuoteCacheTTL() time.Duration {
	return time.Duration(c.Market.CacheTTLSeconds) * time.Second
}

func (c *Config) MarketLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}
