package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"rentadmin/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Platform   PlatformConfig   `yaml:"platform"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Bot        BotConfig        `yaml:"bot"`
	Exports    ExportConfig     `yaml:"exports"`
	Admins     []int64          `yaml:"admins"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	Debug    bool   `yaml:"debug"`
}

// PlatformConfig points at the rental platform REST API and its
// public-asset host for media URL resolution.
type PlatformConfig struct {
	BaseURL               string `yaml:"base_url"`
	AssetBaseURL          string `yaml:"asset_base_url"`
	APIKey                string `yaml:"api_key"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
}

// RequestTimeout returns the configured timeout as a duration.
func (c PlatformConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type BotConfig struct {
	PaginationSize         int   `yaml:"pagination_size"`
	RateLimitMessages      int   `yaml:"rate_limit_messages"`
	RateLimitWindow        int   `yaml:"rate_limit_window"`
	MaxUploadBytes         int64 `yaml:"max_upload_bytes"`
	RefreshIntervalMinutes int   `yaml:"refresh_interval_minutes"`
}

// RefreshInterval returns the background refresh period as a duration.
func (c BotConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalMinutes) * time.Minute
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional; environment may already be populated.
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Expand ${VAR} references before unmarshalling.
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" || c.Telegram.BotToken == "YOUR_BOT_TOKEN_HERE" {
		return errors.New("telegram bot token is required")
	}

	if c.Platform.BaseURL == "" {
		return errors.New("platform base_url is required")
	}

	if c.Platform.AssetBaseURL == "" {
		return errors.New("platform asset_base_url is required")
	}

	if len(c.Admins) == 0 {
		return errors.New("at least one admin chat id is required")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "rentadmin"
	}
	if c.Platform.RequestTimeoutSeconds == 0 {
		c.Platform.RequestTimeoutSeconds = 10
	}
	// Asset URLs are joined by plain concatenation; keep the base slash-terminated.
	if c.Platform.AssetBaseURL != "" && !strings.HasSuffix(c.Platform.AssetBaseURL, "/") {
		c.Platform.AssetBaseURL += "/"
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}

	if c.Bot.PaginationSize == 0 {
		c.Bot.PaginationSize = models.DefaultPaginationSize
	}
	if c.Bot.RateLimitMessages == 0 {
		c.Bot.RateLimitMessages = models.RateLimitMessages
	}
	if c.Bot.RateLimitWindow == 0 {
		c.Bot.RateLimitWindow = models.RateLimitWindow
	}
	if c.Bot.MaxUploadBytes == 0 {
		c.Bot.MaxUploadBytes = models.MaxUploadBytes
	}
	if c.Bot.RefreshIntervalMinutes == 0 {
		c.Bot.RefreshIntervalMinutes = 5
	}

	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
}
