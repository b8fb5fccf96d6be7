// Package config provides configuration for the aggregation pipeline
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds runtime configuration for the pipeline.
type Config struct {
	// APIKey authenticates against the YouTube Data API. Required for
	// every command that touches the metadata/search upstream.
	APIKey string `mapstructure:"api_key"`

	// MaxCommentPages bounds comment pagination per collection
	MaxCommentPages int `mapstructure:"max_comment_pages"`

	// MaxVideos bounds how many recent videos feed a channel report
	MaxVideos int `mapstructure:"max_videos"`

	// RequestTimeout applies to each upstream HTTP call
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// YtdlpPath is the media extractor executable
	YtdlpPath string `mapstructure:"ytdlp_path"`

	// YtdlpTimeout is the maximum time to wait for the media extractor
	YtdlpTimeout time.Duration `mapstructure:"ytdlp_timeout"`

	// LogLevel is a zerolog level name ("debug", "info", "warn", "error")
	LogLevel string `mapstructure:"log_level"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		MaxCommentPages: 10,
		MaxVideos:       10,
		RequestTimeout:  30 * time.Second,
		YtdlpPath:       "yt-dlp",
		YtdlpTimeout:    10 * time.Minute,
		LogLevel:        "info",
	}
}

// Load reads configuration from an optional file plus YT_*-prefixed
// environment variables, layered over the defaults. The bare API_KEY
// environment variable is also honored.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("max_comment_pages", defaults.MaxCommentPages)
	v.SetDefault("max_videos", defaults.MaxVideos)
	v.SetDefault("request_timeout", defaults.RequestTimeout)
	v.SetDefault("ytdlp_path", defaults.YtdlpPath)
	v.SetDefault("ytdlp_timeout", defaults.YtdlpTimeout)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix("YT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("api_key", "YT_API_KEY", "API_KEY"); err != nil {
		return nil, fmt.Errorf("bind api_key env: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.MaxCommentPages < 1 {
		return fmt.Errorf("max_comment_pages must be at least 1")
	}

	if c.MaxVideos < 1 {
		return fmt.Errorf("max_videos must be at least 1")
	}

	if c.MaxVideos > 50 {
		return fmt.Errorf("max_videos cannot exceed 50")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}

	if c.YtdlpPath == "" {
		return fmt.Errorf("ytdlp_path cannot be empty")
	}

	if c.YtdlpTimeout <= 0 {
		return fmt.Errorf("ytdlp_timeout must be positive")
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level '%s', must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	return nil
}

// RequireAPIKey validates that an API key is configured. Commands that only
// drive the media extractor do not call it.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return fmt.Errorf("API key is required: set YT_API_KEY or API_KEY")
	}
	return nil
}
