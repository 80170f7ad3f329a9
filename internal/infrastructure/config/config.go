package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Engine    EngineConfig
	Stream    StreamConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8400"`
	Host            string        `envconfig:"HOST" default:"127.0.0.1"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	AllowOrigins    []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"200"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"400"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// EngineConfig holds profile engine configuration.
type EngineConfig struct {
	BlankURL           string `envconfig:"ENGINE_BLANK_URL" default:"about:blank"`
	PresetsFile        string `envconfig:"ENGINE_PRESETS_FILE"`
	MaxUserAgentLength int    `envconfig:"ENGINE_MAX_UA_LENGTH" default:"512"`
	EventBuffer        int    `envconfig:"ENGINE_EVENT_BUFFER" default:"256"`
	ClosedTabRetention int    `envconfig:"ENGINE_CLOSED_TAB_RETENTION" default:"1024"`
}

// StreamConfig holds notification stream configuration.
type StreamConfig struct {
	SubscriberBuffer int           `envconfig:"STREAM_SUBSCRIBER_BUFFER" default:"64"`
	WriteTimeout     time.Duration `envconfig:"STREAM_WRITE_TIMEOUT" default:"5s"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8400",
			Host:            "127.0.0.1",
			ShutdownTimeout: 10 * time.Second,
			AllowOrigins:    []string{"*"},
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 200,
			Burst:             400,
			Enabled:           true,
		},
		Engine: EngineConfig{
			BlankURL:           "about:blank",
			MaxUserAgentLength: 512,
			EventBuffer:        256,
			ClosedTabRetention: 1024,
		},
		Stream: StreamConfig{
			SubscriberBuffer: 64,
			WriteTimeout:     5 * time.Second,
		},
	}
}
