package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all gateway configuration.
type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Storage   StorageConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"3000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// BackendConfig holds remote recommendation backend configuration.
type BackendConfig struct {
	URL            string `envconfig:"BACKEND_URL" default:"http://127.0.0.1:8000"`
	TimeoutSeconds int    `envconfig:"BACKEND_TIMEOUT_SECONDS" default:"30"`
	UseMockData    bool   `envconfig:"USE_MOCK_DATA" default:"false"`
}

// StorageConfig holds durable local storage configuration.
type StorageConfig struct {
	Dir string `envconfig:"STORAGE_DIR" default:"/tmp/prompt-scribe-gateway"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
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
			Port: "3000",
			Host: "0.0.0.0",
		},
		Backend: BackendConfig{
			URL:            "http://127.0.0.1:8000",
			TimeoutSeconds: 30,
		},
		Storage: StorageConfig{
			Dir: "/tmp/prompt-scribe-gateway",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
