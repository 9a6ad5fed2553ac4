// Package config loads SDK configuration from the environment, with an
// optional .env file and an optional YAML override.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the fixed client configuration: base addresses, timeout,
// and token persistence.
type Config struct {
	// APIBaseURL is the backend origin.
	APIBaseURL string `env:"GLOSS_API_URL,default=https://api.glosshouse.app" yaml:"api_url"`

	// SocketURL is the realtime endpoint.
	SocketURL string `env:"GLOSS_SOCKET_URL,default=wss://api.glosshouse.app/socket" yaml:"socket_url"`

	// HTTPTimeout is the fixed per-call timeout.
	HTTPTimeout time.Duration `env:"GLOSS_HTTP_TIMEOUT,default=15s" yaml:"http_timeout"`

	// TokenPath is the token file location. Defaults under the user home.
	TokenPath string `env:"GLOSS_TOKEN_PATH" yaml:"token_path"`

	// RedisAddr switches token persistence to Redis when set.
	RedisAddr string `env:"GLOSS_REDIS_ADDR" yaml:"redis_addr"`

	// LogLevel is a logrus level name.
	LogLevel string `env:"GLOSS_LOG_LEVEL,default=info" yaml:"log_level"`
}

// Load reads configuration from the environment. When envFile is
// non-empty it is loaded first (missing file is not an error — the
// environment may already be populated).
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: load env file %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode environment: %w", err)
	}

	if cfg.TokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve home directory: %w", err)
		}
		cfg.TokenPath = filepath.Join(home, ".glosshouse", "token")
	}

	return &cfg, nil
}

// LoadFile applies a YAML file on top of an environment-loaded config.
// File values win over environment values when present.
func LoadFile(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return &cfg, nil
}
