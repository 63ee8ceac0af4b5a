package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tailscale/hujson"
)

// Load reads a commented-JSON config file, standardizes it, unmarshals it
// into Config, and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("standardize config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(std, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8420
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = filepath.Join(TaskdeckPath(), "taskdeck.db")
	}
	if cfg.Auth.TokenTTL.Duration() == 0 {
		cfg.Auth.TokenTTL = Duration(15 * time.Minute)
	}
	if cfg.Model.Driver == "" {
		cfg.Model.Driver = "openai"
	}
	if cfg.Model.MaxTokens == 0 {
		cfg.Model.MaxTokens = 500
	}
	// Auth resolution is deferred to ResolveEnvRef at construction time.
}

// ResolveEnvRef resolves a config value that may be a ${VAR} env reference.
// Plain values pass through unchanged; empty input resolves to "".
func ResolveEnvRef(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "${") && strings.HasSuffix(trimmed, "}") {
		return os.Getenv(trimmed[2 : len(trimmed)-1])
	}
	return trimmed
}
