package config

import "time"

// Config is the root configuration for taskdeck.
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Auth     AuthConfig     `json:"auth"`
	Model    ProviderConfig `json:"model"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// DatabaseConfig holds the SQLite database settings.
type DatabaseConfig struct {
	Path string `json:"path"`
}

// AuthConfig holds token-signing settings for the HTTP API.
type AuthConfig struct {
	Secret   string   `json:"secret,omitempty"` // Direct secret or ${VAR} env reference
	TokenTTL Duration `json:"token_ttl,omitempty"`
}

// ProviderConfig configures the completion-service provider.
type ProviderConfig struct {
	Driver    string         `json:"driver"` // "openai", "claude", "ollama"
	Model     string         `json:"model"`
	BaseURL   string         `json:"base_url,omitempty"`
	Auth      ProviderAuth   `json:"auth"`
	MaxTokens int            `json:"max_tokens,omitempty"`
	Timeout   Duration       `json:"timeout,omitempty"`
	Options   map[string]any `json:"options,omitempty"`
}

// ProviderAuth configures API key resolution for the provider.
type ProviderAuth struct {
	APIKey string `json:"api_key,omitempty"` // Direct API key or ${VAR} env reference
	Token  string `json:"token,omitempty"`   // OAuth/Bearer token
}

// Duration wraps time.Duration for JSON unmarshaling.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}
