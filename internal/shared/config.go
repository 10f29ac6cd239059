package shared

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server ServerConfig `toml:"server"`
	UI     UIConfig     `toml:"ui"`
	Import ImportConfig `toml:"import"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig describes the watchlist backend.
type ServerConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// UIConfig contains TUI settings.
type UIConfig struct {
	NotifyMillis int    `toml:"notify_millis"`
	LogFile      string `toml:"log_file"`
}

// ImportConfig controls pacing of bulk create requests.
type ImportConfig struct {
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Timeout returns the configured client timeout; zero means none.
func (s ServerConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// NotifyDelay returns how long a notification stays visible.
func (u UIConfig) NotifyDelay() time.Duration {
	if u.NotifyMillis <= 0 {
		return 3000 * time.Millisecond
	}
	return time.Duration(u.NotifyMillis) * time.Millisecond
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate checks the values that would otherwise fail later at request time.
func (c *Config) Validate() error {
	base := strings.TrimSpace(c.Server.BaseURL)
	if base != "" {
		u, err := url.Parse(base)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: server.base_url %q", ErrInvalidConfig, c.Server.BaseURL)
		}
	}
	if c.Import.RateLimit < 0 {
		return fmt.Errorf("%w: import.rate_limit must not be negative", ErrInvalidConfig)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
