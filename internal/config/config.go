// Package config loads replmux configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Environment variables (REPLMUX_*)
//  2. Config file
//  3. Built-in defaults
//
// Config file search order:
//  1. .replmux.yaml in current directory
//  2. ~/.config/replmux/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all replmux configuration.
type Config struct {
	// Session settings
	Session string `yaml:"session"` // session name
	Delay   string `yaml:"delay"`   // settle delay after send, Go duration string
	Timeout string `yaml:"timeout"` // per-tmux-invocation timeout
	Lines   int    `yaml:"lines"`   // default line count for read
	Spacer  bool   `yaml:"spacer"`  // send a blank print() before each command

	// LLM settings (diagnose)
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	MaxTokens int64  `yaml:"max_tokens"`

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"` // Comma-separated key=value pairs

	// Parsed durations (not from YAML, set after loading)
	DelayDuration   time.Duration `yaml:"-"`
	TimeoutDuration time.Duration `yaml:"-"`

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Session:   "claude",
		Delay:     "5s",
		Timeout:   "10s",
		Lines:     50,
		Provider:  "anthropic",
		Model:     "claude-sonnet-4-5",
		MaxTokens: 4096,
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	// Try to load config file
	if path, data, err := findConfigFile(); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &fileCfg)
	}

	// Environment variables override everything
	mergeEnv(cfg)

	// Parse durations
	var err error
	cfg.DelayDuration, err = parseDurationOrDisable(cfg.Delay, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid delay %q: %w", cfg.Delay, err)
	}
	cfg.TimeoutDuration, err = parseDurationOrDisable(cfg.Timeout, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout %q: %w", cfg.Timeout, err)
	}

	return cfg, nil
}

// ApplyOverrides layers command-line flag values on top of the loaded
// configuration. Empty strings leave the existing value untouched.
func (c *Config) ApplyOverrides(session, delay, timeout string) error {
	if session != "" {
		c.Session = session
	}
	if delay != "" {
		c.Delay = delay
		d, err := parseDurationOrDisable(delay, c.DelayDuration)
		if err != nil {
			return fmt.Errorf("invalid delay %q: %w", delay, err)
		}
		c.DelayDuration = d
	}
	if timeout != "" {
		c.Timeout = timeout
		d, err := parseDurationOrDisable(timeout, c.TimeoutDuration)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", timeout, err)
		}
		c.TimeoutDuration = d
	}
	return nil
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	// 1. Current directory
	if data, err := os.ReadFile(".replmux.yaml"); err == nil {
		return ".replmux.yaml", data, nil
	}

	// 2. XDG config dir / ~/.config
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "replmux", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}

	return "", nil, fmt.Errorf("no config file found")
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.Session != "" {
		cfg.Session = file.Session
	}
	if file.Delay != "" {
		cfg.Delay = file.Delay
	}
	if file.Timeout != "" {
		cfg.Timeout = file.Timeout
	}
	if file.Lines > 0 {
		cfg.Lines = file.Lines
	}
	if file.Spacer {
		cfg.Spacer = file.Spacer
	}
	if file.Provider != "" {
		cfg.Provider = file.Provider
	}
	if file.Model != "" {
		cfg.Model = file.Model
	}
	if file.BaseURL != "" {
		cfg.BaseURL = file.BaseURL
	}
	if file.APIKey != "" {
		cfg.APIKey = file.APIKey
	}
	if file.MaxTokens > 0 {
		cfg.MaxTokens = file.MaxTokens
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) {
	if v := os.Getenv("REPLMUX_SESSION"); v != "" {
		cfg.Session = v
	}
	if v := os.Getenv("REPLMUX_DELAY"); v != "" {
		cfg.Delay = v
	}
	if v := os.Getenv("REPLMUX_TIMEOUT"); v != "" {
		cfg.Timeout = v
	}
	if v := os.Getenv("REPLMUX_SPACER"); v == "true" || v == "1" {
		cfg.Spacer = true
	}
	if v := os.Getenv("REPLMUX_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("REPLMUX_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("REPLMUX_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("REPLMUX_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}

	// API key fallbacks
	if cfg.APIKey == "" {
		if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
			cfg.APIKey = v
		}
	}
	if cfg.APIKey == "" {
		if v := os.Getenv("OPENAI_API_KEY"); v != "" {
			cfg.APIKey = v
		}
	}
}

// parseDurationOrDisable parses a duration string. "0", "off", "disable"
// return 0. Empty string returns the fallback value. A bare number is
// treated as seconds, matching the CLI's --delay SECONDS contract.
func parseDurationOrDisable(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	if s == "0" || s == "off" || s == "disable" {
		return 0, nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	var secs float64
	if _, err := fmt.Sscanf(s, "%g", &secs); err == nil && secs >= 0 {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return 0, fmt.Errorf("not a duration or number of seconds")
}
