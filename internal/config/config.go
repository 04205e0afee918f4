package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Duration is a time.Duration that reads from TOML strings like "45s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

type LogConfig struct {
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

type LLMConfig struct {
	// Provider is one of gemini, openai, openrouter, anthropic, mock.
	Provider    string   `toml:"provider"`
	Model       string   `toml:"model"`
	BaseURL     string   `toml:"base_url"`
	Timeout     Duration `toml:"timeout"`
	MaxTokens   int      `toml:"max_tokens"`
	Temperature float64  `toml:"temperature"`
}

type NotifyConfig struct {
	Desktop *bool `toml:"desktop"`
	Bell    *bool `toml:"bell"`
}

// Config is the on-disk application configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	LLM     LLMConfig     `toml:"llm"`
	Notify  NotifyConfig  `toml:"notify"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	cfg := Config{}
	cfg.SetDefault()
	return cfg
}

// SetDefault fills every unset field with its default value.
func (c *Config) SetDefault() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "gemini"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = defaultModels[c.LLM.Provider]
	}
	if c.LLM.Timeout.Duration == 0 {
		c.LLM.Timeout.Duration = 60 * time.Second
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 2048
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.4
	}
	if c.Notify.Desktop == nil {
		v := true
		c.Notify.Desktop = &v
	}
	if c.Notify.Bell == nil {
		v := true
		c.Notify.Bell = &v
	}
}

var defaultModels = map[string]string{
	"gemini":     "gemini-2.5-pro",
	"openai":     "gpt-4o-mini",
	"openrouter": "google/gemini-2.5-pro",
	"anthropic":  "claude-haiku",
	"mock":       "mock",
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate reports configuration values that cannot work.
func (c Config) Validate() error {
	if _, ok := defaultModels[c.LLM.Provider]; !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.LLM.Provider)
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("unknown log level: %q", c.Log.Level)
	}
	if c.LLM.Timeout.Duration <= 0 {
		return fmt.Errorf("llm timeout must be positive, got %s", c.LLM.Timeout.Duration)
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}
	return nil
}

// DesktopNotifications reports whether completion notifications are enabled.
func (c Config) DesktopNotifications() bool {
	return c.Notify.Desktop == nil || *c.Notify.Desktop
}

// Bell reports whether the terminal bell cue is enabled.
func (c Config) Bell() bool {
	return c.Notify.Bell == nil || *c.Notify.Bell
}

// Load reads the TOML file at path, applies environment overrides and
// defaults, and validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(&cfg)
	cfg.SetDefault()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FOCUSFLOW_DB"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("FOCUSFLOW_LOG"); v != "" {
		cfg.Log.Path = v
	}
	if v := os.Getenv("FOCUSFLOW_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("FOCUSFLOW_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("FOCUSFLOW_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v, ok := envBool("FOCUSFLOW_NOTIFY"); ok {
		cfg.Notify.Desktop = &v
	}
	if v, ok := envBool("FOCUSFLOW_BELL"); ok {
		cfg.Notify.Bell = &v
	}
}

func envBool(name string) (bool, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// DefaultPath resolves the config file location:
// $XDG_CONFIG_HOME/focusflow/config.toml, falling back to ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "focusflow", "config.toml"), nil
}

// DefaultLogPath resolves $XDG_STATE_HOME/focusflow/focusflow.log,
// falling back to ~/.local/state.
func DefaultLogPath() (string, error) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "focusflow", "focusflow.log"), nil
}
