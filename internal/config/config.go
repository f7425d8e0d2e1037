package config

// Configuration loading and validation for autoclick

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tturner/autoclick/internal/errors"
	"github.com/tturner/autoclick/internal/hotkey"
	"github.com/tturner/autoclick/internal/logging"
	"github.com/tturner/autoclick/internal/prefs"
)

const (
	DefaultGlobalHotkey = "cmd+shift+s"
	DefaultLocalHotkey  = "ctrl+t"
	DefaultDebounceMs   = 250
	DefaultLogLevel     = "info"
)

// HotkeyConfig controls the toggle shortcuts
type HotkeyConfig struct {
	Global     string `yaml:"global"`      // system-wide combo, e.g. "cmd+shift+s"
	Local      string `yaml:"local"`       // in-window combo as the terminal reports it
	DebounceMs int    `yaml:"debounce_ms"` // fires closer than this collapse into one
	Disabled   bool   `yaml:"disabled,omitempty"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Level string `yaml:"level"` // silent, error, info, verbose, debug
	File  string `yaml:"file,omitempty"`
}

// Config represents the application configuration
type Config struct {
	PrefsPath string        `yaml:"prefs_path"`
	Hotkey    HotkeyConfig  `yaml:"hotkey"`
	Logging   LoggingConfig `yaml:"logging"`
}

// CreateDefaultConfig creates a default configuration
func CreateDefaultConfig() *Config {
	prefsPath, err := prefs.DefaultPath()
	if err != nil {
		prefsPath = "autoclick-prefs.yaml"
	}
	return &Config{
		PrefsPath: prefsPath,
		Hotkey: HotkeyConfig{
			Global:     DefaultGlobalHotkey,
			Local:      DefaultLocalHotkey,
			DebounceMs: DefaultDebounceMs,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
	}
}

// WriteDefaultConfig writes a default configuration to a file
func WriteDefaultConfig(path string) error {
	cfg := CreateDefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// LoadConfig loads a configuration from a YAML file. An empty path returns the
// defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return CreateDefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapConfigError(
				fmt.Errorf("config file not found: %s", path),
				path,
			)
		}
		return nil, errors.WrapConfigError(
			fmt.Errorf("read config file: %w", err),
			path,
		)
	}

	cfg := CreateDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("parse YAML: %w", err), path)
	}

	applyDefaults(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("validate config: %w", err), path)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	defaults := CreateDefaultConfig()
	if cfg.PrefsPath == "" {
		cfg.PrefsPath = defaults.PrefsPath
	}
	if cfg.Hotkey.Global == "" {
		cfg.Hotkey.Global = DefaultGlobalHotkey
	}
	if cfg.Hotkey.Local == "" {
		cfg.Hotkey.Local = DefaultLocalHotkey
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
}

// ValidateConfig validates a configuration
func ValidateConfig(cfg *Config) error {
	if cfg.PrefsPath == "" {
		return fmt.Errorf("prefs_path is required")
	}
	if _, err := hotkey.ParseCombo(cfg.Hotkey.Global); err != nil {
		return fmt.Errorf("hotkey.global: %w", err)
	}
	if _, err := hotkey.ParseCombo(cfg.Hotkey.Local); err != nil {
		return fmt.Errorf("hotkey.local: %w", err)
	}
	if cfg.Hotkey.DebounceMs < 0 {
		return fmt.Errorf("hotkey.debounce_ms must be >= 0, got %d", cfg.Hotkey.DebounceMs)
	}
	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}
