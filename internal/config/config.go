// Package config reads and writes textfinder CLI configuration.
//
// Two scopes exist: global (~/.textfinder/config.yaml) and local
// (.textfinder/config.yaml). Reads use the local file when it exists and the
// global one otherwise. Writes default to global; --local selects local.
//
// This is host configuration (author, limits, where the settings file
// lives). The plugin settings record itself is owned by package settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Dir is the directory name used for both scopes.
const Dir = ".textfinder"

// Scope represents the configuration scope.
type Scope int

const (
	// ScopeGlobal is ~/.textfinder/config.yaml (default).
	ScopeGlobal Scope = iota
	// ScopeLocal is .textfinder/config.yaml in the working directory.
	ScopeLocal
)

// String returns "global" or "local".
func (s Scope) String() string {
	if s == ScopeLocal {
		return "local"
	}
	return "global"
}

// Author identifies who commits buffer versions.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Limits bounds what the store accepts.
type Limits struct {
	MaxPath    *int   `yaml:"max_path,omitempty"`
	MaxContent *int64 `yaml:"max_content,omitempty"`
}

// SettingsFile overrides where the plugin settings record is kept.
type SettingsFile struct {
	Path *string `yaml:"path,omitempty"`
}

// Default limits applied when not configured.
const (
	DefaultMaxPath    = 1024
	DefaultMaxContent = 100 * 1024 * 1024 // 100 MB
)

// Validation bounds for configuration values.
const (
	MinMaxPath    = 1
	MaxMaxPath    = 65536
	MinMaxContent = 1
	MaxMaxContent = 10 * 1024 * 1024 * 1024 // 10 GB
)

// Config contains configuration for textfinder.
type Config struct {
	Author   Author       `yaml:"author,omitempty"`
	Limits   Limits       `yaml:"limits,omitempty"`
	Settings SettingsFile `yaml:"settings,omitempty"`

	path  string
	scope Scope
}

// Validate checks configured values against their bounds. Unset values are
// valid; defaults apply.
func (c *Config) Validate() error {
	if c.Limits.MaxPath != nil {
		if v := *c.Limits.MaxPath; v < MinMaxPath || v > MaxMaxPath {
			return fmt.Errorf("%w: max_path must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxPath, MaxMaxPath, v)
		}
	}
	if c.Limits.MaxContent != nil {
		if v := *c.Limits.MaxContent; v < MinMaxContent || v > MaxMaxContent {
			return fmt.Errorf("%w: max_content must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxContent, MaxMaxContent, v)
		}
	}
	if c.Settings.Path != nil && *c.Settings.Path == "" {
		return fmt.Errorf("%w: settings.path cannot be empty", ErrInvalidValue)
	}
	return nil
}

// MaxPath returns the maximum path length in bytes (defaults to 1024).
func (c *Config) MaxPath() int {
	if c.Limits.MaxPath == nil {
		return DefaultMaxPath
	}
	return *c.Limits.MaxPath
}

// MaxContent returns the maximum content size in bytes (defaults to 100 MB).
func (c *Config) MaxContent() int64 {
	if c.Limits.MaxContent == nil {
		return DefaultMaxContent
	}
	return *c.Limits.MaxContent
}

// SettingsPath returns the configured settings file, or "" when the
// default location applies.
func (c *Config) SettingsPath() string {
	if c.Settings.Path == nil {
		return ""
	}
	return *c.Settings.Path
}

// LocalPath returns the path to the local config file.
func LocalPath() string {
	return filepath.Join(Dir, "config.yaml")
}

// GlobalPath returns ~/.textfinder/config.yaml, or "" without a home dir.
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, Dir, "config.yaml")
}

// Load reads the local config if it exists, otherwise the global one.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope. A missing file
// yields an empty config bound to that scope's path.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to where it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
