package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/stackarch/internal/core/catalog"
	"github.com/example/stackarch/internal/core/stack"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "STACKARCH_CONFIG"

// DefaultSlot is the snapshot slot used when none is named.
const DefaultSlot = "default"

// PresetConfig is a user-defined preset. Fields are keyed by category name;
// set-valued categories take a comma-separated list.
type PresetConfig struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Fields      map[string]string `yaml:"fields"`
}

// Config represents stackarch configuration options
type Config struct {
	// DBPath is the SQLite database holding snapshots and the edit log
	DBPath string `yaml:"db_path"`

	// DefaultSlot is the snapshot slot commands use without --slot
	DefaultSlot string `yaml:"default_slot"`

	// LauncherPackage is the scaffolding package named in generated commands
	LauncherPackage string `yaml:"launcher_package"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Color is auto, always or never
	Color string `yaml:"color"`

	// Presets adds user presets next to the built-in ones
	Presets []PresetConfig `yaml:"presets"`
}

// Home returns the stackarch state directory (~/.stackarch).
func Home() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".stackarch"), nil
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	dbPath := "stackarch.db"
	if home, err := Home(); err == nil {
		dbPath = filepath.Join(home, "stackarch.db")
	}
	return &Config{
		DBPath:          dbPath,
		DefaultSlot:     DefaultSlot,
		LauncherPackage: stack.DefaultLauncherPackage,
		LogLevel:        "info",
		Color:           "auto",
	}
}

// ResolvePath picks the config file: an explicit flag value, then
// $STACKARCH_CONFIG, then ~/.stackarch/config.yaml.
func ResolvePath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env, nil
	}
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.yaml"), nil
}

// LoadConfig loads configuration from the specified file path.
// A missing file yields the defaults; a malformed one is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if strings.HasPrefix(cfg.DBPath, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.DBPath = filepath.Join(home, cfg.DBPath[2:])
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values and user presets.
func (c *Config) Validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	if strings.TrimSpace(c.DefaultSlot) == "" {
		return fmt.Errorf("default_slot must not be empty")
	}

	seen := map[string]bool{}
	for i, p := range c.Presets {
		if p.Name == "" {
			return fmt.Errorf("preset %d has no name", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("preset %q defined twice", p.Name)
		}
		seen[p.Name] = true
		if _, builtin := catalog.LookupPreset(p.Name); builtin {
			return fmt.Errorf("preset %q shadows a built-in preset", p.Name)
		}
		for key := range p.Fields {
			if _, ok := catalog.ParseCategory(key); !ok {
				return fmt.Errorf("preset %q: unknown category %q", p.Name, key)
			}
		}
	}
	return nil
}

// UserPresets converts configured presets to catalog presets.
func (c *Config) UserPresets() []catalog.Preset {
	out := make([]catalog.Preset, 0, len(c.Presets))
	for _, p := range c.Presets {
		fields := make(map[string]string, len(p.Fields))
		for k, v := range p.Fields {
			fields[k] = v
		}
		out = append(out, catalog.Preset{Name: p.Name, Description: p.Description, Fields: fields})
	}
	return out
}
