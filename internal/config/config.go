// Package config provides configuration management for skillref.
// It supports a TOML configuration file, environment variable overrides,
// and sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/klauern/skillref/internal/validation"
)

// FileName is the configuration file skillref looks for.
const FileName = ".skillref.toml"

// Config represents the complete skillref configuration.
type Config struct {
	// Validation configures which optional rule checks are active
	Validation ValidationConfig `toml:"validation"`

	// Output configures display preferences
	Output OutputConfig `toml:"output"`
}

// ValidationConfig holds validation rule toggles.
type ValidationConfig struct {
	// StrictName enforces the lowercase kebab-case naming convention
	StrictName bool `toml:"strict_name"`
	// RequireLicense makes the license frontmatter field mandatory
	RequireLicense bool `toml:"require_license"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Color controls color output (auto, always, never)
	Color string `toml:"color"`
	// Verbose enables verbose output by default
	Verbose bool `toml:"verbose"`
}

// Default returns the permissive default configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{Color: "auto"},
	}
}

// Load reads configuration from path. A missing file yields the defaults;
// a present-but-invalid file is an error. Environment overrides apply last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("cannot access config %q: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadDefault loads configuration from the working directory, falling back
// to the user config directory, then to defaults.
func LoadDefault() (*Config, error) {
	if _, err := os.Stat(FileName); err == nil {
		return Load(FileName)
	}

	if confDir, err := os.UserConfigDir(); err == nil {
		userPath := filepath.Join(confDir, "skillref", "config.toml")
		if _, err := os.Stat(userPath); err == nil {
			return Load(userPath)
		}
	}

	cfg := Default()
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays SKILLREF_* environment variables onto the config.
func (c *Config) applyEnv() {
	if v, ok := lookupBool("SKILLREF_STRICT_NAME"); ok {
		c.Validation.StrictName = v
	}
	if v, ok := lookupBool("SKILLREF_REQUIRE_LICENSE"); ok {
		c.Validation.RequireLicense = v
	}
	if v := os.Getenv("SKILLREF_COLOR"); v != "" {
		c.Output.Color = v
	}
	if v, ok := lookupBool("SKILLREF_VERBOSE"); ok {
		c.Output.Verbose = v
	}
}

func lookupBool(key string) (bool, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// Options maps the configuration onto validation options.
func (c *Config) Options() validation.Options {
	return validation.Options{
		StrictName:     c.Validation.StrictName,
		RequireLicense: c.Validation.RequireLicense,
	}
}
