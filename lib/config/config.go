// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/verity/lib/compress"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "VERITY_CONFIG"

// Config is the master configuration for the verity CLI.
type Config struct {
	// Log configures command logging.
	Log LogConfig `yaml:"log" json:"log"`

	// Slice configures slice bundle extraction.
	Slice SliceConfig `yaml:"slice" json:"slice"`

	// Paths configures file locations.
	Paths PathsConfig `yaml:"paths" json:"paths"`
}

// LogConfig configures command logging.
type LogConfig struct {
	// Level is the minimum level logged: debug, info, warn, or error.
	Level string `yaml:"level" json:"level"`

	// Format selects the handler: text, json, or auto (text on a
	// terminal, JSON otherwise).
	Format string `yaml:"format" json:"format"`
}

// SliceConfig configures slice bundle extraction.
type SliceConfig struct {
	// Compression is the payload compression for new bundles: none,
	// lz4, zstd, or auto.
	Compression string `yaml:"compression" json:"compression"`
}

// PathsConfig configures file locations.
type PathsConfig struct {
	// SidecarDir is where encode writes sidecars when no --out is
	// given. Empty means next to the content file.
	SidecarDir string `yaml:"sidecar_dir" json:"sidecar_dir"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		Slice: SliceConfig{
			Compression: "auto",
		},
	}
}

// Load loads configuration from the VERITY_CONFIG environment
// variable. It fails if the variable is not set; callers that can run
// without a config check [Configured] first.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your verity config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// Configured reports whether VERITY_CONFIG is set.
func Configured() bool {
	return os.Getenv(EnvironmentVariable) != ""
}

// LoadFile loads configuration from a specific file path and
// validates it.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.expandVariables()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// loadFile merges a single configuration file into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), c); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Paths.SidecarDir = expandVars(c.Paths.SidecarDir, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	switch c.Log.Format {
	case "auto", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of auto, text, json; got %q", c.Log.Format))
	}

	if _, err := c.Compression(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
}

// Compression returns the configured slice compression.
func (c *Config) Compression() (compress.Algorithm, error) {
	algorithm, err := compress.Parse(c.Slice.Compression)
	if err != nil {
		return 0, fmt.Errorf("slice.compression: %w", err)
	}
	return algorithm, nil
}
