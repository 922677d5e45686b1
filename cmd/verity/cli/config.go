// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"github.com/bureau-foundation/verity/lib/config"
)

// ConfigParams is an embeddable struct that adds --config and
// --log-level to a command's parameter struct.
//
//	type encodeParams struct {
//	    cli.ConfigParams
//	    Out string `flag:"out,o" desc:"sidecar path"`
//	}
//
//	// In Run:
//	cfg, logger, err := params.Setup("encode")
type ConfigParams struct {
	ConfigPath string `json:"-" flag:"config" desc:"configuration file (YAML, or JSONC for .json/.jsonc; default $VERITY_CONFIG)"`
	LogLevel   string `json:"-" flag:"log-level" desc:"override log.level (debug, info, warn, error)"`
}

// LoadConfig returns the configuration from --config, else from
// VERITY_CONFIG, else the defaults.
func (p *ConfigParams) LoadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case p.ConfigPath != "":
		cfg, err = config.LoadFile(p.ConfigPath)
	case config.Configured():
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, Validation("%w", err)
	}

	if p.LogLevel != "" {
		cfg.Log.Level = p.LogLevel
		if _, err := cfg.LogLevel(); err != nil {
			return nil, Validation("--log-level: %w", err)
		}
	}
	return cfg, nil
}

// Setup loads the configuration and builds a stderr logger from it,
// scoped with the command name.
func (p *ConfigParams) Setup(command string) (*config.Config, *slog.Logger, error) {
	cfg, err := p.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, Validation("%w", err)
	}
	logger := NewLogger(os.Stderr, level, cfg.Log.Format).With("command", command)
	if p.ConfigPath != "" {
		logger.Debug("loaded configuration", "path", p.ConfigPath)
	}
	return cfg, logger, nil
}

// RequireArgs returns a validation error unless args has exactly count
// entries.
func RequireArgs(args []string, count int, usage string) error {
	if len(args) != count {
		return Validation("expected %d argument(s), got %d\n\nUsage: %s", count, len(args), usage)
	}
	return nil
}
