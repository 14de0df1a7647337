// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads engine configuration from YAML.
//
// # Description
//
// Defaults-first loading: a file overlays Default(), so a partial config
// is always complete after Load. Structural validation (ranges, enums)
// happens here via struct tags; petrophysical cross-field validation
// (e.g. grShale vs grClean) stays in pkg/calc where the domain knowledge
// lives, and runs when a calculation is attempted.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/lithoscope/lithoscope/pkg/calc"
)

// Config is the full engine configuration.
type Config struct {
	// Enabled lists the calculation types to run; empty means all four.
	Enabled []string `yaml:"enabled" validate:"dive,oneof=porosity shale_volume saturation permeability"`

	// AutoUpdate selects debounced automatic recomputes; false means
	// recomputes run only on explicit request.
	AutoUpdate bool `yaml:"autoUpdate"`

	// DebounceMillis is the quiet period after the last edit before an
	// automatic recompute fires.
	DebounceMillis int `yaml:"debounceMillis" validate:"gte=0,lte=60000"`

	// CacheTimeoutSeconds bounds cached result age; 0 disables expiry.
	CacheTimeoutSeconds int `yaml:"cacheTimeoutSeconds" validate:"gte=0"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel" validate:"oneof=debug info warn error"`

	// LogDir enables JSON file logging when set.
	LogDir string `yaml:"logDir"`

	// Parameters holds the calculation parameters, overlaid on
	// calc.DefaultParameters().
	Parameters calc.Parameters `yaml:"parameters"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		AutoUpdate:          true,
		DebounceMillis:      1200,
		CacheTimeoutSeconds: 300,
		LogLevel:            "info",
		Parameters:          calc.DefaultParameters(),
	}
}

// Load reads a YAML file over the defaults and validates the result.
//
// # Inputs
//
//   - path: YAML file path. Empty returns Default() unchanged.
//
// # Outputs
//
//   - Config: The merged configuration.
//   - error: Read, parse, or validation failure.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks structural constraints via struct tags.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}

// DebounceWindow returns the debounce duration.
func (c Config) DebounceWindow() time.Duration {
	return time.Duration(c.DebounceMillis) * time.Millisecond
}

// CacheTTL returns the cache timeout duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTimeoutSeconds) * time.Second
}

// Types resolves the enabled calculation types, defaulting to all.
func (c Config) Types() []calc.Type {
	if len(c.Enabled) == 0 {
		return calc.AllTypes()
	}
	types := make([]calc.Type, 0, len(c.Enabled))
	for _, name := range c.Enabled {
		types = append(types, calc.Type(name))
	}
	return types
}
