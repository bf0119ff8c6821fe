// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"reflect"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/graphcodec/lib/compress"
	"github.com/bureau-foundation/graphcodec/lib/typeexpr"
)

// EnvironmentVariable names the variable Load reads the config path
// from.
const EnvironmentVariable = "GRAPHCODEC_CONFIG"

// CompressionAuto selects the algorithm per payload with
// compress.Select.
const CompressionAuto = "auto"

// Decode output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCBOR = "cbor"
)

// Colour modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the master configuration for graphcodec.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Encode EncodeConfig `yaml:"encode"`

	Decode DecodeConfig `yaml:"decode"`

	// Types maps alias names to type expressions (see package
	// typeexpr). Aliases may refer to each other.
	Types map[string]string `yaml:"types"`
}

// EncodeConfig holds defaults for the encode command.
type EncodeConfig struct {
	// Compression is none, lz4, zstd, or auto.
	// Default: none
	Compression string `yaml:"compression"`

	// Hex writes hex text instead of raw bytes.
	Hex bool `yaml:"hex"`
}

// DecodeConfig holds defaults for the decode command.
type DecodeConfig struct {
	// Format is text, json, yaml, or cbor.
	// Default: text
	Format string `yaml:"format"`

	// Color controls syntax highlighting: auto, always, never.
	// Default: auto (highlight when stdout is a terminal)
	Color string `yaml:"color"`

	// Style is the chroma style used for highlighting.
	// Default: monokai
	Style string `yaml:"style"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Encode: EncodeConfig{
			Compression: compress.None.String(),
		},
		Decode: DecodeConfig{
			Format: FormatText,
			Color:  ColorAuto,
			Style:  "monokai",
		},
		Types: map[string]string{},
	}
}

// Load loads configuration from the file named by GRAPHCODEC_CONFIG.
// When the variable is unset it returns Default.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path over the
// defaults, then expands ${VAR} patterns in string values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current
// config. Unknown keys are errors, so a misspelled setting is not
// silently ignored.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns.
func (c *Config) expandVariables() {
	c.LogLevel = expandVars(c.LogLevel)
	c.Encode.Compression = expandVars(c.Encode.Compression)
	c.Decode.Format = expandVars(c.Decode.Format)
	c.Decode.Color = expandVars(c.Decode.Color)
	c.Decode.Style = expandVars(c.Decode.Style)
	for name, expression := range c.Types {
		c.Types[name] = expandVars(expression)
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
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

		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	if c.Encode.Compression != CompressionAuto {
		if _, err := compress.ParseAlgorithm(c.Encode.Compression); err != nil {
			errs = append(errs, fmt.Errorf("encode.compression must be one of: none, lz4, zstd, auto"))
		}
	}

	formats := []string{FormatText, FormatJSON, FormatYAML, FormatCBOR}
	if !slices.Contains(formats, c.Decode.Format) {
		errs = append(errs, fmt.Errorf("decode.format must be one of: %v", formats))
	}

	colors := []string{ColorAuto, ColorAlways, ColorNever}
	if !slices.Contains(colors, c.Decode.Color) {
		errs = append(errs, fmt.Errorf("decode.color must be one of: %v", colors))
	}

	for _, name := range slices.Sorted(maps.Keys(c.Types)) {
		if _, err := typeexpr.Parse(name, c.Types); err != nil {
			errs = append(errs, fmt.Errorf("types.%s: %w", name, err))
		}
	}

	return errors.Join(errs...)
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level must be one of: debug, info, warn, error (got %q)", c.LogLevel)
	}
	return level, nil
}

// ParseType resolves a type expression against the configured aliases.
func (c *Config) ParseType(expression string) (reflect.Type, error) {
	return typeexpr.Parse(expression, c.Types)
}
