// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"io/fs"
	"log/slog"
	"reflect"

	"github.com/bureau-foundation/graphcodec/cmd/graphcodec/cli"
	"github.com/bureau-foundation/graphcodec/lib/config"
	"github.com/bureau-foundation/graphcodec/lib/typeexpr"
)

// CommonParams are embedded by every command that reads config.
type CommonParams struct {
	ConfigPath string `flag:"config" desc:"config file (default: $GRAPHCODEC_CONFIG)"`
	Verbose    bool   `flag:"verbose,v" desc:"log at debug level"`
}

// open loads and validates the config and builds the command logger.
func (p *CommonParams) open(command string) (*config.Config, *slog.Logger, error) {
	var cfg *config.Config
	var err error
	if p.ConfigPath != "" {
		cfg, err = config.LoadFile(p.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, cli.NotFound("%w", err)
		}
		return nil, nil, cli.Validation("%w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, cli.Validation("invalid config: %w", err)
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, nil, cli.Validation("invalid config: %w", err)
	}
	if p.Verbose {
		level = slog.LevelDebug
	}
	return cfg, cli.NewCommandLogger(level).With("command", command), nil
}

// resolveType parses the --type expression against the config aliases.
func resolveType(cfg *config.Config, expression string) (reflect.Type, error) {
	if expression == "" {
		return nil, cli.Validation("--type is required")
	}
	t, err := cfg.ParseType(expression)
	if err != nil {
		if errors.Is(err, typeexpr.ErrUnknownType) {
			return nil, cli.NotFound("%w", err)
		}
		return nil, cli.Validation("%w", err)
	}
	return t, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
