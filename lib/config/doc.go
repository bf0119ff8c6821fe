// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the graphcodec
// command.
//
// Configuration is loaded from a single file specified by either the
// GRAPHCODEC_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There are no fallbacks, no ~/.config
// discovery, and no automatic file search. Running without a file uses
// [Default].
//
// Variable expansion is performed on string values after loading:
// ${VAR} and ${VAR:-default} patterns are expanded from the process
// environment. No environment variable overrides a config value
// directly.
//
// Key exports:
//
//   - [Config] -- log level, encode and decode defaults, type aliases
//   - [Default] -- returns a Config with the built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
package config
