// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for graphcodec.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a parameter struct whose tagged
// fields become flags, and a Run function. Commands are assembled into a
// tree by package commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework
// suggests the closest known name by edit distance (see package
// suggest).
//
// Errors returned by commands may carry a category ([ToolError]) so
// that main can distinguish bad input from internal failures, and an
// exit code ([ExitError]) for commands whose non-zero exit is an
// expected outcome.
package cli
