// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the graphcodec command tree.
//
// Every subcommand reads a single input, either the file named by its
// one positional argument or stdin, and writes its result to stdout.
// Regular input files are memory-mapped on Linux and macOS. Type
// expressions given with --type may name aliases from the config file
// (see package config).
//
// Each command's work lives in a run function that takes its params
// and explicit reader and writer, so tests drive commands without
// touching the process's standard streams.
package commands
