// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/graphcodec/cmd/graphcodec/cli"
	"github.com/bureau-foundation/graphcodec/lib/version"
)

// Root builds and returns the complete graphcodec command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "graphcodec",
		Description: `graphcodec: convert object graphs between a compact binary form and
an indented text form.

Values are described by Go-like type expressions (int32, []string,
map[string]float64, struct{ Name string; Size (int32, int32) }) or by
aliases defined in the config file named by $GRAPHCODEC_CONFIG.`,
		Subcommands: []*cli.Command{
			encodeCommand(),
			decodeCommand(),
			framesCommand(),
			schemaCommand(),
			compressCommand(),
			decompressCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					if len(args) > 0 {
						return cli.Validation("version takes no arguments")
					}
					fmt.Printf("graphcodec %s\n", version.Full())
					return nil
				},
			},
		},
		Output: os.Stderr,
	}
}
