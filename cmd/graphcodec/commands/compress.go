// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/graphcodec/cmd/graphcodec/cli"
	"github.com/bureau-foundation/graphcodec/lib/compress"
)

type compressParams struct {
	CommonParams
	Algorithm string `flag:"algorithm,a" desc:"none, lz4, zstd, or auto (default from config, auto when that is none)"`
	HexInput  bool   `flag:"hex-input" desc:"input is hex text"`
	Hex       bool   `flag:"hex" desc:"write hex text instead of raw bytes"`
}

func compressCommand() *cli.Command {
	var params compressParams

	return &cli.Command{
		Name:    "compress",
		Summary: "Wrap data in a compression envelope",
		Description: `Compress data into an envelope: a one-byte algorithm tag, the
uncompressed size as a little-endian uint32, then the payload.

Data that does not shrink is stored uncompressed with tag 0 (none).
With --algorithm auto the algorithm is chosen from a sample of the
data: zstd for highly compressible input, lz4 for moderately
compressible input, none otherwise.`,
		Usage: "graphcodec compress [--algorithm none|lz4|zstd|auto] [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Compress an encoded value with zstd",
				Command:     "graphcodec compress --algorithm zstd value.bin > value.bin.z",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			return runCompress(&params, args, os.Stdin, os.Stdout)
		},
	}
}

func runCompress(params *compressParams, args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, logger, err := params.open("compress")
	if err != nil {
		return err
	}

	algorithm := params.Algorithm
	if algorithm == "" {
		algorithm = cfg.Encode.Compression
		if algorithm == compress.None.String() {
			algorithm = "auto"
		}
	}

	data, err := readBinary(args, stdin, params.HexInput, false)
	if err != nil {
		return err
	}

	var envelope []byte
	if algorithm == "none" {
		envelope, err = compress.Compress(data, compress.None)
		if err != nil {
			return cli.Internal("compressing: %w", err)
		}
	} else if envelope, err = wrapCompressed(data, algorithm); err != nil {
		return err
	}

	chosen, _, err := compress.Header(envelope)
	if err != nil {
		return cli.Internal("reading envelope header: %w", err)
	}
	logger.Debug("compressed",
		"requested", algorithm,
		"algorithm", chosen.String(),
		"size", len(data),
		"output_size", len(envelope),
	)
	return writeBinary(stdout, envelope, params.Hex)
}

type decompressParams struct {
	CommonParams
	Hex       bool `flag:"hex" desc:"input is hex text"`
	HexOutput bool `flag:"hex-output" desc:"write hex text instead of raw bytes"`
	Header    bool `flag:"header" desc:"print the envelope's algorithm and size instead of the payload"`
}

func decompressCommand() *cli.Command {
	var params decompressParams

	return &cli.Command{
		Name:    "decompress",
		Summary: "Unwrap a compression envelope",
		Description: `Decompress an envelope written by "graphcodec compress" or
"graphcodec encode --compress". The declared size is checked against
the decompressed payload.`,
		Usage: "graphcodec decompress [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Show which algorithm a file was compressed with",
				Command:     "graphcodec decompress --header value.bin.z",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			return runDecompress(&params, args, os.Stdin, os.Stdout)
		},
	}
}

func runDecompress(params *decompressParams, args []string, stdin io.Reader, stdout io.Writer) error {
	_, logger, err := params.open("decompress")
	if err != nil {
		return err
	}

	envelope, err := readBinary(args, stdin, params.Hex, false)
	if err != nil {
		return err
	}

	if params.Header {
		algorithm, size, err := compress.Header(envelope)
		if err != nil {
			return cli.Validation("%w", err)
		}
		if _, err := fmt.Fprintf(stdout, "algorithm: %s\nsize: %d\ncompressed: %d\n",
			algorithm, size, len(envelope)-compress.HeaderSize); err != nil {
			return cli.Internal("writing output: %w", err)
		}
		return nil
	}

	payload, err := compress.Decompress(envelope)
	if err != nil {
		return cli.Validation("%w", err)
	}
	logger.Debug("decompressed", "size", len(envelope), "output_size", len(payload))
	return writeBinary(stdout, payload, params.HexOutput)
}
