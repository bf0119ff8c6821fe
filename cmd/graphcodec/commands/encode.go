// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"reflect"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/graphcodec/cmd/graphcodec/cli"
	"github.com/bureau-foundation/graphcodec/lib/bincodec"
	"github.com/bureau-foundation/graphcodec/lib/codec"
	"github.com/bureau-foundation/graphcodec/lib/compress"
	"github.com/bureau-foundation/graphcodec/lib/config"
	"github.com/bureau-foundation/graphcodec/lib/textcodec"
)

type encodeParams struct {
	CommonParams
	Type     string `flag:"type,t" desc:"type expression or config alias of the value (required)"`
	From     string `flag:"from" desc:"input format: json, yaml, cbor, or text" default:"json"`
	Compress string `flag:"compress" desc:"wrap the output in a compression envelope: none, lz4, zstd, or auto (default from config)"`
	Hex      bool   `flag:"hex" desc:"write hex text instead of raw bytes"`
}

func encodeCommand() *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Encode a value to the binary form",
		Description: `Read a value as JSON, YAML, CBOR, or the indented text form and write
its binary form.

JSON input may contain comments and trailing commas. Numbers are
parsed with the same lenient rules as the text form, so "200" encodes
as -56 for an int8. Non-finite floats are written as the strings
"Infinity", "-Infinity", and "NaN".`,
		Usage: "graphcodec encode --type T [--from json|yaml|cbor|text] [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Encode a JSON record as hex",
				Command:     `echo '{"Name": "box", "Size": [3, 4]}' | graphcodec encode --type 'struct{ Name string; Size []int32 }' --hex`,
			},
			{
				Description: "Encode a text document with zstd compression",
				Command:     "graphcodec encode --type Window --from text --compress zstd window.txt > window.bin",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			return runEncode(&params, args, os.Stdin, os.Stdout)
		},
	}
}

func runEncode(params *encodeParams, args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, logger, err := params.open("encode")
	if err != nil {
		return err
	}
	t, err := resolveType(cfg, params.Type)
	if err != nil {
		return err
	}

	data, release, err := readInput(args, stdin)
	if err != nil {
		return err
	}
	v, err := parseInput(logger, data, params.From, t)
	release()
	if err != nil {
		return err
	}

	encoded, err := bincodec.Encode(v)
	if err != nil {
		return cli.Validation("encoding %s: %w", t, err)
	}

	algorithm := firstNonEmpty(params.Compress, cfg.Encode.Compression)
	output, err := wrapCompressed(encoded, algorithm)
	if err != nil {
		return err
	}
	logger.Debug("encoded value",
		"type", t.String(),
		"format", params.From,
		"size", len(encoded),
		"output_size", len(output),
	)

	return writeBinary(stdout, output, params.Hex || cfg.Encode.Hex)
}

// parseInput decodes data in the named format as a value of type t.
func parseInput(logger *slog.Logger, data []byte, format string, t reflect.Type) (reflect.Value, error) {
	var tree any
	switch format {
	case config.FormatText:
		v, err := textcodec.Decode(string(data), t)
		if err != nil {
			return reflect.Value{}, cli.Validation("parsing text input: %w", err)
		}
		return v, nil

	case config.FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.UseNumber()
		if err := decoder.Decode(&tree); err != nil {
			return reflect.Value{}, cli.Validation("parsing JSON input: %w", err)
		}

	case config.FormatYAML:
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return reflect.Value{}, cli.Validation("parsing YAML input: %w", err)
		}

	case config.FormatCBOR:
		decoder := codec.NewDecoder(bytes.NewReader(data))
		if err := decoder.Decode(&tree); err != nil {
			return reflect.Value{}, cli.Validation("parsing CBOR input: %w", err)
		}
		if read := decoder.NumBytesRead(); read != len(data) {
			return reflect.Value{}, cli.Validation("parsing CBOR input: %d bytes after the first item", len(data)-read)
		}
		if logger.Enabled(context.Background(), slog.LevelDebug) {
			if diagnostic, err := codec.Diagnose(data); err == nil {
				logger.Debug("cbor input", "diagnostic", diagnostic)
			}
		}

	default:
		return reflect.Value{}, cli.Validation("unknown input format %q (want json, yaml, cbor, or text)", format)
	}

	v, err := codec.FromTree(tree, t)
	if err != nil {
		return reflect.Value{}, cli.Validation("converting %s input: %w", format, err)
	}
	return v, nil
}

// wrapCompressed wraps data in a compression envelope unless
// algorithm is "none" or empty.
func wrapCompressed(data []byte, algorithm string) ([]byte, error) {
	switch algorithm {
	case "", compress.None.String():
		return data, nil
	case config.CompressionAuto:
		envelope, _, err := compress.Auto(data)
		if err != nil {
			return nil, cli.Internal("compressing output: %w", err)
		}
		return envelope, nil
	}

	parsed, err := compress.ParseAlgorithm(algorithm)
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	envelope, err := compress.Compress(data, parsed)
	if err != nil {
		return nil, cli.Internal("compressing output: %w", err)
	}
	return envelope, nil
}
