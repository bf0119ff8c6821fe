// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/graphcodec/cmd/graphcodec/cli"
	"github.com/bureau-foundation/graphcodec/lib/bincodec"
	"github.com/bureau-foundation/graphcodec/lib/codec"
	"github.com/bureau-foundation/graphcodec/lib/config"
	"github.com/bureau-foundation/graphcodec/lib/textcodec"
)

type decodeParams struct {
	CommonParams
	Type       string `flag:"type,t" desc:"type expression or config alias of the value (required)"`
	To         string `flag:"to" desc:"output format: text, json, yaml, or cbor (default from config)"`
	Hex        bool   `flag:"hex" desc:"input is hex text"`
	Compressed bool   `flag:"compressed" desc:"input is a compression envelope"`
	Color      string `flag:"color" desc:"highlight output: auto, always, or never (default from config)"`
}

func decodeCommand() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Decode the binary form of a value",
		Description: `Read the binary form of a value and write it as the indented text form,
JSON, YAML, or CBOR.

The binary form carries no type information: --type must name the
type the value was encoded as. Bytes left over after the value are an
error. Text, JSON, and YAML output is syntax highlighted when stdout is
a terminal.`,
		Usage: "graphcodec decode --type T [--to text|json|yaml|cbor] [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Decode a hex dump as the text form",
				Command:     "echo 04000000 07000000 | graphcodec decode --type int32 --hex",
			},
			{
				Description: "Decode a compressed file to JSON",
				Command:     "graphcodec decode --type Window --compressed --to json window.bin",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			return runDecode(&params, args, os.Stdin, os.Stdout)
		},
	}
}

func runDecode(params *decodeParams, args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, logger, err := params.open("decode")
	if err != nil {
		return err
	}
	t, err := resolveType(cfg, params.Type)
	if err != nil {
		return err
	}
	mode := firstNonEmpty(params.Color, cfg.Decode.Color)
	if !validColorMode(mode) {
		return cli.Validation("unknown color mode %q (want auto, always, or never)", mode)
	}

	data, err := readBinary(args, stdin, params.Hex, params.Compressed)
	if err != nil {
		return err
	}
	v, rest, err := bincodec.Decode(data, t)
	if err != nil {
		return cli.Validation("decoding %s: %w", t, err)
	}
	if len(rest) > 0 {
		return cli.Validation("decoding %s: %w (%d of %d bytes unread)", t, bincodec.ErrTrailingBytes, len(rest), len(data))
	}

	format := firstNonEmpty(params.To, cfg.Decode.Format)
	logger.Debug("decoded value", "type", t.String(), "size", len(data), "format", format)

	if format == config.FormatCBOR {
		tree, err := codec.ToTree(v)
		if err != nil {
			return cli.Validation("%w", err)
		}
		encoded, err := codec.Marshal(tree)
		if err != nil {
			return cli.Internal("encoding CBOR: %w", err)
		}
		return writeBinary(stdout, encoded, false)
	}

	rendered, lexer, err := renderValue(v, format)
	if err != nil {
		return err
	}
	return writeHighlighted(stdout, rendered, lexer, cfg.Decode.Style, colorProfile(stdout, mode))
}

// renderValue formats v as text, JSON, or YAML and names the chroma
// lexer for the result.
func renderValue(v reflect.Value, format string) (rendered, lexer string, err error) {
	switch format {
	case config.FormatText:
		encoder := textcodec.NewEncoder()
		if err := encoder.EncodeRoot(v); err != nil {
			return "", "", cli.Validation("%w", err)
		}
		return encoder.String(), "yaml", nil

	case config.FormatJSON:
		tree, err := codec.ToTree(v)
		if err != nil {
			return "", "", cli.Validation("%w", err)
		}
		var buffer bytes.Buffer
		encoder := json.NewEncoder(&buffer)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(tree); err != nil {
			return "", "", cli.Internal("encoding JSON: %w", err)
		}
		return buffer.String(), "json", nil

	case config.FormatYAML:
		tree, err := codec.ToTree(v)
		if err != nil {
			return "", "", cli.Validation("%w", err)
		}
		encoded, err := yaml.Marshal(tree)
		if err != nil {
			return "", "", cli.Internal("encoding YAML: %w", err)
		}
		return string(encoded), "yaml", nil

	default:
		return "", "", cli.Validation("unknown output format %q (want text, json, yaml, or cbor)", format)
	}
}
