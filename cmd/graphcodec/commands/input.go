// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"github.com/bureau-foundation/graphcodec/cmd/graphcodec/cli"
	"github.com/bureau-foundation/graphcodec/lib/compress"
)

// readInput returns the contents of the single file argument, or of
// stdin when args is empty. The caller must call release once it no
// longer references the returned bytes.
func readInput(args []string, stdin io.Reader) ([]byte, func(), error) {
	switch len(args) {
	case 0:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, nil, cli.Internal("reading stdin: %w", err)
		}
		return data, func() {}, nil
	case 1:
		data, release, err := mapFile(args[0])
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, nil, cli.NotFound("input file %s does not exist", args[0])
			}
			return nil, nil, cli.Internal("reading %s: %w", args[0], err)
		}
		return data, release, nil
	default:
		return nil, nil, cli.Validation("expected at most one input file, got %d arguments", len(args))
	}
}

// readBinary reads input and undoes the hex and compression wrapping
// the flags declare. The result is always independent of any mapping.
func readBinary(args []string, stdin io.Reader, hexInput, compressed bool) ([]byte, error) {
	data, release, err := readInput(args, stdin)
	if err != nil {
		return nil, err
	}
	defer release()

	if hexInput {
		if data, err = decodeHexInput(data); err != nil {
			return nil, err
		}
	}
	if compressed {
		payload, err := compress.Decompress(data)
		if err != nil {
			return nil, cli.Validation("unwrapping compressed input: %w", err)
		}
		// A stored (None) envelope yields a view into data.
		return append([]byte(nil), payload...), nil
	}
	if !hexInput {
		data = append([]byte(nil), data...)
	}
	return data, nil
}

// decodeHexInput decodes hex text, ignoring whitespace so that
// wrapped or space-separated dumps are accepted.
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, string(data))
	decoded, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, cli.Validation("invalid hex input: %w", err)
	}
	return decoded, nil
}

// writeBinary writes data raw, or as one line of hex.
func writeBinary(w io.Writer, data []byte, hexOutput bool) error {
	var err error
	if hexOutput {
		_, err = fmt.Fprintln(w, hex.EncodeToString(data))
	} else {
		_, err = w.Write(data)
	}
	if err != nil {
		return cli.Internal("writing output: %w", err)
	}
	return nil
}

func readFile(path string) ([]byte, func(), error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() {}, nil
}
