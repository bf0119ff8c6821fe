// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/graphcodec/cmd/graphcodec/cli"
	"github.com/bureau-foundation/graphcodec/lib/bincodec"
)

type framesParams struct {
	CommonParams
	cli.JSONOutput
	Hex        bool   `flag:"hex" desc:"input is hex text"`
	Compressed bool   `flag:"compressed" desc:"input is a compression envelope"`
	Depth      int    `flag:"depth" desc:"maximum nesting depth to descend (-1 for no limit)" default:"-1"`
	Width      int    `flag:"width" desc:"truncate payload previews to this many columns (0 for no limit)" default:"48"`
	Color      string `flag:"color" desc:"color output: auto, always, or never (default from config)"`
}

func framesCommand() *cli.Command {
	var params framesParams

	return &cli.Command{
		Name:    "frames",
		Summary: "List the length-prefixed frames of binary data",
		Description: `Walk binary data without knowing its type and list every length-prefixed
frame: its offset, nesting depth, and payload.

The binary form carries no type information, so nesting is inferred:
a payload is shown as nested when it splits exactly into complete
frames. Short fixed-width payloads can look nested by accident.`,
		Usage: "graphcodec frames [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Inspect a hex dump",
				Command:     "echo 0c000000 04000000 01000000 ffffff7f | graphcodec frames --hex",
			},
			{
				Description: "List only the top two levels as JSON",
				Command:     "graphcodec frames --depth 1 --json value.bin",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			return runFrames(&params, args, os.Stdin, os.Stdout)
		},
	}
}

// frameRow is the JSON form of one frame.
type frameRow struct {
	bincodec.Frame
	Hex string `json:"hex,omitempty"`
}

func runFrames(params *framesParams, args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, logger, err := params.open("frames")
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
	frames, err := bincodec.Frames(data, params.Depth)
	if err != nil {
		return cli.Validation("%w", err)
	}
	logger.Debug("walked frames", "size", len(data), "frames", len(frames))

	if params.OutputJSON {
		rows := make([]frameRow, len(frames))
		for i, frame := range frames {
			rows[i] = frameRow{Frame: frame}
			if !frame.Null && !frame.Nested {
				rows[i].Hex = hex.EncodeToString(frame.Payload)
			}
		}
		_, err := params.EmitJSON(stdout, rows)
		return err
	}

	renderer := newRenderer(stdout, colorProfile(stdout, mode))
	return renderFrames(stdout, frames, params.Width, renderer)
}

// renderFrames writes one line per frame, indented by depth.
func renderFrames(w io.Writer, frames []bincodec.Frame, width int, renderer *lipgloss.Renderer) error {
	offsetStyle := renderer.NewStyle().Faint(true)
	nullStyle := renderer.NewStyle().Foreground(lipgloss.Color("5"))
	nestedStyle := renderer.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)

	for _, frame := range frames {
		var detail string
		switch {
		case frame.Null:
			detail = nullStyle.Render("null")
		case frame.Nested:
			detail = nestedStyle.Render(fmt.Sprintf("[%d bytes]", frame.Length))
		case frame.Length == 0:
			detail = "0 bytes"
		default:
			detail = fmt.Sprintf("%d bytes  %s", frame.Length, preview(frame.Payload, width))
		}
		_, err := fmt.Fprintf(w, "%s  %s%s\n",
			offsetStyle.Render(fmt.Sprintf("%08x", frame.Offset)),
			strings.Repeat("  ", frame.Depth),
			detail)
		if err != nil {
			return cli.Internal("writing output: %w", err)
		}
	}
	return nil
}

// preview renders a leaf payload as a quoted string when it is
// printable UTF-8, and as hex otherwise, truncated to width columns.
func preview(payload []byte, width int) string {
	var text string
	if utf8.Valid(payload) && strings.IndexFunc(string(payload), func(r rune) bool { return !unicode.IsPrint(r) }) < 0 {
		text = strconv.Quote(string(payload))
	} else {
		text = hex.EncodeToString(payload)
	}
	if width > 0 && ansi.StringWidth(text) > width {
		text = ansi.Truncate(text, width, "…")
	}
	return text
}
