// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/graphcodec/cmd/graphcodec/cli"
	"github.com/bureau-foundation/graphcodec/lib/fields"
	"github.com/bureau-foundation/graphcodec/lib/typeexpr"
	"github.com/bureau-foundation/graphcodec/lib/value"
)

type schemaParams struct {
	CommonParams
	cli.JSONOutput
	Type   string `flag:"type,t" desc:"type expression or config alias (required)"`
	Filter string `flag:"filter,f" desc:"only list fields whose path fuzzy-matches this pattern"`
	Color  string `flag:"color" desc:"color output: auto, always, or never (default from config)"`
}

func schemaCommand() *cli.Command {
	var params schemaParams

	return &cli.Command{
		Name:    "schema",
		Summary: "Show the field layout of a type",
		Description: `Show how a type is laid out on the wire: its kind, a layout fingerprint,
and for records every field in encode order with its path, type,
order key, and text-form metadata.

Two types with the same fingerprint encode identically. A changed
fingerprint means previously encoded data may no longer decode.`,
		Usage: "graphcodec schema --type T [flags]",
		Examples: []cli.Example{
			{
				Description: "Describe an inline record type",
				Command:     "graphcodec schema --type 'struct{ Name string; Size (int32, int32) }'",
			},
			{
				Description: "Find the size fields of a config alias",
				Command:     "graphcodec schema --type Window --filter size",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument %q", args[0])
			}
			return runSchema(&params, os.Stdout)
		},
	}
}

// schemaResult is the JSON form of a type layout.
type schemaResult struct {
	Type        string               `json:"type"`
	Kind        string               `json:"kind"`
	Fingerprint string               `json:"fingerprint"`
	Fields      []fields.Description `json:"fields"`
}

func runSchema(params *schemaParams, stdout io.Writer) error {
	cfg, logger, err := params.open("schema")
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

	result := describeType(t)
	if params.Filter != "" {
		result.Fields = filterFields(result.Fields, params.Filter)
	}
	logger.Debug("described type", "type", result.Type, "fields", len(result.Fields))

	if done, err := params.EmitJSON(stdout, result); done {
		return err
	}

	renderer := newRenderer(stdout, colorProfile(stdout, mode))
	if _, err := io.WriteString(stdout, renderSchema(result, renderer)); err != nil {
		return cli.Internal("writing output: %w", err)
	}
	return nil
}

func describeType(t reflect.Type) schemaResult {
	return schemaResult{
		Type:        typeexpr.Format(t),
		Kind:        value.KindOf(t).String(),
		Fingerprint: fields.FingerprintOf(t).String(),
		Fields:      fields.Describe(t),
	}
}

// filterFields keeps the rows whose path fuzzy-matches pattern,
// case-insensitively.
func filterFields(rows []fields.Description, pattern string) []fields.Description {
	algo.Init("default")
	runes := []rune(strings.ToLower(pattern))
	var kept []fields.Description
	for _, row := range rows {
		chars := util.ToChars([]byte(row.Path))
		result, _ := algo.FuzzyMatchV2(false, false, true, &chars, runes, false, nil)
		if result.Start >= 0 {
			kept = append(kept, row)
		}
	}
	return kept
}

func renderSchema(result schemaResult, renderer *lipgloss.Renderer) string {
	label := renderer.NewStyle().Bold(true)
	var builder strings.Builder
	fmt.Fprintf(&builder, "%s %s\n", label.Render("Type:       "), result.Type)
	fmt.Fprintf(&builder, "%s %s\n", label.Render("Kind:       "), result.Kind)
	fmt.Fprintf(&builder, "%s %s\n", label.Render("Fingerprint:"), result.Fingerprint)
	if len(result.Fields) == 0 {
		return builder.String()
	}

	header := renderer.NewStyle().Bold(true).Padding(0, 1)
	cell := renderer.NewStyle().Padding(0, 1)
	rows := make([][]string, len(result.Fields))
	for i, field := range result.Fields {
		order := strconv.Itoa(field.Order)
		if field.Explicit {
			order += " (explicit)"
		}
		rows[i] = []string{
			strings.Repeat("  ", field.Depth) + field.Path,
			field.Type,
			field.Kind,
			order,
			field.Comment,
		}
	}
	layout := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(renderer.NewStyle().Faint(true)).
		Headers("PATH", "TYPE", "KIND", "ORDER", "COMMENT").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	builder.WriteString("\n")
	builder.WriteString(layout.String())
	builder.WriteString("\n")
	return builder.String()
}
