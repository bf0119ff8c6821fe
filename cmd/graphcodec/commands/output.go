// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"io"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/graphcodec/cmd/graphcodec/cli"
	"github.com/bureau-foundation/graphcodec/lib/config"
)

// colorProfile returns the profile to render with on w. Auto mode
// colors only terminals and honors NO_COLOR and CLICOLOR_FORCE.
func colorProfile(w io.Writer, mode string) termenv.Profile {
	switch mode {
	case config.ColorNever:
		return termenv.Ascii
	case config.ColorAlways:
		if profile := termenv.NewOutput(w).EnvColorProfile(); profile != termenv.Ascii {
			return profile
		}
		return termenv.ANSI256
	default:
		if !cli.IsTerminal(w) {
			return termenv.Ascii
		}
		return termenv.NewOutput(w).EnvColorProfile()
	}
}

func validColorMode(mode string) bool {
	switch mode {
	case config.ColorAuto, config.ColorAlways, config.ColorNever:
		return true
	}
	return false
}

// newRenderer returns a lipgloss renderer pinned to profile.
func newRenderer(w io.Writer, profile termenv.Profile) *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)
	return renderer
}

// writeHighlighted writes source to w, syntax highlighted with the
// named chroma lexer and style unless profile is Ascii.
func writeHighlighted(w io.Writer, source, lexer, style string, profile termenv.Profile) error {
	if profile == termenv.Ascii {
		if _, err := io.WriteString(w, source); err != nil {
			return cli.Internal("writing output: %w", err)
		}
		return nil
	}
	if err := quick.Highlight(w, source, lexer, chromaFormatter(profile), style); err != nil {
		return cli.Internal("highlighting output: %w", err)
	}
	return nil
}

func chromaFormatter(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI:
		return "terminal16"
	default:
		return "terminal256"
	}
}
