// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

type SharedParams struct {
	Config string `flag:"config" desc:"config file"`
}

type allTypesParams struct {
	SharedParams
	JSONOutput
	Text    string   `flag:"text,t" desc:"a string" default:"hi"`
	Enabled bool     `flag:"enabled" desc:"a bool" default:"true"`
	Depth   int      `flag:"depth" desc:"an int" default:"-1"`
	Tags    []string `flag:"tag" desc:"repeatable" default:"a,b"`
	Ignored string
}

func TestBindFlags_Defaults(t *testing.T) {
	var params allTypesParams
	flagSet := FlagsFromParams("test", &params)
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if params.Text != "hi" || !params.Enabled || params.Depth != -1 {
		t.Errorf("defaults not applied: %+v", params)
	}
	if strings.Join(params.Tags, ",") != "a,b" {
		t.Errorf("Tags = %v, want [a b]", params.Tags)
	}
	if flagSet.Lookup("Ignored") != nil {
		t.Error("untagged field should not become a flag")
	}
}

func TestBindFlags_ParsesAndEmbeds(t *testing.T) {
	var params allTypesParams
	flagSet := FlagsFromParams("test", &params)
	err := flagSet.Parse([]string{"-t", "x", "--enabled=false", "--depth", "3", "--tag", "c", "--config", "c.yaml", "--json"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if params.Text != "x" || params.Enabled || params.Depth != 3 {
		t.Errorf("parsed values wrong: %+v", params)
	}
	if len(params.Tags) != 1 || params.Tags[0] != "c" {
		t.Errorf("Tags = %v, want [c]", params.Tags)
	}
	if params.Config != "c.yaml" || !params.OutputJSON {
		t.Errorf("embedded fields not bound: %+v", params)
	}
}

func TestBindFlags_RejectsBadInput(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(allTypesParams{}, flagSet); err == nil {
		t.Error("non-pointer params should fail")
	}

	type badDefault struct {
		Count int `flag:"count" default:"many"`
	}
	if err := BindFlags(&badDefault{}, flagSet); err == nil {
		t.Error("unparseable default should fail")
	}

	type hidden struct {
		Name string `flag:"name"`
	}
	type withHidden struct {
		hidden
	}
	if err := BindFlags(&withHidden{}, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("unexported embedded params should fail instead of panicking")
	}

	type badType struct {
		Ratio float64 `flag:"ratio"`
	}
	if err := BindFlags(&badType{}, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("unsupported field type should fail")
	}
}

func TestEmitJSON(t *testing.T) {
	var output bytes.Buffer
	off := JSONOutput{}
	if done, err := off.EmitJSON(&output, 1); done || err != nil {
		t.Errorf("EmitJSON without --json = (%v, %v), want (false, nil)", done, err)
	}

	on := JSONOutput{OutputJSON: true}
	var rows []string
	if done, err := on.EmitJSON(&output, rows); !done || err != nil {
		t.Fatalf("EmitJSON = (%v, %v)", done, err)
	}
	if strings.TrimSpace(output.String()) != "[]" {
		t.Errorf("nil slice rendered as %q, want []", output.String())
	}
}

func TestNewLoggerHandlers(t *testing.T) {
	var output bytes.Buffer
	newLogger(&output, false, 0).Info("hello", "key", "value")
	if !strings.HasPrefix(output.String(), "{") {
		t.Errorf("non-terminal logger should write JSON, got %q", output.String())
	}

	output.Reset()
	newLogger(&output, true, 0).Info("hello", "key", "value")
	if !strings.Contains(output.String(), "key=value") {
		t.Errorf("terminal logger should write text, got %q", output.String())
	}
	if IsTerminal(&output) {
		t.Error("a buffer is not a terminal")
	}
}
