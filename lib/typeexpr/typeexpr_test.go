// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package typeexpr

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/bureau-foundation/graphcodec/lib/decimal"
	"github.com/bureau-foundation/graphcodec/lib/fields"
	"github.com/bureau-foundation/graphcodec/lib/value"
)

func TestParseComposites(t *testing.T) {
	tests := []struct {
		expression string
		want       reflect.Type
	}{
		{"int32", reflect.TypeFor[int32]()},
		{"char", reflect.TypeFor[value.Char]()},
		{"decimal", reflect.TypeFor[decimal.Decimal]()},
		{"*string", reflect.TypeFor[*string]()},
		{"[]int32", reflect.TypeFor[[]int32]()},
		{"[ ]  [ ]uint8", reflect.TypeFor[[][]uint8]()},
		{"[3]float64", reflect.TypeFor[[3]float64]()},
		{"map[string][]*int16", reflect.TypeFor[map[string][]*int16]()},
		{"map[char]bool", reflect.TypeFor[map[value.Char]bool]()},
		{"struct{}", reflect.TypeFor[struct{}]()},
		{"struct{ Name string; Size int32 }", reflect.TypeFor[struct {
			Name string
			Size int32
		}]()},
		{"struct{Name string Size int32}", reflect.TypeFor[struct {
			Name string
			Size int32
		}]()},
	}
	for _, test := range tests {
		got, err := Parse(test.expression, nil)
		if err != nil {
			t.Fatalf("Parse(%q): %v", test.expression, err)
		}
		if got != test.want {
			t.Errorf("Parse(%q) = %v, want %v", test.expression, got, test.want)
		}
	}
}

func TestParseTuple(t *testing.T) {
	got, err := Parse("(string, [2]int8, *bool)", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := reflect.TypeFor[struct {
		Item1 string
		Item2 [2]int8
		Item3 *bool
	}]()
	if got != want {
		t.Errorf("Parse = %v, want %v", got, want)
	}

	if _, err := Parse("(string)", nil); !errors.Is(err, ErrSyntax) {
		t.Errorf("one-element tuple error = %v, want ErrSyntax", err)
	}
}

func TestParseTagsReachFieldResolver(t *testing.T) {
	got, err := Parse("struct{ B int32 `order:\"0\"`; A string `order:\"1\" comment:\"first line\"` }", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	resolved := fields.Resolve(got)
	if len(resolved) != 2 {
		t.Fatalf("Resolve returned %d fields", len(resolved))
	}
	if resolved[0].Name != "B" || resolved[1].Name != "A" {
		t.Errorf("order = %s, %s", resolved[0].Name, resolved[1].Name)
	}
	if len(resolved[1].Comment) != 1 || resolved[1].Comment[0] != "first line" {
		t.Errorf("Comment = %q", resolved[1].Comment)
	}
}

func TestParseAliases(t *testing.T) {
	aliases := map[string]string{
		"Point":  "(float64, float64)",
		"Shape":  "struct{ Name string; Outline []Point }",
		"Shapes": "map[string]Shape",
	}
	got, err := Parse("Shapes", aliases)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Kind() != reflect.Map || got.Elem().Field(1).Type.Elem().Field(0).Name != "Item1" {
		t.Errorf("Parse = %v", got)
	}

	cyclic := map[string]string{"Node": "struct{ Next *Node }"}
	if _, err := Parse("Node", cyclic); !errors.Is(err, ErrAliasCycle) {
		t.Errorf("cyclic alias error = %v, want ErrAliasCycle", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		expression string
		want       error
		contains   string
	}{
		{"", ErrSyntax, "end of input"},
		{"int32 int32", ErrSyntax, "after type"},
		{"[x]int32", ErrSyntax, "array length"},
		{"[2000000]int8", ErrSyntax, "array length"},
		{"map[[]int32]bool", ErrSyntax, "not comparable"},
		{"struct{ name string }", ErrSyntax, "exported"},
		{"struct{ A int32; A int32 }", ErrSyntax, "duplicate"},
		{"struct{ A int32 `order:\"1\" }", ErrSyntax, "unterminated"},
		{"int32!", ErrSyntax, "unexpected character"},
		{"flaot64", ErrUnknownType, `did you mean "float64"`},
		{"Widget", ErrUnknownType, "Widget"},
	}
	for _, test := range tests {
		_, err := Parse(test.expression, nil)
		if !errors.Is(err, test.want) {
			t.Errorf("Parse(%q) error = %v, want %v", test.expression, err, test.want)
			continue
		}
		if !strings.Contains(err.Error(), test.contains) {
			t.Errorf("Parse(%q) error %q does not mention %q", test.expression, err, test.contains)
		}
	}
}

func TestFormatRoundtrip(t *testing.T) {
	for _, expression := range []string{
		"int32",
		"*[]map[string]decimal",
		"[4]char",
		"struct{Name string; Size int32 `order:\"0\"`}",
	} {
		parsed := MustParse(expression)
		formatted := Format(parsed)
		if formatted != expression {
			t.Errorf("Format(Parse(%q)) = %q", expression, formatted)
		}
		if MustParse(formatted) != parsed {
			t.Errorf("Parse(Format(%q)) is a different type", expression)
		}
	}
}
