// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package enum

import (
	"errors"
	"reflect"
	"testing"
)

type testAnchor uint8

const (
	anchorA testAnchor = 1
	anchorB testAnchor = 2
	anchorC testAnchor = 4
)

type testShape int16

const (
	shapeCircle testShape = iota
	shapeSquare
	shapeNegative testShape = -3
)

var (
	anchorInfo = Register(true,
		Member[testAnchor]{Name: "None", Value: 0},
		Member[testAnchor]{Name: "A", Value: anchorA},
		Member[testAnchor]{Name: "B", Value: anchorB},
		Member[testAnchor]{Name: "C", Value: anchorC},
		Member[testAnchor]{Name: "All", Value: anchorA | anchorB | anchorC},
	)
	shapeInfo = Register(false,
		Member[testShape]{Name: "Circle", Value: shapeCircle},
		Member[testShape]{Name: "Square", Value: shapeSquare},
		Member[testShape]{Name: "Negative", Value: shapeNegative},
	)
)

func TestLookup(t *testing.T) {
	if Lookup(reflect.TypeFor[testAnchor]()) != anchorInfo {
		t.Error("Lookup did not return the registered Info")
	}
	if Lookup(reflect.TypeFor[uint8]()) != nil {
		t.Error("Lookup of an unregistered type should return nil")
	}
	again := Register(false, Member[testAnchor]{Name: "Other", Value: 9})
	if again != anchorInfo {
		t.Error("re-registration should return the first Info")
	}
}

func TestFormatFlags(t *testing.T) {
	tests := []struct {
		value testAnchor
		want  string
	}{
		{0, "None"},
		{anchorA, "A"},
		{anchorA | anchorC, "A | C"},
		{anchorA | anchorB | anchorC, "All"},
		{8, "8"},
		{anchorA | 8, "9"},
	}
	for _, test := range tests {
		got := anchorInfo.Format(reflect.ValueOf(test.value))
		if got != test.want {
			t.Errorf("Format(%d) = %q, want %q", test.value, got, test.want)
		}
	}
}

func TestFormatPlain(t *testing.T) {
	if got := shapeInfo.Format(reflect.ValueOf(shapeSquare)); got != "Square" {
		t.Errorf("Format(Square) = %q", got)
	}
	if got := shapeInfo.Format(reflect.ValueOf(shapeNegative)); got != "Negative" {
		t.Errorf("Format(Negative) = %q", got)
	}
	if got := shapeInfo.Format(reflect.ValueOf(testShape(17))); got != "17" {
		t.Errorf("Format(17) = %q", got)
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		text string
		want testAnchor
	}{
		{"A | C", anchorA | anchorC},
		{"C|A", anchorA | anchorC},
		{"a, b", anchorA | anchorB},
		{"All", anchorA | anchorB | anchorC},
		{"", 0},
		{"9", 9},
	}
	for _, test := range tests {
		value, err := anchorInfo.Parse(test.text)
		if err != nil {
			t.Fatalf("Parse(%q): %v", test.text, err)
		}
		if got := value.Interface().(testAnchor); got != test.want {
			t.Errorf("Parse(%q) = %d, want %d", test.text, got, test.want)
		}
	}
}

func TestParseSignExtends(t *testing.T) {
	value, err := shapeInfo.Parse("Negative")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := value.Interface().(testShape); got != shapeNegative {
		t.Errorf("Parse(Negative) = %d, want %d", got, shapeNegative)
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := shapeInfo.Parse("Triangle")
	if !errors.Is(err, ErrUnknownMember) {
		t.Errorf("Parse(Triangle) error = %v, want ErrUnknownMember", err)
	}
}

func TestUnderlying(t *testing.T) {
	if anchorInfo.Underlying() != reflect.TypeFor[uint8]() {
		t.Errorf("Underlying() = %v, want uint8", anchorInfo.Underlying())
	}
	if shapeInfo.Underlying() != reflect.TypeFor[int16]() {
		t.Errorf("Underlying() = %v, want int16", shapeInfo.Underlying())
	}
}
