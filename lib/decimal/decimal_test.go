// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package decimal

import (
	"errors"
	"testing"
)

func TestParseFormatRoundtrip(t *testing.T) {
	tests := []string{
		"0",
		"1",
		"-1",
		"123.45",
		"1.50",
		"0.0001",
		"-0.5",
		"79228162514264337593543950335",
		"-79228162514264337593543950335",
		"0.0000000000000000000000000001",
		"-0",
		"-0.00",
	}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			value, err := Parse(text)
			if err != nil {
				t.Fatalf("Parse(%q): %v", text, err)
			}
			if got := value.String(); got != text {
				t.Errorf("String() = %q, want %q", got, text)
			}
		})
	}
}

func TestParseExponent(t *testing.T) {
	value, err := Parse("1.5e3")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := value.String(); got != "1500" {
		t.Errorf("String() = %q, want 1500", got)
	}

	value, err = Parse("25e-4")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := value.String(); got != "0.0025" {
		t.Errorf("String() = %q, want 0.0025", got)
	}
}

func TestParseRoundsExcessScale(t *testing.T) {
	// 29 fractional digits: the last one is dropped with half-even rounding.
	value, err := Parse("0.00000000000000000000000000015")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := value.String(); got != "0.0000000000000000000000000002" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrSyntax},
		{"   ", ErrSyntax},
		{"abc", ErrSyntax},
		{"1.2.3", ErrSyntax},
		{"1e", ErrSyntax},
		{"79228162514264337593543950336", ErrOverflow},
	}
	for _, test := range tests {
		_, err := Parse(test.input)
		if !errors.Is(err, test.want) {
			t.Errorf("Parse(%q) error = %v, want %v", test.input, err, test.want)
		}
	}
}

func TestWordsRoundtrip(t *testing.T) {
	original, err := Parse("-1234567890123.456789")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	words := original.Words()
	if words[3] != 0x80060000 {
		t.Errorf("flags word = %#08x, want 0x80060000", words[3])
	}
	restored, err := FromWords(words)
	if err != nil {
		t.Fatalf("FromWords: %v", err)
	}
	if restored != original {
		t.Errorf("FromWords(Words()) = %v, want %v", restored, original)
	}
}

func TestFromWordsRejectsInvalidFlags(t *testing.T) {
	if _, err := FromWords([4]uint32{1, 0, 0, 0x00000001}); !errors.Is(err, ErrInvalidFlags) {
		t.Errorf("low flag bits: error = %v, want ErrInvalidFlags", err)
	}
	if _, err := FromWords([4]uint32{1, 0, 0, 29 << 16}); !errors.Is(err, ErrInvalidFlags) {
		t.Errorf("scale 29: error = %v, want ErrInvalidFlags", err)
	}
}

func TestCmp(t *testing.T) {
	a, _ := Parse("1.0")
	b, _ := Parse("1.00")
	if a.Cmp(b) != 0 {
		t.Error("1.0 and 1.00 should compare equal")
	}
	if a == b {
		t.Error("1.0 and 1.00 should be distinct values")
	}
	if MinValue.Cmp(MaxValue) != -1 {
		t.Error("MinValue should be less than MaxValue")
	}
	if Epsilon.Sign() != 1 {
		t.Error("Epsilon should be positive")
	}
}

func TestFromInt64(t *testing.T) {
	if got := FromInt64(-42).String(); got != "-42" {
		t.Errorf("FromInt64(-42) = %q", got)
	}
	if got := FromUint64(18446744073709551615).String(); got != "18446744073709551615" {
		t.Errorf("FromUint64(max) = %q", got)
	}
}

func TestFromFloat64(t *testing.T) {
	value, err := FromFloat64(0.1)
	if err != nil {
		t.Fatalf("FromFloat64: %v", err)
	}
	if got := value.String(); got != "0.1" {
		t.Errorf("FromFloat64(0.1) = %q", got)
	}
	if value.Float64() != 0.1 {
		t.Errorf("Float64() = %v", value.Float64())
	}
}

func TestNegativeZeroKeepsSign(t *testing.T) {
	negativeZero := MustParse("0.00").Neg()
	if negativeZero.Sign() != 0 || !negativeZero.IsZero() {
		t.Fatalf("Sign/IsZero = %d/%t", negativeZero.Sign(), negativeZero.IsZero())
	}
	text := negativeZero.String()
	if text != "-0.00" {
		t.Errorf("String() = %q, want -0.00", text)
	}
	restored, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	if restored.Words() != negativeZero.Words() {
		t.Errorf("words %x, want %x", restored.Words(), negativeZero.Words())
	}
	if restored.Cmp(MustParse("0")) != 0 {
		t.Error("negative zero should compare equal to zero")
	}
}
