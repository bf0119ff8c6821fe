// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

// Hex decodes a hex literal, ignoring spaces and newlines, or fails
// the test.
//
//	want := testutil.Hex(t, "04 00 00 00 04 01 00 00")
func Hex(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, literal string) []byte {
	t.Helper()
	compact := strings.Join(strings.Fields(literal), "")
	data, err := hex.DecodeString(compact)
	if err != nil {
		t.Fatalf("invalid hex fixture %q: %v", literal, err)
	}
	return data
}

// SpacedHex formats data as lowercase hex with a space between bytes.
func SpacedHex(data []byte) string {
	var builder strings.Builder
	for i, b := range data {
		if i > 0 {
			builder.WriteByte(' ')
		}
		fmt.Fprintf(&builder, "%02x", b)
	}
	return builder.String()
}

// RequireBytes fails the test if got and want differ, printing both
// as spaced hex.
//
//	testutil.RequireBytes(t, encoded, testutil.Hex(t, "ff ff ff 7f"), "null pointer")
func RequireBytes(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, got, want []byte, msgAndArgs ...any) {
	t.Helper()
	if !bytes.Equal(got, want) {
		t.Fatalf("%s:\n got: %s\nwant: %s", formatMessage(msgAndArgs), SpacedHex(got), SpacedHex(want))
	}
}

// formatMessage formats optional message arguments into a string.
// Accepts either a single string or a format string followed by args.
func formatMessage(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return "(no message)"
	}
	if len(msgAndArgs) == 1 {
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%v", msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs)
}
