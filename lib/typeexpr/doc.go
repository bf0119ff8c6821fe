// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package typeexpr builds reflect types from a small Go-like type
// expression language, so that tools can name the type of an encoded
// value at run time.
//
//	bool int8 int16 int32 int64 int uint8 byte uint16 uint32 uint64 uint
//	float32 float64 string char decimal rune
//	*T  []T  [N]T  map[K]V
//	struct{ Name string; Size int32 `order:"0"` }
//	(string, int32)
//
// A parenthesized list is a tuple: a struct whose fields are named
// Item1..ItemN, which has the same binary and text layout as the tuple
// types of package tuple. Struct field tags are passed through, so the
// order, codec, space, comment, and names tags of package fields apply.
//
// Identifiers that are not built in are looked up in an alias table,
// whose values are themselves expressions. Rectangular arrays and
// enums need compiled Go types and cannot be expressed; a jagged
// [][]T decodes the same bytes as a rank-2 grid.
package typeexpr
