// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package textcodec encodes Go values to and from an indented,
// human-editable text form.
//
// Each value is one line, "name: value", indented by one tab per
// nesting level. A composite value (tuple, list, array, grid,
// dictionary or record) has an empty value and its children on the
// following lines, one tab deeper:
//
//	// Window title
//	Title: "Inventory"
//
//	Size:
//		Item1: 640
//		Item2: 480
//	Anchors: Left | Top
//	Columns:
//		0: "Name"
//		1: "Count"
//	Widths:
//		key0: "Name"
//		value0: 120
//	Notes:
//		"first line"
//		"second line"
//	Parent: null
//
// List and array elements are named by index, dictionary entries by
// key{i} and value{i}, and tuple elements Item1..ItemN unless the
// field carries a names tag. Records name their children after their
// resolved fields (see package fields); the space and comment tags
// insert blank lines and "//" comment lines before a field. Strings
// containing newlines are written one Go-quoted line at a time.
// Grids are written as the nested lists of their jagged form. Nil
// pointers, slices and maps, zero grids and records without persisted
// fields are written as null.
//
// A composite root writes its children at depth 0; any other root is
// written as a single line named "value".
//
// Decoding mirrors encoding, driven by the expected type. Comment and
// blank lines are ignored. Record fields are matched by name, so
// unlike the binary form the text form tolerates reordered, missing
// and unknown fields. List elements are placed by their index names,
// with gaps left at the element default. Tuple element names are
// ignored; only position matters.
//
// Leaf values are formatted and parsed by package primitive, which
// accepts lenient forms such as "yes" for true and wraps out-of-range
// integers.
package textcodec
