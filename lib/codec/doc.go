// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec bridges value graphs to the interchange formats the
// command line speaks: JSON, YAML, and CBOR.
//
// The three formats share one intermediate representation, a generic
// tree of nil, bool, numbers, strings, []any, and map[string]any, the
// shape that encoding/json, gopkg.in/yaml.v3, and fxamacker/cbor all
// produce when unmarshaling into an any. [ToTree] lowers a value graph
// into such a tree following the codec data model, and [FromTree]
// raises a tree back into a value of a given type:
//
//   - records become maps keyed by resolved field name
//   - tuples, lists, fixed arrays, and rectangular arrays (as jagged
//     nesting) become sequences
//   - dictionaries with string keys become maps; other dictionaries
//     become a sequence of [key, value] pairs
//   - enums become their formatted names, decimals and chars become
//     strings, and non-finite floats become the tokens of package
//     primitive
//
// Leaves are raised through package primitive, so a tree may carry a
// number as a string ("260", "max", "A | C") and a target may accept a
// number for an enum.
//
// The package also holds the shared CBOR configuration. The encoder
// uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map keys,
// smallest integer encoding, no indefinite-length items, so the same
// tree always produces identical bytes.
//
//	tree, err := codec.ToTree(reflect.ValueOf(value))
//	data, err := codec.Marshal(tree)
//
//	var tree any
//	err = codec.NewDecoder(bytes.NewReader(data)).Decode(&tree)
//	result, err := codec.FromTree(tree, reflect.TypeFor[Window]())
package codec
