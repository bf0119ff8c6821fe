// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package value defines the data model shared by the binary and text
// codecs.
//
// Every Go type a codec is asked to handle is first classified by
// [KindOf] into one of a small set of kinds: fixed-width primitives,
// strings, 128-bit decimals, UTF-16 chars, registered enums, pointers,
// positional tuples, rectangular arrays, fixed arrays, lists,
// dictionaries and records. Both codecs dispatch on the kind rather
// than on reflect.Kind, which keeps their rules in lockstep.
//
// Null is not a separate value: a nil pointer, slice or map, or a
// rectangular array with no dimensions, is null ([IsNull]). Records
// with no persisted fields encode as null too, but that is decided by
// the codecs after field resolution.
//
// Go maps iterate in random order. [SortedKeys] returns a map's keys
// in a deterministic ascending order so that encoded output is
// reproducible byte for byte.
package value
