// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bincodec encodes Go values to and from a compact
// length-prefixed binary form.
//
// Every value is written as a frame: a little-endian uint32 payload
// length followed by exactly that many payload bytes. The length
// 0x7FFFFFFF ([NullLength]) is reserved as the null sentinel and is
// never followed by payload. Nil pointers, slices and maps, zero-value
// grids, and records with no persisted fields all encode as the
// sentinel.
//
// Fixed-width primitives have fixed payload sizes (bool, int8 and
// uint8 take 1 byte; chars, int16 and uint16 take 2; int32, uint32
// and float32 take 4; int64, uint64, int, uint and float64 take 8;
// decimals take 16). Strings carry their UTF-8 bytes. Enums are
// written as their underlying integer.
//
// Composite values (tuples, lists, fixed arrays, dictionaries and
// records) carry the concatenation of their children's complete
// frames. Item counts are never stored: a decoder knows a container is
// finished when its payload is exhausted. Grids are converted to
// nested slices first (see package grid) so each dimension is its own
// level of framing. Dictionaries alternate key and value frames, with
// keys in ascending order so that output is reproducible.
//
// The form is not self-describing. Decoding needs the expected type at
// every step, and records are matched purely by the order of their
// resolved fields (see package fields): decoding with a type whose
// fields are in a different order silently assigns values to the wrong
// fields. [fields.FingerprintOf] can detect such drift out of band.
//
// Types with no representation (interfaces, functions, channels,
// complex numbers) write no bytes at all and decode to their zero
// value without consuming input.
//
// Decoding errors are explicit: [*FrameError] reports a declared
// length that does not fit the expected type or the available input.
// [TryDecode] and [MarshalOrEmpty] convert any failure into an absent
// result for callers that prefer to degrade silently.
package bincodec
