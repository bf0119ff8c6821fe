// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package decimal implements a 128-bit decimal floating point value:
// a 96-bit unsigned magnitude, a base-10 scale between 0 and 28, and a
// sign bit. The value represented is (-1)^sign * magnitude / 10^scale.
//
// The layout matches the four 32-bit words the binary codec writes for
// decimal values:
//
//	word 0: magnitude bits 0-31
//	word 1: magnitude bits 32-63
//	word 2: magnitude bits 64-95
//	word 3: flags (scale in bits 16-23, sign in bit 31, all others zero)
//
// [Decimal] values are compared by numeric value with [Decimal.Cmp];
// two decimals with different scales can be numerically equal ("1.0"
// and "1.00") while remaining distinct values with distinct encodings.
// Scale is preserved through parsing and formatting so that a value
// survives a text round trip bit-for-bit.
//
// This package depends on no other graphcodec packages.
package decimal
