// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package primitive converts between leaf values and their text form.
//
// [Parse] is deliberately lenient, because the text form is meant to
// be edited by hand:
//
//   - Booleans accept true and false, and also any token containing
//     one of "+ y v 1" (true) or, failing that, one of "- n x 0"
//     (false): "yes", "no", "v", "x", "+" and "-" all parse.
//   - Numbers accept "," as the decimal separator and the
//     case-insensitive tokens Infinity, -Infinity, NaN, Pi, Tau, E,
//     Epsilon, Min and Max (the target type's bounds).
//   - Integers that fall outside the target range wrap around
//     modularly instead of failing: "200" parsed as an int8 is -56.
//     Fractions truncate toward zero.
//
// [Format] is the inverse used by the text encoder. Every value it
// produces parses back to the same value, NaN payloads excepted.
package primitive
