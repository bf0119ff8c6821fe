// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package enum is the registry of enumerated types known to the
// codecs.
//
// Go has no reflective access to the names of a type's constants, so
// a named integer type becomes an enum only once its members are
// registered with [Register]. Registration also records whether the
// type is a flags enum, whose values combine via bitwise OR and render
// as member names joined with " | ".
//
// The binary codec encodes an enum as its underlying integer type; the
// text codec renders it by name through [Info.Format] and parses it
// back through [Info.Parse]. Unregistered named integer types are
// treated as plain integers by both codecs.
//
// The registry is process-wide and insert-only. Registrations normally
// happen in package-level variable initializers, before any codec call.
package enum
