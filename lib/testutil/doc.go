// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for graphcodec
// packages.
//
// [Hex] turns a spaced hex literal such as "04 00 00 00 04 01 00 00"
// into bytes, so wire-format fixtures in tests read like the hex dumps
// they are compared against. [RequireBytes] compares encoded output
// and reports both sides as spaced hex on mismatch.
//
// [WriteFile] places fixture input in a per-test temporary directory
// for tests that drive commands through file arguments. [UniqueID]
// generates monotonically increasing identifiers for naming such
// fixtures.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no graphcodec-internal dependencies.
package testutil
