// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress wraps encoded payloads in a self-describing
// compression envelope.
//
// An envelope is one algorithm tag byte, the uncompressed size as a
// little-endian uint32, and the payload:
//
//	tag:uint8 size:uint32 payload
//
// LZ4 uses the block format from github.com/pierrec/lz4/v4; zstd uses
// github.com/klauspost/compress at the default level. Input that does
// not shrink is stored with [None], so [Compress] never grows data by
// more than the five header bytes.
package compress
