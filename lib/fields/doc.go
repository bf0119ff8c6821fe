// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fields resolves the persisted fields of a record type.
//
// The binary form carries no field names or tags, so the order in
// which [Resolve] returns fields is the only correlation between a
// writer and a reader. Resolution is deterministic: the same type
// always yields the same list, and both codecs visit fields in that
// list's order on encode and decode.
//
// Field metadata comes from struct tags:
//
//	type Window struct {
//	    Title   string `order:"1"`
//	    Width   int32  `order:"2" space:"1" comment:"Size in pixels"`
//	    Height  int32  `order:"2"`
//	    Span    tuple.Tuple2[int32, int32] `names:"Start|End"`
//	    handle  uintptr
//	    Scratch []byte `codec:"-"`
//	}
//
// The codec tag renames a field, or with "-" skips it. A blank field
// tagged codec:"-" skips the whole type:
//
//	type Transient struct {
//	    _     struct{} `codec:"-"`
//	    Cache map[string]int
//	}
//
// A field without an order tag is numbered by a running discovery
// counter that advances for every discovered field, tagged or not.
// Fields are sorted by order number; fields sharing a number keep
// their discovery order. Embedded record structs are flattened in
// place, so their fields are discovered where the embedding appears.
//
// The space, comment and names tags affect only the text form.
//
// Resolved lists are cached per type for the life of the process.
// [Fingerprint] hashes a resolved layout so that writers and readers
// can detect field-order drift out of band.
package fields
