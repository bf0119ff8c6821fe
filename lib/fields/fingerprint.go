// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fields

import (
	"encoding/hex"
	"reflect"
	"strconv"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/graphcodec/lib/value"
)

// Fingerprint is a 32-byte BLAKE3 digest of a resolved field layout.
type Fingerprint [32]byte

// layoutDomainKey is the ASCII domain name, zero-padded to 32 bytes.
// Changing it changes every fingerprint.
var layoutDomainKey = [32]byte{
	'g', 'r', 'a', 'p', 'h', 'c', 'o', 'd', 'e', 'c', '.', 'f', 'i', 'e', 'l', 'd',
	's', '.', 'l', 'a', 'y', 'o', 'u', 't', 0, 0, 0, 0, 0, 0, 0, 0,
}

// String returns the lowercase hex encoding.
func (fingerprint Fingerprint) String() string {
	return hex.EncodeToString(fingerprint[:])
}

// Short returns the first 12 hex characters, for display.
func (fingerprint Fingerprint) Short() string {
	return fingerprint.String()[:12]
}

// FingerprintOf hashes the binary-relevant layout of t: for each
// resolved field in order, its order number, name and type, descending
// into nested record, pointer, list, array and dictionary element
// types. Two types with equal fingerprints decode each other's bytes
// field for field. Text-only metadata (space, comment, tuple names)
// does not contribute.
func FingerprintOf(t reflect.Type) Fingerprint {
	hasher, err := blake3.NewKeyed(layoutDomainKey[:])
	if err != nil {
		// NewKeyed only fails for keys that are not 32 bytes.
		panic("fields: blake3 keyed hasher: " + err.Error())
	}
	writeLayout(hasher, t, map[reflect.Type]bool{})
	var fingerprint Fingerprint
	copy(fingerprint[:], hasher.Sum(nil))
	return fingerprint
}

func writeLayout(hasher *blake3.Hasher, t reflect.Type, visiting map[reflect.Type]bool) {
	kind := value.KindOf(t)
	hasher.WriteString(kind.String())
	switch kind {
	case value.KindPointer, value.KindList, value.KindArray:
		if kind == value.KindArray {
			hasher.WriteString(strconv.Itoa(t.Len()))
		}
		hasher.WriteString("<")
		writeLayout(hasher, t.Elem(), visiting)
		hasher.WriteString(">")
	case value.KindDictionary:
		hasher.WriteString("<")
		writeLayout(hasher, t.Key(), visiting)
		hasher.WriteString(",")
		writeLayout(hasher, t.Elem(), visiting)
		hasher.WriteString(">")
	case value.KindTuple:
		hasher.WriteString("(")
		for i := range t.NumField() {
			writeLayout(hasher, t.Field(i).Type, visiting)
			hasher.WriteString(";")
		}
		hasher.WriteString(")")
	case value.KindRecord:
		if visiting[t] {
			// Recursive type: name the cycle instead of descending.
			hasher.WriteString("@" + t.String())
			return
		}
		visiting[t] = true
		hasher.WriteString("{")
		for _, field := range Resolve(t) {
			hasher.WriteString(strconv.Itoa(field.Order))
			hasher.WriteString(",")
			hasher.WriteString(field.Name)
			hasher.WriteString(",")
			writeLayout(hasher, field.Type, visiting)
			hasher.WriteString(";")
		}
		hasher.WriteString("}")
		delete(visiting, t)
	default:
		hasher.WriteString(t.String())
	}
}
