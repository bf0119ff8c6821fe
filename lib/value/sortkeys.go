// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"

	"github.com/bureau-foundation/graphcodec/lib/decimal"
)

// SortedKeys returns the keys of the map m in ascending order. Numbers
// compare numerically, strings and chars lexically, false sorts before
// true, and decimals by value. Keys of any other type (structs, arrays,
// pointers) are ordered by their fmt representation, which is stable
// for a given set of keys but carries no further meaning.
func SortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	slices.SortStableFunc(keys, compareKeys)
	return keys
}

func compareKeys(a, b reflect.Value) int {
	if a.Type() == decimalType {
		return a.Interface().(decimal.Decimal).Cmp(b.Interface().(decimal.Decimal))
	}
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		return cmp.Compare(a.String(), b.String())
	case reflect.Bool:
		switch {
		case a.Bool() == b.Bool():
			return 0
		case !a.Bool():
			return -1
		default:
			return 1
		}
	default:
		return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
	}
}
