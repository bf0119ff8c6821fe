// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tuple

import (
	"reflect"
	"testing"
)

func TestNew(t *testing.T) {
	pair := New2(1, "one")
	if pair.Item1 != 1 || pair.Item2 != "one" {
		t.Errorf("New2 = %+v", pair)
	}
	seven := New7(1, 2, 3, 4, 5, 6, "seven")
	if seven.Item7 != "seven" {
		t.Errorf("New7 Item7 = %q", seven.Item7)
	}
}

func TestArityMatchesFieldCount(t *testing.T) {
	tuples := []interface{ TupleArity() int }{
		Tuple2[int, int]{},
		Tuple3[int, int, int]{},
		Tuple4[int, int, int, int]{},
		Tuple5[int, int, int, int, int]{},
		Tuple6[int, int, int, int, int, int]{},
		Tuple7[int, int, int, int, int, int, int]{},
	}
	for _, tuple := range tuples {
		fieldCount := reflect.TypeOf(tuple).NumField()
		if tuple.TupleArity() != fieldCount {
			t.Errorf("%T: TupleArity() = %d, fields = %d", tuple, tuple.TupleArity(), fieldCount)
		}
	}
}
