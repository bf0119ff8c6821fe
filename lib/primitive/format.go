// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package primitive

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"unicode/utf16"

	"github.com/bureau-foundation/graphcodec/lib/decimal"
	"github.com/bureau-foundation/graphcodec/lib/enum"
	"github.com/bureau-foundation/graphcodec/lib/value"
)

// Special float renderings.
const (
	PositiveInfinity = "Infinity"
	NegativeInfinity = "-Infinity"
	NotANumber       = "NaN"
)

// Format renders a primitive or enum value as text. Floats use the
// shortest representation that round-trips, strings are Go-quoted,
// and chars are single-quoted. An unpaired surrogate char is written
// as a '\uXXXX' escape, which Parse accepts.
func Format(v reflect.Value) string {
	switch value.KindOf(v.Type()) {
	case value.KindBool:
		return strconv.FormatBool(v.Bool())
	case value.KindInt8, value.KindInt16, value.KindInt32, value.KindInt64:
		return strconv.FormatInt(v.Int(), 10)
	case value.KindUint8, value.KindUint16, value.KindUint32, value.KindUint64:
		return strconv.FormatUint(v.Uint(), 10)
	case value.KindFloat32, value.KindFloat64:
		return formatFloat(v.Float(), v.Type().Bits())
	case value.KindDecimal:
		return v.Interface().(decimal.Decimal).String()
	case value.KindChar:
		return formatChar(uint16(v.Uint()))
	case value.KindString:
		return strconv.Quote(v.String())
	case value.KindEnum:
		return enum.Lookup(v.Type()).Format(v)
	default:
		return fmt.Sprint(v.Interface())
	}
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return PositiveInfinity
	case math.IsInf(f, -1):
		return NegativeInfinity
	case math.IsNaN(f):
		return NotANumber
	default:
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
}

func formatChar(unit uint16) string {
	if utf16.IsSurrogate(rune(unit)) {
		return fmt.Sprintf(`'\u%04x'`, unit)
	}
	return strconv.QuoteRune(rune(unit))
}
