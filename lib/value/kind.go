// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"fmt"
	"reflect"
	"unicode/utf16"

	"github.com/bureau-foundation/graphcodec/lib/decimal"
	"github.com/bureau-foundation/graphcodec/lib/enum"
)

// Kind classifies a Go type into the codec data model.
type Kind uint8

const (
	// KindUnsupported types (interfaces, functions, channels, complex
	// numbers, unsafe pointers) have no representation. Encoders
	// write nothing for them and decoders produce the zero value
	// without consuming input.
	KindUnsupported Kind = iota

	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindDecimal
	KindChar
	KindString

	// KindEnum is a registered named integer type; see package enum.
	KindEnum

	// KindPointer is a nullable wrapper around its element type.
	KindPointer

	// KindTuple is a positional tuple (see package tuple).
	KindTuple

	// KindRectangular is an N-dimensional rectangular array (see package
	// grid).
	KindRectangular

	// KindArray is a Go fixed-length array [N]T.
	KindArray

	// KindList is a Go slice.
	KindList

	// KindDictionary is a Go map.
	KindDictionary

	// KindRecord is a struct serialized field by field.
	KindRecord
)

var kindNames = [...]string{
	KindUnsupported: "unsupported",
	KindBool:        "bool",
	KindInt8:        "int8",
	KindInt16:       "int16",
	KindInt32:       "int32",
	KindInt64:       "int64",
	KindUint8:       "uint8",
	KindUint16:      "uint16",
	KindUint32:      "uint32",
	KindUint64:      "uint64",
	KindFloat32:     "float32",
	KindFloat64:     "float64",
	KindDecimal:     "decimal",
	KindChar:        "char",
	KindString:      "string",
	KindEnum:        "enum",
	KindPointer:     "pointer",
	KindTuple:       "tuple",
	KindRectangular: "rectangular",
	KindArray:       "array",
	KindList:        "list",
	KindDictionary:  "dictionary",
	KindRecord:      "record",
}

// String returns the lowercase kind name.
func (kind Kind) String() string {
	if int(kind) < len(kindNames) {
		return kindNames[kind]
	}
	return fmt.Sprintf("kind(%d)", kind)
}

// IsPrimitive reports whether kind is a fixed-width or string leaf.
func (kind Kind) IsPrimitive() bool {
	return kind >= KindBool && kind <= KindString
}

// IsComposite reports whether values of kind contain nested values.
func (kind Kind) IsComposite() bool {
	return kind >= KindTuple
}

// FixedWidth returns the payload size of a fixed-width primitive kind,
// or 0 for variable-width and composite kinds.
func (kind Kind) FixedWidth() int {
	switch kind {
	case KindBool, KindInt8, KindUint8:
		return 1
	case KindInt16, KindUint16, KindChar:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	case KindInt64, KindUint64, KindFloat64:
		return 8
	case KindDecimal:
		return 16
	default:
		return 0
	}
}

// Char is a single UTF-16 code unit. It is distinct from rune (an
// alias of int32, which the codecs treat as a 32-bit integer).
type Char uint16

// String returns the character as a string. Unpaired surrogates
// render as U+FFFD.
func (c Char) String() string {
	return string(utf16.Decode([]uint16{uint16(c)}))
}

// TupleType is implemented by positional tuple types. The codecs treat
// every struct field of a tuple as an element, in declaration order.
type TupleType interface {
	TupleArity() int
}

// RectangularArray is implemented (on the pointer receiver) by
// rectangular N-dimensional arrays. Cells are addressed by their
// row-major flat index.
type RectangularArray interface {
	// Rank returns the number of dimensions. It is fixed by the type
	// and valid on the zero value.
	Rank() int

	// Dims returns the extent of each dimension, outermost first. A
	// nil result denotes a null array.
	Dims() []int

	// ElementType returns the cell type.
	ElementType() reflect.Type

	// Cell returns the settable cell at the flat row-major index.
	Cell(flat int) reflect.Value

	// Reshape discards the contents and allocates zeroed cells for
	// the given dimensions. len(dims) must equal Rank.
	Reshape(dims []int)
}

var (
	decimalType     = reflect.TypeFor[decimal.Decimal]()
	charType        = reflect.TypeFor[Char]()
	tupleType       = reflect.TypeFor[TupleType]()
	rectangularType = reflect.TypeFor[RectangularArray]()
)

// KindOf classifies t. Named types are inspected before their
// underlying reflect.Kind so that decimals, chars, tuples, grids, and
// registered enums take precedence over their representation.
func KindOf(t reflect.Type) Kind {
	if t == nil {
		return KindUnsupported
	}
	switch {
	case t == decimalType:
		return KindDecimal
	case t == charType:
		return KindChar
	case t.Kind() == reflect.Struct && reflect.PointerTo(t).Implements(rectangularType):
		return KindRectangular
	case t.Kind() == reflect.Struct && t.Implements(tupleType):
		return KindTuple
	case enum.Lookup(t) != nil:
		return KindEnum
	}

	switch t.Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Int64, reflect.Int:
		return KindInt64
	case reflect.Uint8:
		return KindUint8
	case reflect.Uint16:
		return KindUint16
	case reflect.Uint32:
		return KindUint32
	case reflect.Uint64, reflect.Uint, reflect.Uintptr:
		return KindUint64
	case reflect.Float32:
		return KindFloat32
	case reflect.Float64:
		return KindFloat64
	case reflect.String:
		return KindString
	case reflect.Pointer:
		return KindPointer
	case reflect.Array:
		return KindArray
	case reflect.Slice:
		return KindList
	case reflect.Map:
		return KindDictionary
	case reflect.Struct:
		return KindRecord
	default:
		return KindUnsupported
	}
}

// AsRectangular returns the rectangular-array view of v. v must be of
// KindRectangular; an unaddressable v is copied first.
func AsRectangular(v reflect.Value) RectangularArray {
	if !v.CanAddr() {
		copied := reflect.New(v.Type()).Elem()
		copied.Set(v)
		v = copied
	}
	return v.Addr().Interface().(RectangularArray)
}

// IsNull reports whether v is a null value: a nil pointer, slice, or
// map, or a rectangular array with no dimensions.
func IsNull(v reflect.Value) bool {
	switch KindOf(v.Type()) {
	case KindPointer, KindList, KindDictionary:
		return v.IsNil()
	case KindRectangular:
		return AsRectangular(v).Dims() == nil
	default:
		return false
	}
}
