// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bincodec

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"github.com/bureau-foundation/graphcodec/lib/decimal"
	"github.com/bureau-foundation/graphcodec/lib/enum"
	"github.com/bureau-foundation/graphcodec/lib/fields"
	"github.com/bureau-foundation/graphcodec/lib/grid"
	"github.com/bureau-foundation/graphcodec/lib/value"
)

// Append appends the binary form of v to buffer.
func Append(buffer []byte, v reflect.Value) ([]byte, error) {
	encoder := encoder{buffer: buffer}
	if !v.IsValid() {
		encoder.null()
		return encoder.buffer, nil
	}
	if err := encoder.encode(v, 0); err != nil {
		return nil, err
	}
	return encoder.buffer, nil
}

type encoder struct {
	buffer []byte
}

func (e *encoder) null() {
	e.buffer = binary.LittleEndian.AppendUint32(e.buffer, NullLength)
}

func (e *encoder) prefix(length int) {
	e.buffer = binary.LittleEndian.AppendUint32(e.buffer, uint32(length))
}

func (e *encoder) encode(v reflect.Value, depth int) error {
	if depth > MaxDepth {
		return fmt.Errorf("%w (encoding %v)", ErrTooDeep, v.Type())
	}
	le := binary.LittleEndian

	switch value.KindOf(v.Type()) {
	case value.KindUnsupported:
		return nil

	case value.KindBool:
		e.prefix(1)
		if v.Bool() {
			e.buffer = append(e.buffer, 1)
		} else {
			e.buffer = append(e.buffer, 0)
		}
	case value.KindInt8:
		e.prefix(1)
		e.buffer = append(e.buffer, byte(v.Int()))
	case value.KindUint8:
		e.prefix(1)
		e.buffer = append(e.buffer, byte(v.Uint()))
	case value.KindInt16:
		e.prefix(2)
		e.buffer = le.AppendUint16(e.buffer, uint16(v.Int()))
	case value.KindUint16, value.KindChar:
		e.prefix(2)
		e.buffer = le.AppendUint16(e.buffer, uint16(v.Uint()))
	case value.KindInt32:
		e.prefix(4)
		e.buffer = le.AppendUint32(e.buffer, uint32(v.Int()))
	case value.KindUint32:
		e.prefix(4)
		e.buffer = le.AppendUint32(e.buffer, uint32(v.Uint()))
	case value.KindFloat32:
		e.prefix(4)
		e.buffer = le.AppendUint32(e.buffer, math.Float32bits(float32(v.Float())))
	case value.KindInt64:
		e.prefix(8)
		e.buffer = le.AppendUint64(e.buffer, uint64(v.Int()))
	case value.KindUint64:
		e.prefix(8)
		e.buffer = le.AppendUint64(e.buffer, v.Uint())
	case value.KindFloat64:
		e.prefix(8)
		e.buffer = le.AppendUint64(e.buffer, math.Float64bits(v.Float()))
	case value.KindDecimal:
		e.prefix(16)
		for _, word := range v.Interface().(decimal.Decimal).Words() {
			e.buffer = le.AppendUint32(e.buffer, word)
		}

	case value.KindString:
		if v.Len() >= int(NullLength) {
			return fmt.Errorf("%w: string of %d bytes", ErrFrameTooLarge, v.Len())
		}
		e.prefix(v.Len())
		e.buffer = append(e.buffer, v.String()...)

	case value.KindEnum:
		return e.encode(v.Convert(enum.Lookup(v.Type()).Underlying()), depth+1)

	case value.KindPointer:
		if v.IsNil() {
			e.null()
			return nil
		}
		return e.encode(v.Elem(), depth+1)

	case value.KindTuple:
		return e.composite(v.Type(), func() error {
			for i := range v.NumField() {
				if !v.Type().Field(i).IsExported() {
					continue
				}
				if err := e.encode(v.Field(i), depth+1); err != nil {
					return err
				}
			}
			return nil
		})

	case value.KindRectangular:
		if value.IsNull(v) {
			e.null()
			return nil
		}
		return e.encode(grid.ToJagged(v), depth+1)

	case value.KindArray, value.KindList:
		if v.Kind() == reflect.Slice && v.IsNil() {
			e.null()
			return nil
		}
		return e.composite(v.Type(), func() error {
			for i := range v.Len() {
				if err := e.encode(v.Index(i), depth+1); err != nil {
					return err
				}
			}
			return nil
		})

	case value.KindDictionary:
		if v.IsNil() {
			e.null()
			return nil
		}
		return e.composite(v.Type(), func() error {
			for _, key := range value.SortedKeys(v) {
				if err := e.encode(key, depth+1); err != nil {
					return err
				}
				if err := e.encode(v.MapIndex(key), depth+1); err != nil {
					return err
				}
			}
			return nil
		})

	case value.KindRecord:
		resolved := fields.Resolve(v.Type())
		if len(resolved) == 0 {
			e.null()
			return nil
		}
		return e.composite(v.Type(), func() error {
			for _, field := range resolved {
				if err := e.encode(v.FieldByIndex(field.Index), depth+1); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return nil
}

// composite writes a placeholder prefix, runs writeChildren, and
// patches the prefix with the size of what the children wrote.
func (e *encoder) composite(t reflect.Type, writeChildren func() error) error {
	start := len(e.buffer)
	e.prefix(0)
	if err := writeChildren(); err != nil {
		return err
	}
	length := len(e.buffer) - start - PrefixSize
	if length >= int(NullLength) {
		return fmt.Errorf("%w: %v payload of %d bytes", ErrFrameTooLarge, t, length)
	}
	binary.LittleEndian.PutUint32(e.buffer[start:], uint32(length))
	return nil
}
