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

type decoder struct {
	// origin is the capacity of the input slice. Every slice the
	// decoder handles shares its backing array, so origin minus a
	// slice's capacity is that slice's offset in the input.
	origin int
}

func (d *decoder) offset(data []byte) int {
	return d.origin - cap(data)
}

func (d *decoder) frameError(data []byte, t reflect.Type, format string, args ...any) error {
	return &FrameError{Offset: d.offset(data), Type: t, Reason: fmt.Sprintf(format, args...)}
}

func (d *decoder) decode(data []byte, t reflect.Type, depth int) (reflect.Value, []byte, error) {
	if depth > MaxDepth {
		return reflect.Value{}, data, fmt.Errorf("%w (decoding %v)", ErrTooDeep, t)
	}
	result := reflect.New(t).Elem()
	kind := value.KindOf(t)

	switch kind {
	case value.KindUnsupported:
		return result, data, nil

	case value.KindEnum:
		underlying, rest, err := d.decode(data, enum.Lookup(t).Underlying(), depth+1)
		if err != nil {
			return reflect.Value{}, data, err
		}
		return underlying.Convert(t), rest, nil

	case value.KindPointer:
		if isNull(data) {
			return result, data[PrefixSize:], nil
		}
		element, rest, err := d.decode(data, t.Elem(), depth+1)
		if err != nil {
			return reflect.Value{}, data, err
		}
		pointer := reflect.New(t.Elem())
		pointer.Elem().Set(element)
		return pointer, rest, nil

	case value.KindRectangular:
		shape := value.AsRectangular(result)
		jaggedType := grid.JaggedType(shape.ElementType(), shape.Rank())
		jagged, rest, err := d.decode(data, jaggedType, depth+1)
		if err != nil {
			return reflect.Value{}, data, err
		}
		restored, err := grid.ToRectangular(jagged, t)
		if err != nil {
			return reflect.Value{}, data, d.frameError(data, t, "%v", err)
		}
		return restored, rest, nil
	}

	if len(data) < PrefixSize {
		return reflect.Value{}, data, d.frameError(data, t, "need %d-byte length prefix, have %d bytes", PrefixSize, len(data))
	}
	length := binary.LittleEndian.Uint32(data)
	if length == NullLength {
		return result, data[PrefixSize:], nil
	}
	if uint64(length) > uint64(len(data)-PrefixSize) {
		return reflect.Value{}, data, d.frameError(data, t, "declared length %d exceeds the %d bytes available", length, len(data)-PrefixSize)
	}
	payload := data[PrefixSize : PrefixSize+int(length)]
	rest := data[PrefixSize+int(length):]

	if width := kind.FixedWidth(); width != 0 && int(length) != width {
		return reflect.Value{}, data, d.frameError(data, t, "declared length %d, want %d", length, width)
	}

	var err error
	switch kind {
	case value.KindBool:
		result.SetBool(payload[0] != 0)
	case value.KindInt8:
		result.SetInt(int64(int8(payload[0])))
	case value.KindUint8:
		result.SetUint(uint64(payload[0]))
	case value.KindInt16:
		result.SetInt(int64(int16(binary.LittleEndian.Uint16(payload))))
	case value.KindUint16, value.KindChar:
		result.SetUint(uint64(binary.LittleEndian.Uint16(payload)))
	case value.KindInt32:
		result.SetInt(int64(int32(binary.LittleEndian.Uint32(payload))))
	case value.KindUint32:
		result.SetUint(uint64(binary.LittleEndian.Uint32(payload)))
	case value.KindFloat32:
		result.SetFloat(float64(math.Float32frombits(binary.LittleEndian.Uint32(payload))))
	case value.KindInt64:
		result.SetInt(int64(binary.LittleEndian.Uint64(payload)))
	case value.KindUint64:
		result.SetUint(binary.LittleEndian.Uint64(payload))
	case value.KindFloat64:
		result.SetFloat(math.Float64frombits(binary.LittleEndian.Uint64(payload)))
	case value.KindDecimal:
		err = d.decodeDecimal(data, payload, result)
	case value.KindString:
		result.SetString(string(payload))
	case value.KindTuple:
		err = d.decodeTuple(payload, result, depth)
	case value.KindArray:
		err = d.decodeArray(payload, result, depth)
	case value.KindList:
		result, err = d.decodeList(payload, t, depth)
	case value.KindDictionary:
		err = d.decodeDictionary(payload, result, depth)
	case value.KindRecord:
		err = d.decodeRecord(payload, result, depth)
	}
	if err != nil {
		return reflect.Value{}, data, err
	}
	return result, rest, nil
}

func isNull(data []byte) bool {
	return len(data) >= PrefixSize && binary.LittleEndian.Uint32(data) == NullLength
}

func (d *decoder) decodeDecimal(frame, payload []byte, result reflect.Value) error {
	var words [4]uint32
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(payload[4*i:])
	}
	parsed, err := decimal.FromWords(words)
	if err != nil {
		return d.frameError(frame, result.Type(), "%v", err)
	}
	result.Set(reflect.ValueOf(parsed))
	return nil
}

// element decodes one child of a composite payload. A child that
// consumes nothing from a non-empty payload would loop forever, so it
// is reported as a framing error.
func (d *decoder) element(payload []byte, t reflect.Type, depth int) (reflect.Value, []byte, error) {
	element, rest, err := d.decode(payload, t, depth+1)
	if err != nil {
		return reflect.Value{}, payload, err
	}
	if len(rest) == len(payload) {
		return reflect.Value{}, payload, d.frameError(payload, t, "%d payload bytes left for a type with no representation", len(payload))
	}
	return element, rest, nil
}

// decodeTuple fills exported fields in order. Missing trailing
// elements keep their zero value; surplus frames are skipped.
func (d *decoder) decodeTuple(payload []byte, result reflect.Value, depth int) error {
	for i := range result.NumField() {
		if len(payload) == 0 {
			return nil
		}
		structField := result.Type().Field(i)
		if !structField.IsExported() || value.KindOf(structField.Type) == value.KindUnsupported {
			continue
		}
		element, rest, err := d.element(payload, structField.Type, depth)
		if err != nil {
			return err
		}
		result.Field(i).Set(element)
		payload = rest
	}
	return nil
}

// decodeArray fills at most Len elements of a fixed array; surplus
// frames are decoded and discarded.
func (d *decoder) decodeArray(payload []byte, result reflect.Value, depth int) error {
	elementType := result.Type().Elem()
	for index := 0; len(payload) > 0; index++ {
		element, rest, err := d.element(payload, elementType, depth)
		if err != nil {
			return err
		}
		if index < result.Len() {
			result.Index(index).Set(element)
		}
		payload = rest
	}
	return nil
}

func (d *decoder) decodeList(payload []byte, t reflect.Type, depth int) (reflect.Value, error) {
	result := reflect.MakeSlice(t, 0, 0)
	for len(payload) > 0 {
		element, rest, err := d.element(payload, t.Elem(), depth)
		if err != nil {
			return reflect.Value{}, err
		}
		result = reflect.Append(result, element)
		payload = rest
	}
	return result, nil
}

func (d *decoder) decodeDictionary(payload []byte, result reflect.Value, depth int) error {
	t := result.Type()
	result.Set(reflect.MakeMap(t))
	for len(payload) > 0 {
		key, rest, err := d.element(payload, t.Key(), depth)
		if err != nil {
			return err
		}
		if len(rest) == 0 {
			return d.frameError(payload, t, "key frame without a value frame")
		}
		entry, rest, err := d.element(rest, t.Elem(), depth)
		if err != nil {
			return err
		}
		result.SetMapIndex(key, entry)
		payload = rest
	}
	return nil
}

// decodeRecord assigns frames to resolved fields in order. Fields with
// no representation wrote no frame and are passed over. Fields past
// the end of the payload keep their zero value; frames past the last
// field are ignored.
func (d *decoder) decodeRecord(payload []byte, result reflect.Value, depth int) error {
	for _, field := range fields.Resolve(result.Type()) {
		if len(payload) == 0 {
			return nil
		}
		if value.KindOf(field.Type) == value.KindUnsupported {
			continue
		}
		element, rest, err := d.element(payload, field.Type, depth)
		if err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
		result.FieldByIndex(field.Index).Set(element)
		payload = rest
	}
	return nil
}
