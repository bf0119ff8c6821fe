// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bincodec

import (
	"errors"
	"fmt"
	"reflect"
)

// NullLength is the length prefix reserved for a null value.
const NullLength uint32 = 0x7FFFFFFF

// PrefixSize is the size of a frame's length prefix.
const PrefixSize = 4

// MaxDepth bounds the nesting of values the codec will follow, so a
// cyclic pointer graph fails instead of exhausting the stack.
const MaxDepth = 1000

var (
	// ErrTrailingBytes is returned by Unmarshal when input remains
	// after the value.
	ErrTrailingBytes = errors.New("bincodec: trailing bytes after value")

	// ErrTooDeep is returned when a value nests deeper than MaxDepth.
	ErrTooDeep = errors.New("bincodec: value nested too deeply")

	// ErrFrameTooLarge is returned when a payload would need a length
	// at or above NullLength.
	ErrFrameTooLarge = errors.New("bincodec: frame payload too large")
)

// FrameError reports input whose framing does not match the expected
// type: a truncated prefix or payload, or a declared length that a
// fixed-width type cannot have.
type FrameError struct {
	// Offset is the byte offset of the offending length prefix within
	// the input passed to Decode.
	Offset int

	// Type is the type being decoded, or nil for untyped walks.
	Type reflect.Type

	// Reason describes the mismatch.
	Reason string
}

func (e *FrameError) Error() string {
	if e.Type == nil {
		return fmt.Sprintf("bincodec: offset %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("bincodec: offset %d: decoding %v: %s", e.Offset, e.Type, e.Reason)
}

// Marshal returns the binary form of v. A nil v encodes as the null
// sentinel.
func Marshal(v any) ([]byte, error) {
	if v == nil {
		return nullFrame(), nil
	}
	return Encode(reflect.ValueOf(v))
}

// Encode returns the binary form of v.
func Encode(v reflect.Value) ([]byte, error) {
	return Append(nil, v)
}

// MarshalOrEmpty is Marshal with failures converted to an empty
// result.
func MarshalOrEmpty(v any) []byte {
	data, err := Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

// Decode reads one value of type t from the front of data and returns
// it with the bytes that follow it.
func Decode(data []byte, t reflect.Type) (reflect.Value, []byte, error) {
	decoder := decoder{origin: cap(data)}
	return decoder.decode(data, t, 0)
}

// DecodeAs is the generic form of Decode.
func DecodeAs[T any](data []byte) (T, []byte, error) {
	var zero T
	result, rest, err := Decode(data, reflect.TypeFor[T]())
	if err != nil {
		return zero, data, err
	}
	return result.Interface().(T), rest, nil
}

// Unmarshal decodes data into the value pointer points to. The whole
// of data must be consumed.
func Unmarshal(data []byte, pointer any) error {
	target := reflect.ValueOf(pointer)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return fmt.Errorf("bincodec: Unmarshal needs a non-nil pointer, got %T", pointer)
	}
	result, rest, err := Decode(data, target.Type().Elem())
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return fmt.Errorf("%w: %d bytes", ErrTrailingBytes, len(rest))
	}
	target.Elem().Set(result)
	return nil
}

// TryDecode decodes a T from the front of data, reporting false and
// the zero T on any failure. Bytes after the value are ignored.
func TryDecode[T any](data []byte) (T, bool) {
	result, _, err := DecodeAs[T](data)
	if err != nil {
		var zero T
		return zero, false
	}
	return result, true
}

func nullFrame() []byte {
	return []byte{0xFF, 0xFF, 0xFF, 0x7F}
}
