// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package textcodec

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/bureau-foundation/graphcodec/lib/fields"
	"github.com/bureau-foundation/graphcodec/lib/grid"
	"github.com/bureau-foundation/graphcodec/lib/primitive"
	"github.com/bureau-foundation/graphcodec/lib/value"
)

// RootName names the single line written for a non-composite root.
const RootName = "value"

// Null is the value token for a null value.
const Null = "null"

// CommentPrefix starts a comment line.
const CommentPrefix = "//"

// MaxDepth bounds the nesting the codec will follow, so a cyclic
// pointer graph fails instead of exhausting the stack.
const MaxDepth = 1000

// MaxIndexGap bounds how far a list element's index may point past
// the number of element lines, since missing elements are allocated
// with their default value.
const MaxIndexGap = 1 << 16

// ErrTooDeep is returned when a value nests deeper than MaxDepth.
var ErrTooDeep = errors.New("textcodec: value nested too deeply")

// Option configures an Encoder.
type Option func(*Encoder)

// WithTupleNames names the elements of a tuple root in place of
// Item1..ItemN.
func WithTupleNames(names ...string) Option {
	return func(encoder *Encoder) {
		encoder.rootTupleNames = names
	}
}

// Encoder accumulates text form lines.
type Encoder struct {
	builder        strings.Builder
	rootTupleNames []string
}

// NewEncoder returns an empty Encoder.
func NewEncoder(options ...Option) *Encoder {
	encoder := &Encoder{}
	for _, option := range options {
		option(encoder)
	}
	return encoder
}

// Marshal returns the text form of v.
func Marshal(v any, options ...Option) (string, error) {
	encoder := NewEncoder(options...)
	if err := encoder.EncodeRoot(reflect.ValueOf(v)); err != nil {
		return "", err
	}
	return encoder.String(), nil
}

// String returns the text written so far.
func (e *Encoder) String() string {
	return e.builder.String()
}

// EncodeRoot writes v as a document: the children of a composite v at
// depth 0, or a single "value" line for anything else.
func (e *Encoder) EncodeRoot(v reflect.Value) error {
	for v.IsValid() && v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	}
	if !v.IsValid() {
		e.line(0, RootName, Null)
		return nil
	}
	if !value.KindOf(v.Type()).IsComposite() || isNull(v) {
		return e.Encode(RootName, v, 0)
	}
	return e.children(v, 0, e.rootTupleNames)
}

// Encode writes v as a line called name at the given depth, followed
// by its nested lines if it is composite.
func (e *Encoder) Encode(name string, v reflect.Value, depth int) error {
	return e.encode(name, v, depth, nil)
}

func (e *Encoder) encode(name string, v reflect.Value, depth int, tupleNames []string) error {
	if depth > MaxDepth {
		return fmt.Errorf("%w (encoding %v)", ErrTooDeep, v.Type())
	}
	kind := value.KindOf(v.Type())
	switch {
	case kind == value.KindUnsupported:
		return nil
	case isNull(v):
		e.line(depth, name, Null)
		return nil
	case kind == value.KindPointer:
		return e.encode(name, v.Elem(), depth, tupleNames)
	case kind == value.KindString && strings.Contains(v.String(), "\n"):
		e.line(depth, name, "")
		for _, line := range strings.Split(v.String(), "\n") {
			e.indent(depth + 1)
			e.builder.WriteString(strconv.Quote(line))
			e.builder.WriteByte('\n')
		}
		return nil
	case kind.IsComposite():
		e.line(depth, name, "")
		return e.children(v, depth+1, tupleNames)
	default:
		e.line(depth, name, primitive.Format(v))
		return nil
	}
}

// children writes the nested lines of the composite v at childDepth.
func (e *Encoder) children(v reflect.Value, childDepth int, tupleNames []string) error {
	switch value.KindOf(v.Type()) {
	case value.KindTuple:
		position := 0
		for i := range v.NumField() {
			if !v.Type().Field(i).IsExported() {
				continue
			}
			name := "Item" + strconv.Itoa(position+1)
			if position < len(tupleNames) && tupleNames[position] != "" {
				name = tupleNames[position]
			}
			position++
			if err := e.encode(name, v.Field(i), childDepth, nil); err != nil {
				return err
			}
		}

	case value.KindRectangular:
		return e.children(grid.ToJagged(v), childDepth, nil)

	case value.KindArray, value.KindList:
		for i := range v.Len() {
			if err := e.encode(strconv.Itoa(i), v.Index(i), childDepth, nil); err != nil {
				return err
			}
		}

	case value.KindDictionary:
		for i, key := range value.SortedKeys(v) {
			index := strconv.Itoa(i)
			if err := e.encode("key"+index, key, childDepth, nil); err != nil {
				return err
			}
			if err := e.encode("value"+index, v.MapIndex(key), childDepth, nil); err != nil {
				return err
			}
		}

	case value.KindRecord:
		for _, field := range fields.Resolve(v.Type()) {
			for range field.Space {
				e.builder.WriteByte('\n')
			}
			for _, comment := range field.Comment {
				e.indent(childDepth)
				e.builder.WriteString(CommentPrefix + " " + comment + "\n")
			}
			if err := e.encode(field.Name, v.FieldByIndex(field.Index), childDepth, field.TupleNames); err != nil {
				return fmt.Errorf("%s: %w", field.Name, err)
			}
		}
	}
	return nil
}

func (e *Encoder) indent(depth int) {
	for range depth {
		e.builder.WriteByte('\t')
	}
}

// line writes "name: rendered", or "name:" when rendered is empty.
func (e *Encoder) line(depth int, name, rendered string) {
	e.indent(depth)
	e.builder.WriteString(name)
	e.builder.WriteByte(':')
	if rendered != "" {
		e.builder.WriteByte(' ')
		e.builder.WriteString(rendered)
	}
	e.builder.WriteByte('\n')
}

// isNull extends value.IsNull with records that have no persisted
// fields.
func isNull(v reflect.Value) bool {
	if value.IsNull(v) {
		return true
	}
	return value.KindOf(v.Type()) == value.KindRecord && len(fields.Resolve(v.Type())) == 0
}
