// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fields

import (
	"cmp"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/bureau-foundation/graphcodec/lib/value"
)

// Struct tag keys.
const (
	TagCodec   = "codec"
	TagOrder   = "order"
	TagSpace   = "space"
	TagComment = "comment"
	TagNames   = "names"
)

// Field is one persisted field of a record type.
type Field struct {
	// Name is the field name used by the text form: the codec tag
	// name if present, else the Go field name.
	Name string

	// Index is the index sequence for reflect.Value.FieldByIndex.
	// Flattened embedded fields have indexes longer than one.
	Index []int

	Type reflect.Type

	// Order is the sort key: the order tag value when Explicit,
	// otherwise the discovery counter.
	Order    int
	Explicit bool

	// Space is the number of blank lines the text form writes
	// before this field.
	Space int

	// Comment lines the text form writes, each prefixed with "//",
	// before this field.
	Comment []string

	// TupleNames replaces Item1..ItemN when the field holds a tuple.
	TupleNames []string
}

var cache sync.Map // reflect.Type → []Field

// Resolve returns the ordered persisted fields of the struct type t.
// Pointer types are dereferenced. Non-struct types and types marked
// skipped return an empty list. The returned slice is shared; callers
// must not modify it.
func Resolve(t reflect.Type) []Field {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	if cached, ok := cache.Load(t); ok {
		return cached.([]Field)
	}
	actual, _ := cache.LoadOrStore(t, resolve(t))
	return actual.([]Field)
}

func resolve(t reflect.Type) []Field {
	if typeSkipped(t) {
		return []Field{}
	}
	var discovered []Field
	counter := 0
	discover(t, nil, &counter, &discovered)

	slices.SortStableFunc(discovered, func(a, b Field) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return discovered
}

// typeSkipped reports whether t carries a blank field tagged codec:"-".
func typeSkipped(t reflect.Type) bool {
	for i := range t.NumField() {
		field := t.Field(i)
		if field.Name == "_" && field.Tag.Get(TagCodec) == "-" {
			return true
		}
	}
	return false
}

func discover(t reflect.Type, parentIndex []int, counter *int, discovered *[]Field) {
	for i := range t.NumField() {
		structField := t.Field(i)
		codecTag := structField.Tag.Get(TagCodec)
		if codecTag == "-" || !persistable(structField.Type) {
			continue
		}

		index := append(slices.Clone(parentIndex), i)

		if structField.Anonymous && codecTag == "" && structField.Type.Kind() == reflect.Struct &&
			value.KindOf(structField.Type) == value.KindRecord {
			if !typeSkipped(structField.Type) {
				discover(structField.Type, index, counter, discovered)
			}
			continue
		}
		if !structField.IsExported() {
			continue
		}

		field := Field{
			Name:  structField.Name,
			Index: index,
			Type:  structField.Type,
			Order: *counter,
		}
		*counter++
		if codecTag != "" {
			field.Name = codecTag
		}
		if order, err := strconv.Atoi(structField.Tag.Get(TagOrder)); err == nil {
			field.Order = order
			field.Explicit = true
		}
		if space, err := strconv.Atoi(structField.Tag.Get(TagSpace)); err == nil && space > 0 {
			field.Space = space
		}
		if comment := structField.Tag.Get(TagComment); comment != "" {
			field.Comment = strings.Split(comment, "\n")
		}
		if names := structField.Tag.Get(TagNames); names != "" {
			field.TupleNames = strings.Split(names, "|")
		}
		*discovered = append(*discovered, field)
	}
}

// persistable excludes callback and raw-pointer types, which carry no
// data.
func persistable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return false
	default:
		return true
	}
}
