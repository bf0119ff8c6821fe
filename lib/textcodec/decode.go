// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package textcodec

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/bureau-foundation/graphcodec/lib/fields"
	"github.com/bureau-foundation/graphcodec/lib/grid"
	"github.com/bureau-foundation/graphcodec/lib/primitive"
	"github.com/bureau-foundation/graphcodec/lib/value"
)

// Unmarshal decodes text into the value pointer points to.
func Unmarshal(text string, pointer any) error {
	target := reflect.ValueOf(pointer)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return fmt.Errorf("textcodec: Unmarshal needs a non-nil pointer, got %T", pointer)
	}
	result, err := Decode(text, target.Type().Elem())
	if err != nil {
		return err
	}
	target.Elem().Set(result)
	return nil
}

// Decode parses text as a document holding a value of type t.
func Decode(text string, t reflect.Type) (reflect.Value, error) {
	root, err := Parse(text)
	if err != nil {
		return reflect.Value{}, err
	}
	return DecodeRoot(root, t)
}

// TryDecode decodes a T from text, reporting false and the zero T on
// any failure.
func TryDecode[T any](text string) (T, bool) {
	var result T
	if err := Unmarshal(text, &result); err != nil {
		var zero T
		return zero, false
	}
	return result, true
}

// DecodeRoot interprets a parsed document as a value of type t, the
// inverse of Encoder.EncodeRoot.
func DecodeRoot(root *Node, t reflect.Type) (reflect.Value, error) {
	return decodeRoot(root, t, 0)
}

func decodeRoot(root *Node, t reflect.Type, depth int) (reflect.Value, error) {
	if depth > MaxDepth {
		return reflect.Value{}, fmt.Errorf("%w (decoding %v)", ErrTooDeep, t)
	}
	kind := value.KindOf(t)
	if kind == value.KindPointer || kind.IsComposite() {
		if line := root.Child(RootName); line != nil && len(root.Children) == 1 && line.IsNull() {
			return reflect.New(t).Elem(), nil
		}
	}
	switch {
	case kind == value.KindPointer:
		element, err := decodeRoot(root, t.Elem(), depth+1)
		if err != nil {
			return reflect.Value{}, err
		}
		pointer := reflect.New(t.Elem())
		pointer.Elem().Set(element)
		return pointer, nil
	case kind.IsComposite():
		return decode(root, t, depth)
	}

	line := root.Child(RootName)
	if line == nil {
		return reflect.Value{}, fmt.Errorf("textcodec: no %q line for %v", RootName, t)
	}
	return decode(line, t, depth)
}

func decode(node *Node, t reflect.Type, depth int) (reflect.Value, error) {
	if depth > MaxDepth {
		return reflect.Value{}, fmt.Errorf("%w (decoding %v)", ErrTooDeep, t)
	}
	result := reflect.New(t).Elem()
	kind := value.KindOf(t)

	switch {
	case kind == value.KindUnsupported:
		return result, nil
	case kind == value.KindPointer:
		if node.IsNull() {
			return result, nil
		}
		element, err := decode(node, t.Elem(), depth+1)
		if err != nil {
			return reflect.Value{}, err
		}
		pointer := reflect.New(t.Elem())
		pointer.Elem().Set(element)
		return pointer, nil
	case kind == value.KindString:
		text, err := decodeString(node)
		if err != nil {
			return reflect.Value{}, err
		}
		result.SetString(text)
		return result, nil
	case !kind.IsComposite():
		parsed, err := primitive.Parse(t, node.Raw)
		if err != nil {
			return reflect.Value{}, lineError(node, err)
		}
		return parsed, nil
	case node.IsNull():
		return result, nil
	case node.Raw != "":
		return reflect.Value{}, lineError(node, fmt.Errorf("%v needs a nested block, got %q", t, node.Raw))
	}

	var err error
	switch kind {
	case value.KindTuple:
		err = decodeTuple(node, result, depth)
	case value.KindRectangular:
		shape := value.AsRectangular(result)
		var jagged reflect.Value
		jagged, err = decode(node, grid.JaggedType(shape.ElementType(), shape.Rank()), depth+1)
		if err == nil {
			if result, err = grid.ToRectangular(jagged, t); err != nil {
				err = lineError(node, err)
			}
		}
	case value.KindArray:
		err = decodeIndexed(node, result, depth)
	case value.KindList:
		result.Set(reflect.MakeSlice(t, 0, 0))
		err = decodeIndexed(node, result, depth)
	case value.KindDictionary:
		err = decodeDictionary(node, result, depth)
	case value.KindRecord:
		err = decodeRecord(node, result, depth)
	}
	if err != nil {
		return reflect.Value{}, err
	}
	return result, nil
}

func lineError(node *Node, err error) error {
	return fmt.Errorf("textcodec: line %d (%s): %w", node.Line, node.Name, err)
}

// decodeString accepts the multi-line form, a Go-quoted single line,
// or, for hand-written input, bare text.
func decodeString(node *Node) (string, error) {
	if node.Raw == "" && len(node.Strings) > 0 {
		lines := make([]string, len(node.Strings))
		for i, quoted := range node.Strings {
			lines[i] = unquote(quoted)
		}
		return strings.Join(lines, "\n"), nil
	}
	if len(node.Children) != 0 {
		return "", lineError(node, fmt.Errorf("string value has nested lines"))
	}
	return unquote(node.Raw), nil
}

func unquote(raw string) string {
	if unquoted, err := strconv.Unquote(raw); err == nil {
		return unquoted
	}
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		return raw[1 : len(raw)-1]
	}
	return raw
}

// decodeTuple assigns children to exported fields by position.
func decodeTuple(node *Node, result reflect.Value, depth int) error {
	position := 0
	for i := range result.NumField() {
		if position >= len(node.Children) {
			break
		}
		structField := result.Type().Field(i)
		if !structField.IsExported() || value.KindOf(structField.Type) == value.KindUnsupported {
			continue
		}
		child := node.Children[position]
		position++
		element, err := decode(child, structField.Type, depth+1)
		if err != nil {
			return err
		}
		result.Field(i).Set(element)
	}
	return nil
}

// decodeIndexed places children named by index into a list or fixed
// array. A list grows to the highest index, which may leave at most
// MaxIndexGap defaulted elements beyond the lines present; an array
// ignores indexes past its length.
func decodeIndexed(node *Node, result reflect.Value, depth int) error {
	indexes := make([]int, len(node.Children))
	length := 0
	for i, child := range node.Children {
		index, err := strconv.Atoi(child.Name)
		if err != nil || index < 0 {
			return lineError(child, fmt.Errorf("element name is not an index"))
		}
		if result.Kind() == reflect.Slice {
			if index >= len(node.Children)+MaxIndexGap {
				return lineError(child, fmt.Errorf("element index %d is too far past the %d elements present", index, len(node.Children)))
			}
			length = max(length, index+1)
		}
		indexes[i] = index
	}
	if result.Kind() == reflect.Slice && length > result.Len() {
		grown := reflect.MakeSlice(result.Type(), length, length)
		reflect.Copy(grown, result)
		result.Set(grown)
	}

	elementType := result.Type().Elem()
	for i, child := range node.Children {
		element, err := decode(child, elementType, depth+1)
		if err != nil {
			return err
		}
		if indexes[i] < result.Len() {
			result.Index(indexes[i]).Set(element)
		}
	}
	return nil
}

func decodeDictionary(node *Node, result reflect.Value, depth int) error {
	t := result.Type()
	type entry struct {
		key, value *Node
	}
	entries := map[int]*entry{}
	for _, child := range node.Children {
		var (
			index  int
			err    error
			target **Node
		)
		switch {
		case strings.HasPrefix(child.Name, "key"):
			index, err = strconv.Atoi(strings.TrimPrefix(child.Name, "key"))
		case strings.HasPrefix(child.Name, "value"):
			index, err = strconv.Atoi(strings.TrimPrefix(child.Name, "value"))
		default:
			err = fmt.Errorf("not a key or value line")
		}
		if err != nil {
			return lineError(child, fmt.Errorf("dictionary line %q: %w", child.Name, err))
		}
		if entries[index] == nil {
			entries[index] = &entry{}
		}
		if strings.HasPrefix(child.Name, "key") {
			target = &entries[index].key
		} else {
			target = &entries[index].value
		}
		*target = child
	}

	result.Set(reflect.MakeMap(t))
	indexes := make([]int, 0, len(entries))
	for index := range entries {
		indexes = append(indexes, index)
	}
	slices.Sort(indexes)
	for _, index := range indexes {
		pair := entries[index]
		if pair.key == nil {
			return lineError(pair.value, fmt.Errorf("value%d has no key%d", index, index))
		}
		key, err := decode(pair.key, t.Key(), depth+1)
		if err != nil {
			return err
		}
		entryValue := reflect.New(t.Elem()).Elem()
		if pair.value != nil {
			entryValue, err = decode(pair.value, t.Elem(), depth+1)
			if err != nil {
				return err
			}
		}
		result.SetMapIndex(key, entryValue)
	}
	return nil
}

// decodeRecord matches children to resolved fields by name. Fields
// without a line keep their zero value; unknown lines are ignored.
func decodeRecord(node *Node, result reflect.Value, depth int) error {
	for _, field := range fields.Resolve(result.Type()) {
		child := node.Child(field.Name)
		if child == nil {
			continue
		}
		element, err := decode(child, field.Type, depth+1)
		if err != nil {
			return fmt.Errorf("%s: %w", field.Name, err)
		}
		result.FieldByIndex(field.Index).Set(element)
	}
	return nil
}
