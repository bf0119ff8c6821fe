// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"unicode/utf16"

	"github.com/bureau-foundation/graphcodec/lib/decimal"
	"github.com/bureau-foundation/graphcodec/lib/fields"
	"github.com/bureau-foundation/graphcodec/lib/grid"
	"github.com/bureau-foundation/graphcodec/lib/primitive"
	"github.com/bureau-foundation/graphcodec/lib/value"
)

// MaxDepth bounds the nesting ToTree and FromTree follow.
const MaxDepth = 1000

// ErrTooDeep is returned when a value or tree nests deeper than
// MaxDepth.
var ErrTooDeep = errors.New("codec: value nested too deeply")

// TreeError reports a tree node that does not fit the target type.
type TreeError struct {
	// Path locates the node, for example "Widths[3].value".
	Path string
	Type reflect.Type
	Err  error
}

func (e *TreeError) Error() string {
	path := e.Path
	if path == "" {
		path = "root"
	}
	return fmt.Sprintf("codec: %s: cannot use as %v: %v", path, e.Type, e.Err)
}

func (e *TreeError) Unwrap() error {
	return e.Err
}

// ToTree lowers v into a generic tree.
func ToTree(v reflect.Value) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}
	return toTree(v, 0)
}

func toTree(v reflect.Value, depth int) (any, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("%w (lowering %v)", ErrTooDeep, v.Type())
	}
	kind := value.KindOf(v.Type())
	if value.IsNull(v) {
		return nil, nil
	}

	switch kind {
	case value.KindUnsupported:
		return nil, nil
	case value.KindBool:
		return v.Bool(), nil
	case value.KindInt8, value.KindInt16, value.KindInt32, value.KindInt64:
		return v.Int(), nil
	case value.KindUint8, value.KindUint16, value.KindUint32, value.KindUint64:
		return v.Uint(), nil
	case value.KindFloat32, value.KindFloat64:
		f := v.Float()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return primitive.Format(v), nil
		}
		return f, nil
	case value.KindDecimal:
		return v.Interface().(decimal.Decimal).String(), nil
	case value.KindChar:
		if char := value.Char(v.Uint()); !utf16.IsSurrogate(rune(char)) {
			return char.String(), nil
		}
		return primitive.Format(v), nil
	case value.KindString:
		return v.String(), nil
	case value.KindEnum:
		return primitive.Format(v), nil
	case value.KindPointer:
		return toTree(v.Elem(), depth+1)

	case value.KindTuple:
		items := []any{}
		for i := range v.NumField() {
			if !v.Type().Field(i).IsExported() || value.KindOf(v.Type().Field(i).Type) == value.KindUnsupported {
				continue
			}
			item, err := toTree(v.Field(i), depth+1)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil

	case value.KindRectangular:
		return toTree(grid.ToJagged(v), depth+1)

	case value.KindArray, value.KindList:
		items := make([]any, v.Len())
		for i := range v.Len() {
			item, err := toTree(v.Index(i), depth+1)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return items, nil

	case value.KindDictionary:
		keys := value.SortedKeys(v)
		if value.KindOf(v.Type().Key()) == value.KindString {
			entries := make(map[string]any, len(keys))
			for _, key := range keys {
				entry, err := toTree(v.MapIndex(key), depth+1)
				if err != nil {
					return nil, err
				}
				entries[key.String()] = entry
			}
			return entries, nil
		}
		pairs := make([]any, len(keys))
		for i, key := range keys {
			keyTree, err := toTree(key, depth+1)
			if err != nil {
				return nil, err
			}
			entry, err := toTree(v.MapIndex(key), depth+1)
			if err != nil {
				return nil, err
			}
			pairs[i] = []any{keyTree, entry}
		}
		return pairs, nil

	case value.KindRecord:
		resolved := fields.Resolve(v.Type())
		if len(resolved) == 0 {
			return nil, nil
		}
		record := make(map[string]any, len(resolved))
		for _, field := range resolved {
			if value.KindOf(field.Type) == value.KindUnsupported {
				continue
			}
			entry, err := toTree(v.FieldByIndex(field.Index), depth+1)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", field.Name, err)
			}
			record[field.Name] = entry
		}
		return record, nil
	}
	return nil, nil
}

// FromTree raises tree into a value of type t. Map entries with no
// matching record field are ignored and missing fields keep their
// zero value.
func FromTree(tree any, t reflect.Type) (reflect.Value, error) {
	return fromTree(tree, t, "", 0)
}

func fromTree(tree any, t reflect.Type, path string, depth int) (reflect.Value, error) {
	if depth > MaxDepth {
		return reflect.Value{}, fmt.Errorf("%w (raising %v)", ErrTooDeep, t)
	}
	result := reflect.New(t).Elem()
	kind := value.KindOf(t)
	fail := func(format string, args ...any) (reflect.Value, error) {
		return reflect.Value{}, &TreeError{Path: path, Type: t, Err: fmt.Errorf(format, args...)}
	}

	if kind == value.KindUnsupported {
		return result, nil
	}
	if tree == nil {
		if kind == value.KindPointer || kind.IsComposite() {
			return result, nil
		}
		return fail("null for a primitive")
	}

	switch kind {
	case value.KindPointer:
		element, err := fromTree(tree, t.Elem(), path, depth+1)
		if err != nil {
			return reflect.Value{}, err
		}
		pointer := reflect.New(t.Elem())
		pointer.Elem().Set(element)
		return pointer, nil

	case value.KindString:
		text, ok := tree.(string)
		if !ok {
			return fail("%T is not a string", tree)
		}
		result.SetString(text)
		return result, nil

	case value.KindTuple:
		items, ok := tree.([]any)
		if !ok {
			return fail("%T is not a sequence", tree)
		}
		position := 0
		for i := range t.NumField() {
			structField := t.Field(i)
			if !structField.IsExported() || value.KindOf(structField.Type) == value.KindUnsupported {
				continue
			}
			if position >= len(items) {
				break
			}
			item, err := fromTree(items[position], structField.Type, path+"["+strconv.Itoa(position)+"]", depth+1)
			if err != nil {
				return reflect.Value{}, err
			}
			result.Field(i).Set(item)
			position++
		}
		return result, nil

	case value.KindRectangular:
		shape := value.AsRectangular(result)
		jagged, err := fromTree(tree, grid.JaggedType(shape.ElementType(), shape.Rank()), path, depth+1)
		if err != nil {
			return reflect.Value{}, err
		}
		restored, err := grid.ToRectangular(jagged, t)
		if err != nil {
			return reflect.Value{}, &TreeError{Path: path, Type: t, Err: err}
		}
		return restored, nil

	case value.KindArray, value.KindList:
		items, ok := tree.([]any)
		if !ok {
			return fail("%T is not a sequence", tree)
		}
		if kind == value.KindList {
			result.Set(reflect.MakeSlice(t, len(items), len(items)))
		}
		for i, raw := range items {
			if i >= result.Len() {
				break
			}
			item, err := fromTree(raw, t.Elem(), path+"["+strconv.Itoa(i)+"]", depth+1)
			if err != nil {
				return reflect.Value{}, err
			}
			result.Index(i).Set(item)
		}
		return result, nil

	case value.KindDictionary:
		result.Set(reflect.MakeMap(t))
		switch entries := tree.(type) {
		case map[string]any:
			for rawKey, raw := range entries {
				key, err := fromTree(rawKey, t.Key(), path+"."+rawKey, depth+1)
				if err != nil {
					return reflect.Value{}, err
				}
				entry, err := fromTree(raw, t.Elem(), path+"."+rawKey, depth+1)
				if err != nil {
					return reflect.Value{}, err
				}
				result.SetMapIndex(key, entry)
			}
		case map[any]any:
			for rawKey, raw := range entries {
				keyPath := path + "." + fmt.Sprint(rawKey)
				key, err := fromTree(rawKey, t.Key(), keyPath, depth+1)
				if err != nil {
					return reflect.Value{}, err
				}
				entry, err := fromTree(raw, t.Elem(), keyPath, depth+1)
				if err != nil {
					return reflect.Value{}, err
				}
				result.SetMapIndex(key, entry)
			}
		case []any:
			for i, rawPair := range entries {
				pairPath := path + "[" + strconv.Itoa(i) + "]"
				pair, ok := rawPair.([]any)
				if !ok || len(pair) != 2 {
					return fail("entry %d is not a [key, value] pair", i)
				}
				key, err := fromTree(pair[0], t.Key(), pairPath+".key", depth+1)
				if err != nil {
					return reflect.Value{}, err
				}
				entry, err := fromTree(pair[1], t.Elem(), pairPath+".value", depth+1)
				if err != nil {
					return reflect.Value{}, err
				}
				result.SetMapIndex(key, entry)
			}
		default:
			return fail("%T is not a map or pair sequence", tree)
		}
		return result, nil

	case value.KindRecord:
		record, ok := tree.(map[string]any)
		if !ok {
			return fail("%T is not a map", tree)
		}
		for _, field := range fields.Resolve(t) {
			raw, present := record[field.Name]
			if !present {
				continue
			}
			entry, err := fromTree(raw, field.Type, joinPath(path, field.Name), depth+1)
			if err != nil {
				return reflect.Value{}, err
			}
			result.FieldByIndex(field.Index).Set(entry)
		}
		return result, nil
	}

	text, err := leafText(tree)
	if err != nil {
		return fail("%v", err)
	}
	parsed, err := primitive.Parse(t, text)
	if err != nil {
		return reflect.Value{}, &TreeError{Path: path, Type: t, Err: err}
	}
	return parsed, nil
}

// leafText renders a scalar tree node as text for primitive.Parse.
func leafText(tree any) (string, error) {
	switch leaf := tree.(type) {
	case string:
		return leaf, nil
	case bool:
		return strconv.FormatBool(leaf), nil
	case json.Number:
		return leaf.String(), nil
	case float64:
		return strconv.FormatFloat(leaf, 'g', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(leaf), 'g', -1, 32), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(leaf), nil
	default:
		return "", fmt.Errorf("%T is not a scalar", tree)
	}
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
