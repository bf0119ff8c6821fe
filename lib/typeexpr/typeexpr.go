// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package typeexpr

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/bureau-foundation/graphcodec/lib/decimal"
	"github.com/bureau-foundation/graphcodec/lib/suggest"
	"github.com/bureau-foundation/graphcodec/lib/value"
)

// MaxArrayLength bounds [N]T.
const MaxArrayLength = 1 << 20

var (
	// ErrSyntax is returned for malformed expressions.
	ErrSyntax = errors.New("typeexpr: syntax error")

	// ErrUnknownType is returned for identifiers that are neither
	// built in nor aliased.
	ErrUnknownType = errors.New("typeexpr: unknown type")

	// ErrAliasCycle is returned when an alias refers to itself.
	ErrAliasCycle = errors.New("typeexpr: alias cycle")
)

var builtins = map[string]reflect.Type{
	"bool":    reflect.TypeFor[bool](),
	"int8":    reflect.TypeFor[int8](),
	"int16":   reflect.TypeFor[int16](),
	"int32":   reflect.TypeFor[int32](),
	"rune":    reflect.TypeFor[int32](),
	"int64":   reflect.TypeFor[int64](),
	"int":     reflect.TypeFor[int](),
	"uint8":   reflect.TypeFor[uint8](),
	"byte":    reflect.TypeFor[uint8](),
	"uint16":  reflect.TypeFor[uint16](),
	"uint32":  reflect.TypeFor[uint32](),
	"uint64":  reflect.TypeFor[uint64](),
	"uint":    reflect.TypeFor[uint](),
	"float32": reflect.TypeFor[float32](),
	"float64": reflect.TypeFor[float64](),
	"string":  reflect.TypeFor[string](),
	"char":    reflect.TypeFor[value.Char](),
	"decimal": reflect.TypeFor[decimal.Decimal](),
}

// Builtins returns the built-in type names, sorted.
func Builtins() []string {
	return slices.Sorted(maps.Keys(builtins))
}

// Parse builds the type described by expression. aliases maps extra
// identifiers to expressions and may be nil.
func Parse(expression string, aliases map[string]string) (reflect.Type, error) {
	p := &parser{aliases: aliases}
	return p.parseExpression(expression)
}

// MustParse is Parse for expressions known to be valid. It panics on
// error.
func MustParse(expression string) reflect.Type {
	t, err := Parse(expression, nil)
	if err != nil {
		panic(err)
	}
	return t
}

// Format renders t in the expression language when it can be
// expressed, and as Go syntax otherwise.
func Format(t reflect.Type) string {
	for name, builtin := range builtins {
		if t == builtin && name != "rune" && name != "byte" {
			return name
		}
	}
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + Format(t.Elem())
	case reflect.Slice:
		return "[]" + Format(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + Format(t.Elem())
	case reflect.Map:
		return "map[" + Format(t.Key()) + "]" + Format(t.Elem())
	case reflect.Struct:
		if t.Name() != "" {
			return t.String()
		}
		parts := make([]string, t.NumField())
		for i := range t.NumField() {
			field := t.Field(i)
			parts[i] = field.Name + " " + Format(field.Type)
			if field.Tag != "" {
				parts[i] += " `" + string(field.Tag) + "`"
			}
		}
		return "struct{" + strings.Join(parts, "; ") + "}"
	}
	return t.String()
}

type parser struct {
	aliases map[string]string

	// resolving holds the aliases being expanded, outermost first.
	resolving []string
}

func (p *parser) parseExpression(expression string) (reflect.Type, error) {
	tokens, err := tokenize(expression)
	if err != nil {
		return nil, err
	}
	stream := &tokenStream{source: expression, tokens: tokens}
	t, err := p.parseType(stream)
	if err != nil {
		return nil, err
	}
	if next := stream.peek(); next.kind != tokenEnd {
		return nil, stream.errorf(next, "unexpected %s after type", next)
	}
	return t, nil
}

func (p *parser) parseType(stream *tokenStream) (reflect.Type, error) {
	current := stream.next()
	switch {
	case current.is("*"):
		element, err := p.parseType(stream)
		if err != nil {
			return nil, err
		}
		return reflect.PointerTo(element), nil

	case current.is("["):
		if stream.peek().is("]") {
			stream.next()
			element, err := p.parseType(stream)
			if err != nil {
				return nil, err
			}
			return reflect.SliceOf(element), nil
		}
		lengthToken := stream.next()
		length, err := strconv.Atoi(lengthToken.text)
		if lengthToken.kind != tokenNumber || err != nil || length > MaxArrayLength {
			return nil, stream.errorf(lengthToken, "array length must be an integer in [0, %d], got %s", MaxArrayLength, lengthToken)
		}
		if err := stream.expect("]"); err != nil {
			return nil, err
		}
		element, err := p.parseType(stream)
		if err != nil {
			return nil, err
		}
		return reflect.ArrayOf(length, element), nil

	case current.is("("):
		return p.parseTuple(stream)

	case current.kind == tokenIdentifier && current.text == "map":
		if err := stream.expect("["); err != nil {
			return nil, err
		}
		keyStart := stream.peek()
		key, err := p.parseType(stream)
		if err != nil {
			return nil, err
		}
		if !key.Comparable() {
			return nil, stream.errorf(keyStart, "map key type %s is not comparable", Format(key))
		}
		if err := stream.expect("]"); err != nil {
			return nil, err
		}
		element, err := p.parseType(stream)
		if err != nil {
			return nil, err
		}
		return reflect.MapOf(key, element), nil

	case current.kind == tokenIdentifier && current.text == "struct":
		return p.parseStruct(stream)

	case current.kind == tokenIdentifier:
		return p.resolve(stream, current)

	case current.kind == tokenEnd:
		return nil, stream.errorf(current, "expected a type, got end of input")
	default:
		return nil, stream.errorf(current, "expected a type, got %s", current)
	}
}

func (p *parser) parseTuple(stream *tokenStream) (reflect.Type, error) {
	var elements []reflect.StructField
	for {
		element, err := p.parseType(stream)
		if err != nil {
			return nil, err
		}
		elements = append(elements, reflect.StructField{
			Name: "Item" + strconv.Itoa(len(elements)+1),
			Type: element,
		})
		separator := stream.next()
		if separator.is(")") {
			break
		}
		if !separator.is(",") {
			return nil, stream.errorf(separator, "expected \",\" or \")\" in tuple, got %s", separator)
		}
	}
	if len(elements) < 2 {
		return nil, stream.errorf(stream.peek(), "a tuple needs at least two elements")
	}
	return reflect.StructOf(elements), nil
}

func (p *parser) parseStruct(stream *tokenStream) (reflect.Type, error) {
	if err := stream.expect("{"); err != nil {
		return nil, err
	}
	var structFields []reflect.StructField
	seen := map[string]bool{}
	for {
		current := stream.next()
		if current.is("}") {
			break
		}
		if current.is(";") || current.is(",") {
			continue
		}
		if current.kind != tokenIdentifier {
			return nil, stream.errorf(current, "expected a field name, got %s", current)
		}
		if !unicode.IsUpper([]rune(current.text)[0]) {
			return nil, stream.errorf(current, "field %s must be exported (start with an upper-case letter)", current.text)
		}
		if seen[current.text] {
			return nil, stream.errorf(current, "duplicate field %s", current.text)
		}
		seen[current.text] = true

		fieldType, err := p.parseType(stream)
		if err != nil {
			return nil, err
		}
		structField := reflect.StructField{Name: current.text, Type: fieldType}
		if stream.peek().kind == tokenTag {
			structField.Tag = reflect.StructTag(stream.next().text)
		}
		structFields = append(structFields, structField)
	}
	return reflect.StructOf(structFields), nil
}

func (p *parser) resolve(stream *tokenStream, name token) (reflect.Type, error) {
	if builtin, ok := builtins[name.text]; ok {
		return builtin, nil
	}
	expression, ok := p.aliases[name.text]
	if !ok {
		candidates := append(Builtins(), slices.Sorted(maps.Keys(p.aliases))...)
		if suggestion := suggest.Closest(name.text, candidates); suggestion != "" {
			return nil, fmt.Errorf("%w %q at offset %d (did you mean %q?)", ErrUnknownType, name.text, name.offset, suggestion)
		}
		return nil, fmt.Errorf("%w %q at offset %d", ErrUnknownType, name.text, name.offset)
	}
	if slices.Contains(p.resolving, name.text) {
		return nil, fmt.Errorf("%w: %s", ErrAliasCycle, strings.Join(append(p.resolving, name.text), " → "))
	}
	p.resolving = append(p.resolving, name.text)
	defer func() { p.resolving = p.resolving[:len(p.resolving)-1] }()

	t, err := p.parseExpression(expression)
	if err != nil {
		return nil, fmt.Errorf("alias %s: %w", name.text, err)
	}
	return t, nil
}
