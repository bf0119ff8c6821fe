// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package enum

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/exp/constraints"
)

// FlagSeparator joins the member names of a combined flags value.
const FlagSeparator = " | "

// ErrUnknownMember is returned by Parse when a token is neither a
// member name nor an integer.
var ErrUnknownMember = errors.New("enum: unknown member")

// Member names one value of an enumerated type.
type Member[T constraints.Integer] struct {
	Name  string
	Value T
}

// Info is the registered description of one enumerated type. Info
// values are immutable after registration.
type Info struct {
	// Type is the named integer type.
	Type reflect.Type

	// Flags is true when values combine via bitwise OR.
	Flags bool

	// members in declaration order.
	members []member
}

type member struct {
	name string
	bits uint64
}

var registry sync.Map // reflect.Type → *Info

// Register records the members of the enumerated type T. A second
// registration of the same type returns the first Info unchanged.
//
//	type Anchor uint8
//
//	const (
//	    AnchorLeft Anchor = 1 << iota
//	    AnchorRight
//	    AnchorTop
//	)
//
//	var _ = enum.Register(true,
//	    enum.Member[Anchor]{"Left", AnchorLeft},
//	    enum.Member[Anchor]{"Right", AnchorRight},
//	    enum.Member[Anchor]{"Top", AnchorTop},
//	)
func Register[T constraints.Integer](flags bool, members ...Member[T]) *Info {
	enumType := reflect.TypeFor[T]()
	info := &Info{Type: enumType, Flags: flags}
	for _, declared := range members {
		info.members = append(info.members, member{
			name: declared.Name,
			bits: bitsOf(reflect.ValueOf(declared.Value)),
		})
	}
	actual, _ := registry.LoadOrStore(enumType, info)
	return actual.(*Info)
}

// Lookup returns the registration for t, or nil when t is not a
// registered enumerated type.
func Lookup(t reflect.Type) *Info {
	if t == nil {
		return nil
	}
	info, ok := registry.Load(t)
	if !ok {
		return nil
	}
	return info.(*Info)
}

// Names returns the member names in declaration order.
func (info *Info) Names() []string {
	names := make([]string, len(info.members))
	for i, declared := range info.members {
		names[i] = declared.name
	}
	return names
}

// Underlying returns the unnamed integer type with the same kind as
// the enumerated type; the binary codec encodes enums as this type.
func (info *Info) Underlying() reflect.Type {
	return underlyingTypes[info.Type.Kind()]
}

var underlyingTypes = map[reflect.Kind]reflect.Type{
	reflect.Int:    reflect.TypeFor[int](),
	reflect.Int8:   reflect.TypeFor[int8](),
	reflect.Int16:  reflect.TypeFor[int16](),
	reflect.Int32:  reflect.TypeFor[int32](),
	reflect.Int64:  reflect.TypeFor[int64](),
	reflect.Uint:   reflect.TypeFor[uint](),
	reflect.Uint8:  reflect.TypeFor[uint8](),
	reflect.Uint16: reflect.TypeFor[uint16](),
	reflect.Uint32: reflect.TypeFor[uint32](),
	reflect.Uint64: reflect.TypeFor[uint64](),
}

// Format renders value by member name. Non-flags values without a
// matching member, and flags values that do not decompose exactly
// into named members, render as the raw integer.
func (info *Info) Format(value reflect.Value) string {
	bits := bitsOf(value)

	if !info.Flags || bits == 0 {
		for _, declared := range info.members {
			if declared.bits == bits {
				return declared.name
			}
		}
		return formatRaw(value)
	}

	// Greedy decomposition from the highest member value down, so a
	// composite member ("All") is preferred over its parts.
	candidates := make([]member, 0, len(info.members))
	for _, declared := range info.members {
		if declared.bits != 0 {
			candidates = append(candidates, declared)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].bits > candidates[j].bits
	})

	remaining := bits
	var matched []member
	for _, candidate := range candidates {
		if remaining&candidate.bits == candidate.bits && remaining != 0 {
			matched = append(matched, candidate)
			remaining &^= candidate.bits
		}
	}
	if remaining != 0 || len(matched) == 0 {
		return formatRaw(value)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].bits < matched[j].bits
	})
	names := make([]string, len(matched))
	for i, flag := range matched {
		names[i] = flag.name
	}
	return strings.Join(names, FlagSeparator)
}

// Parse converts text back to a value of the enumerated type. Tokens
// separated by "|" (or ",") are member names, matched exactly first
// and case-insensitively second, or integers; their bits are ORed
// together. Empty text yields the zero value.
func (info *Info) Parse(text string) (reflect.Value, error) {
	result := reflect.New(info.Type).Elem()
	text = strings.TrimSpace(text)
	if text == "" {
		return result, nil
	}

	var bits uint64
	for _, token := range strings.FieldsFunc(text, func(r rune) bool { return r == '|' || r == ',' }) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		tokenBits, err := info.parseToken(token)
		if err != nil {
			return reflect.Value{}, err
		}
		bits |= tokenBits
	}

	setBits(result, bits)
	return result, nil
}

func (info *Info) parseToken(token string) (uint64, error) {
	for _, declared := range info.members {
		if declared.name == token {
			return declared.bits, nil
		}
	}
	for _, declared := range info.members {
		if strings.EqualFold(declared.name, token) {
			return declared.bits, nil
		}
	}
	if signed, err := strconv.ParseInt(token, 10, 64); err == nil {
		return uint64(signed), nil
	}
	if unsigned, err := strconv.ParseUint(token, 10, 64); err == nil {
		return unsigned, nil
	}
	return 0, fmt.Errorf("%w %q for %s", ErrUnknownMember, token, info.Type)
}

// bitsOf returns the value's bit pattern truncated to its type width.
func bitsOf(value reflect.Value) uint64 {
	width := value.Type().Bits()
	var bits uint64
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		bits = uint64(value.Int())
	default:
		bits = value.Uint()
	}
	if width < 64 {
		bits &= (uint64(1) << width) - 1
	}
	return bits
}

func setBits(value reflect.Value, bits uint64) {
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// Sign-extend from the type width so that a raw bit pattern
		// like 0xFF becomes -1 for an int8 enum.
		width := value.Type().Bits()
		shift := 64 - width
		value.SetInt(int64(bits<<shift) >> shift)
	default:
		value.SetUint(bits)
	}
}

func formatRaw(value reflect.Value) string {
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(value.Int(), 10)
	default:
		return strconv.FormatUint(value.Uint(), 10)
	}
}
