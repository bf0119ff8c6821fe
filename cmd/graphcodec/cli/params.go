// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// FlagsFromParams returns a flag set named name whose flags write into
// the tagged fields of params, a pointer to a struct. It panics when
// params cannot be bound, which is a bug in the command definition.
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers one flag on flagSet for every tagged field of
// params, a pointer to a struct:
//
//	type decodeParams struct {
//	    Type  string `flag:"type,t" desc:"type expression"`
//	    Depth int    `flag:"depth" desc:"nesting limit" default:"-1"`
//	}
//
// The flag tag holds the long name and an optional one-letter
// shorthand after a comma; untagged fields are not flags. desc is the
// help text. default is parsed as the field's type and replaces the
// zero value. Fields may be string, bool, int or []string (default
// split on commas). Embedded structs are bound in place, so parameter
// groups shared between commands compose by embedding.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	pointer := reflect.ValueOf(params)
	if pointer.Kind() != reflect.Pointer || pointer.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStruct(pointer.Elem(), flagSet)
}

// flagSpec is the parsed tag set of one field.
type flagSpec struct {
	name, shorthand string
	usage           string
	fallback        string
}

func bindStruct(structValue reflect.Value, flagSet *pflag.FlagSet) error {
	for _, field := range reflect.VisibleFields(structValue.Type()) {
		if len(field.Index) != 1 {
			// Promoted fields are reached through their embedding.
			continue
		}
		fieldValue := structValue.FieldByIndex(field.Index)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if !field.IsExported() {
				return fmt.Errorf("embedded %s: type must be exported to bind its fields", field.Name)
			}
			if err := bindStruct(fieldValue, flagSet); err != nil {
				return fmt.Errorf("embedded %s: %w", field.Name, err)
			}
			continue
		}

		tag, tagged := field.Tag.Lookup("flag")
		if !tagged || tag == "" {
			continue
		}
		if !field.IsExported() {
			return fmt.Errorf("field %s: unexported fields cannot be flags", field.Name)
		}
		spec := flagSpec{
			usage:    field.Tag.Get("desc"),
			fallback: field.Tag.Get("default"),
		}
		spec.name, spec.shorthand, _ = strings.Cut(tag, ",")

		if err := spec.bind(fieldValue.Addr().Interface(), flagSet); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

// bind registers the flag for target, a pointer to the field.
func (spec flagSpec) bind(target any, flagSet *pflag.FlagSet) error {
	switch pointer := target.(type) {
	case *string:
		flagSet.StringVarP(pointer, spec.name, spec.shorthand, spec.fallback, spec.usage)

	case *bool:
		fallback, err := parseDefault(spec, strconv.ParseBool)
		if err != nil {
			return err
		}
		flagSet.BoolVarP(pointer, spec.name, spec.shorthand, fallback, spec.usage)

	case *int:
		fallback, err := parseDefault(spec, strconv.Atoi)
		if err != nil {
			return err
		}
		flagSet.IntVarP(pointer, spec.name, spec.shorthand, fallback, spec.usage)

	case *[]string:
		var fallback []string
		if spec.fallback != "" {
			fallback = strings.Split(spec.fallback, ",")
		}
		flagSet.StringSliceVarP(pointer, spec.name, spec.shorthand, fallback, spec.usage)

	default:
		return fmt.Errorf("flag --%s: unsupported field type %T", spec.name, target)
	}
	return nil
}

// parseDefault parses the default tag, or returns the zero value when
// there is none.
func parseDefault[T any](spec flagSpec, parse func(string) (T, error)) (T, error) {
	var zero T
	if spec.fallback == "" {
		return zero, nil
	}
	parsed, err := parse(spec.fallback)
	if err != nil {
		return zero, fmt.Errorf("default for --%s: %w", spec.name, err)
	}
	return parsed, nil
}
