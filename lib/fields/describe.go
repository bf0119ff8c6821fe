// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fields

import (
	"reflect"
	"strings"

	"github.com/bureau-foundation/graphcodec/lib/value"
)

// Description is one row of a flattened field layout.
type Description struct {
	// Path is the dotted field path from the root record, e.g.
	// "Window.Size.Width".
	Path string `json:"path"`

	// Depth is the nesting depth of the field (0 for root fields).
	Depth int `json:"depth"`

	Type     string `json:"type"`
	Kind     string `json:"kind"`
	Order    int    `json:"order"`
	Explicit bool   `json:"explicit,omitempty"`
	Space    int    `json:"space,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

// Describe flattens the resolved layout of t, descending into fields
// whose type (after pointer indirection) is itself a record. Rows
// appear in encode order. A recursive type is described once; the
// recurring field is listed without its children.
func Describe(t reflect.Type) []Description {
	var rows []Description
	describe(t, "", 0, &rows, map[reflect.Type]bool{})
	return rows
}

func describe(t reflect.Type, prefix string, depth int, rows *[]Description, visiting map[reflect.Type]bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	visiting[t] = true
	defer delete(visiting, t)

	for _, field := range Resolve(t) {
		path := field.Name
		if prefix != "" {
			path = prefix + "." + field.Name
		}
		*rows = append(*rows, Description{
			Path:     path,
			Depth:    depth,
			Type:     field.Type.String(),
			Kind:     value.KindOf(field.Type).String(),
			Order:    field.Order,
			Explicit: field.Explicit,
			Space:    field.Space,
			Comment:  strings.Join(field.Comment, " / "),
		})

		nested := field.Type
		for nested.Kind() == reflect.Pointer {
			nested = nested.Elem()
		}
		if value.KindOf(nested) == value.KindRecord && !visiting[nested] {
			describe(nested, path, depth+1, rows, visiting)
		}
	}
}
