// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fields

import (
	"reflect"
	"slices"
	"testing"
)

type discoveryOrder struct {
	Alpha   int32
	Beta    string
	Gamma   bool
	private int
	Handler func()
	Events  chan int
	Ignored []byte `codec:"-"`
}

type explicitOrder struct {
	Third  int `order:"7"`
	First  int `order:"-1"`
	Second int
	Shared int `order:"7"`
}

type annotated struct {
	Title string `codec:"title" space:"2" comment:"Window title\nshown in the frame"`
	Span  struct {
		Item1 int
		Item2 int
	} `names:"Start|End"`
}

type skippedType struct {
	_     struct{} `codec:"-"`
	Cache map[string]int
}

type base struct {
	ID   int64
	Name string
}

type derived struct {
	base
	Extra float64
}

type withSkippedEmbed struct {
	skippedType
	Kept int
}

func names(fields []Field) []string {
	result := make([]string, len(fields))
	for i, field := range fields {
		result[i] = field.Name
	}
	return result
}

func TestResolveDiscoveryOrder(t *testing.T) {
	got := names(Resolve(reflect.TypeFor[discoveryOrder]()))
	want := []string{"Alpha", "Beta", "Gamma"}
	if !slices.Equal(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
}

func TestResolveExplicitOrder(t *testing.T) {
	resolved := Resolve(reflect.TypeFor[explicitOrder]())
	got := names(resolved)
	// Discovery counter: Third=0, First=1, Second=2, Shared=3. Second
	// keeps its counter value 2; Third and Shared share order 7 and
	// keep discovery order within the group.
	want := []string{"First", "Second", "Third", "Shared"}
	if !slices.Equal(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
	if !resolved[0].Explicit || resolved[1].Explicit {
		t.Error("Explicit flag misreported")
	}
	if resolved[1].Order != 2 {
		t.Errorf("Second.Order = %d, want 2", resolved[1].Order)
	}
}

func TestResolveTextMetadata(t *testing.T) {
	resolved := Resolve(reflect.TypeFor[annotated]())
	if len(resolved) != 2 {
		t.Fatalf("Resolve returned %d fields, want 2", len(resolved))
	}
	title := resolved[0]
	if title.Name != "title" {
		t.Errorf("Name = %q, want title", title.Name)
	}
	if title.Space != 2 {
		t.Errorf("Space = %d, want 2", title.Space)
	}
	if !slices.Equal(title.Comment, []string{"Window title", "shown in the frame"}) {
		t.Errorf("Comment = %q", title.Comment)
	}
	if !slices.Equal(resolved[1].TupleNames, []string{"Start", "End"}) {
		t.Errorf("TupleNames = %q", resolved[1].TupleNames)
	}
}

func TestResolveSkippedType(t *testing.T) {
	resolved := Resolve(reflect.TypeFor[skippedType]())
	if resolved == nil || len(resolved) != 0 {
		t.Errorf("Resolve(skipped) = %v, want empty non-nil list", resolved)
	}
	if got := names(Resolve(reflect.TypeFor[withSkippedEmbed]())); !slices.Equal(got, []string{"Kept"}) {
		t.Errorf("embedded skipped type: Resolve = %v, want [Kept]", got)
	}
}

func TestResolveFlattensEmbedded(t *testing.T) {
	resolved := Resolve(reflect.TypeFor[derived]())
	got := names(resolved)
	want := []string{"ID", "Name", "Extra"}
	if !slices.Equal(got, want) {
		t.Fatalf("Resolve = %v, want %v", got, want)
	}

	value := reflect.ValueOf(derived{base: base{ID: 9, Name: "nine"}, Extra: 1.5})
	if id := value.FieldByIndex(resolved[0].Index).Int(); id != 9 {
		t.Errorf("FieldByIndex(ID) = %d, want 9", id)
	}

	settable := reflect.New(reflect.TypeFor[derived]()).Elem()
	settable.FieldByIndex(resolved[1].Index).SetString("set")
	if settable.Interface().(derived).Name != "set" {
		t.Error("promoted field through unexported embedding should be settable")
	}
}

func TestResolveNonStruct(t *testing.T) {
	if Resolve(reflect.TypeFor[int]()) != nil {
		t.Error("Resolve(int) should be nil")
	}
	if got := names(Resolve(reflect.TypeFor[*derived]())); len(got) != 3 {
		t.Errorf("Resolve(*derived) = %v", got)
	}
}

func TestResolveCached(t *testing.T) {
	first := Resolve(reflect.TypeFor[derived]())
	second := Resolve(reflect.TypeFor[derived]())
	if &first[0] != &second[0] {
		t.Error("Resolve should return the cached slice")
	}
}

type swappedA struct {
	A int32
	B int32
}

type swappedB struct {
	B int32
	A int32
}

type sameShapeDifferentName struct {
	X int32
	Y int32
}

type recursiveNode struct {
	Value    int
	Children []*recursiveNode
}

func TestFingerprint(t *testing.T) {
	first := FingerprintOf(reflect.TypeFor[swappedA]())
	if first != FingerprintOf(reflect.TypeFor[swappedA]()) {
		t.Error("fingerprint not deterministic")
	}
	if first == FingerprintOf(reflect.TypeFor[swappedB]()) {
		t.Error("field order change did not change the fingerprint")
	}
	if first == FingerprintOf(reflect.TypeFor[sameShapeDifferentName]()) {
		t.Error("field rename did not change the fingerprint")
	}
	if len(first.String()) != 64 || len(first.Short()) != 12 {
		t.Errorf("String/Short lengths = %d/%d", len(first.String()), len(first.Short()))
	}
	// Recursive types terminate.
	_ = FingerprintOf(reflect.TypeFor[recursiveNode]())
}

type describedInner struct {
	Width  int32
	Height int32
}

type describedOuter struct {
	Name string `comment:"display name"`
	Size *describedInner
	Node recursiveNode
}

func TestDescribe(t *testing.T) {
	rows := Describe(reflect.TypeFor[describedOuter]())
	var paths []string
	for _, row := range rows {
		paths = append(paths, row.Path)
	}
	want := []string{
		"Name",
		"Size", "Size.Width", "Size.Height",
		"Node", "Node.Value", "Node.Children",
	}
	if !slices.Equal(paths, want) {
		t.Fatalf("Describe paths = %v, want %v", paths, want)
	}
	if rows[0].Comment != "display name" {
		t.Errorf("Comment = %q", rows[0].Comment)
	}
	if rows[2].Depth != 1 || rows[2].Kind != "int32" {
		t.Errorf("Size.Width row = %+v", rows[2])
	}
}
