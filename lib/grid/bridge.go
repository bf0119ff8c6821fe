// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package grid

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"

	"github.com/bureau-foundation/graphcodec/lib/value"
)

// JaggedType returns the nested slice type with rank levels over
// element: []T for rank 1, [][]T for rank 2, and so on.
func JaggedType(element reflect.Type, rank int) reflect.Type {
	jagged := element
	for range rank {
		jagged = reflect.SliceOf(jagged)
	}
	return jagged
}

// ToJagged converts the rectangular array held in array into nested
// slices, slicing along the outermost dimension until rank 1. A null
// array yields a nil slice of the jagged type.
func ToJagged(array reflect.Value) reflect.Value {
	rectangular := value.AsRectangular(array)
	jaggedType := JaggedType(rectangular.ElementType(), rectangular.Rank())
	dims := rectangular.Dims()
	if dims == nil {
		return reflect.Zero(jaggedType)
	}
	flat := 0
	return slice(rectangular, jaggedType, dims, &flat)
}

func slice(rectangular value.RectangularArray, jaggedType reflect.Type, dims []int, flat *int) reflect.Value {
	extent := dims[0]
	result := reflect.MakeSlice(jaggedType, extent, extent)
	for i := range extent {
		if len(dims) == 1 {
			result.Index(i).Set(rectangular.Cell(*flat))
			*flat++
		} else {
			result.Index(i).Set(slice(rectangular, jaggedType.Elem(), dims[1:], flat))
		}
	}
	return result
}

// MaxCells bounds the cells a rectangular array restored from nested
// slices may hold. Padding ragged input up to its bounding box can
// ask for far more cells than the input carries.
const MaxCells = 1 << 26

// ErrTooLarge is returned when the inferred dimensions multiply out
// past MaxCells.
var ErrTooLarge = errors.New("grid: dimensions exceed the cell limit")

// CellCount returns the product of dims, or an error wrapping
// ErrTooLarge if the product overflows or exceeds MaxCells.
func CellCount(dims []int) (int, error) {
	for _, extent := range dims {
		if extent < 0 {
			return 0, fmt.Errorf("grid: negative extent %d", extent)
		}
	}
	if slices.Contains(dims, 0) {
		return 0, nil
	}
	total := 1
	for _, extent := range dims {
		if total > math.MaxInt/extent || total*extent > MaxCells {
			return 0, fmt.Errorf("%w: %v holds more than %d cells", ErrTooLarge, dims, MaxCells)
		}
		total *= extent
	}
	return total, nil
}

// ToRectangular converts nested slices back into a rectangular array
// of the target type. Dimensions are inferred by [InferDims], leaves
// are flattened depth-first, and cells are filled row-major from the
// flattened list; cells beyond its end keep the element default. A nil
// jagged value yields the zero (null) target. Dimensions whose product
// exceeds MaxCells are rejected before anything is allocated.
func ToRectangular(jagged reflect.Value, target reflect.Type) (reflect.Value, error) {
	result := reflect.New(target).Elem()
	if !jagged.IsValid() || jagged.IsNil() {
		return result, nil
	}
	rectangular := value.AsRectangular(result)
	rank := rectangular.Rank()
	dims := InferDims(jagged, rank)
	if _, err := CellCount(dims); err != nil {
		return reflect.Value{}, err
	}
	rectangular.Reshape(dims)

	var leaves []reflect.Value
	flatten(jagged, rank, &leaves)
	for i, leaf := range leaves {
		rectangular.Cell(i).Set(leaf)
	}
	return result, nil
}

// InferDims walks jagged depth-first and returns, for each of the
// rank levels, the maximum length seen among siblings at that depth.
// An empty level contributes a zero extent to every deeper level.
func InferDims(jagged reflect.Value, rank int) []int {
	dims := make([]int, rank)
	inferDims(jagged, 0, dims)
	return dims
}

func inferDims(level reflect.Value, depth int, dims []int) {
	length := level.Len()
	dims[depth] = max(dims[depth], length)
	if depth+1 == len(dims) {
		return
	}
	for i := range length {
		inferDims(level.Index(i), depth+1, dims)
	}
}

func flatten(level reflect.Value, remaining int, leaves *[]reflect.Value) {
	for i := range level.Len() {
		if remaining == 1 {
			*leaves = append(*leaves, level.Index(i))
		} else {
			flatten(level.Index(i), remaining-1, leaves)
		}
	}
}

// Jagged returns the nested-slice form of grid as an any holding
// []T, [][]T, ... according to the rank.
func Jagged[T any, R Rank](grid *Grid[T, R]) any {
	return ToJagged(reflect.ValueOf(grid).Elem()).Interface()
}

// FromJagged builds a grid from nested slices of T whose depth equals
// the rank of R.
func FromJagged[T any, R Rank](jagged any) (*Grid[T, R], error) {
	target := reflect.TypeFor[Grid[T, R]]()
	var rank R
	want := JaggedType(reflect.TypeFor[T](), rank.rank())
	source := reflect.ValueOf(jagged)
	if !source.IsValid() || source.Type() != want {
		return nil, fmt.Errorf("grid: jagged value of type %T, want %v", jagged, want)
	}
	restored, err := ToRectangular(source, target)
	if err != nil {
		return nil, err
	}
	result := restored.Interface().(Grid[T, R])
	return &result, nil
}
