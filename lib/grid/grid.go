// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package grid

import (
	"fmt"
	"reflect"
	"slices"
)

// Rank is the phantom type parameter fixing a grid's dimensionality.
type Rank interface {
	rank() int
}

// Rank1 through Rank4 select one- to four-dimensional grids.
type (
	Rank1 struct{}
	Rank2 struct{}
	Rank3 struct{}
	Rank4 struct{}
)

func (Rank1) rank() int { return 1 }
func (Rank2) rank() int { return 2 }
func (Rank3) rank() int { return 3 }
func (Rank4) rank() int { return 4 }

// Grid is a rectangular array of T with the rank selected by R. The
// zero value has no dimensions and is null to the codecs.
type Grid[T any, R Rank] struct {
	dims  []int
	cells []T
}

// New returns a grid with the given extents, one per dimension, with
// every cell at the zero value. It panics if len(dims) does not match
// the rank, any extent is negative, or the cells exceed MaxCells.
func New[T any, R Rank](dims ...int) *Grid[T, R] {
	grid := &Grid[T, R]{}
	grid.Reshape(dims)
	return grid
}

// Rank returns the number of dimensions.
func (grid *Grid[T, R]) Rank() int {
	var rank R
	return rank.rank()
}

// Dims returns the extent of each dimension, outermost first, or nil
// for the zero value.
func (grid *Grid[T, R]) Dims() []int {
	return slices.Clone(grid.dims)
}

// Len returns the total number of cells.
func (grid *Grid[T, R]) Len() int {
	return len(grid.cells)
}

// Cells returns the cells in row-major order. The slice aliases the
// grid's storage.
func (grid *Grid[T, R]) Cells() []T {
	return grid.cells
}

// At returns the cell at the given index, one coordinate per
// dimension.
func (grid *Grid[T, R]) At(index ...int) T {
	return grid.cells[grid.offset(index)]
}

// Set stores value at the given index.
func (grid *Grid[T, R]) Set(value T, index ...int) {
	grid.cells[grid.offset(index)] = value
}

func (grid *Grid[T, R]) offset(index []int) int {
	if len(index) != len(grid.dims) {
		panic(fmt.Sprintf("grid: %d coordinates for a rank-%d grid", len(index), grid.Rank()))
	}
	flat := 0
	for dimension, coordinate := range index {
		extent := grid.dims[dimension]
		if coordinate < 0 || coordinate >= extent {
			panic(fmt.Sprintf("grid: index %d out of range [0,%d) in dimension %d", coordinate, extent, dimension))
		}
		flat = flat*extent + coordinate
	}
	return flat
}

// ElementType returns the reflect.Type of T.
func (grid *Grid[T, R]) ElementType() reflect.Type {
	return reflect.TypeFor[T]()
}

// Cell returns the settable cell at a row-major flat index.
func (grid *Grid[T, R]) Cell(flat int) reflect.Value {
	return reflect.ValueOf(&grid.cells[flat]).Elem()
}

// Reshape discards the contents and allocates zeroed cells for dims.
// It panics on a negative extent or when the cell count exceeds
// MaxCells; decoders check [CellCount] first.
func (grid *Grid[T, R]) Reshape(dims []int) {
	if len(dims) != grid.Rank() {
		panic(fmt.Sprintf("grid: %d dimensions for a rank-%d grid", len(dims), grid.Rank()))
	}
	total, err := CellCount(dims)
	if err != nil {
		panic(err.Error())
	}
	grid.dims = slices.Clone(dims)
	grid.cells = make([]T, total)
}
