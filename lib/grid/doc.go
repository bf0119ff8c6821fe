// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package grid provides rectangular N-dimensional arrays and the
// bridge between them and jagged nested slices.
//
// A [Grid] stores its cells row-major in one flat slice. Its rank is
// part of its type through a phantom parameter ([Rank1] through
// [Rank4]), so a decoder handed only the type knows how many nesting
// levels to expect:
//
//	board := grid.New[int32, grid.Rank2](3, 4)
//	board.Set(7, 2, 1)
//
// Neither codec encodes a grid directly. [ToJagged] first slices it
// along its outermost dimension into nested slices ([][]int32 for the
// board above) and the codecs encode those with their list rules. On
// decode, [ToRectangular] restores the grid: it infers each dimension
// as the maximum length seen among siblings at that depth, flattens
// every leaf depth-first, and fills the cells row-major from the
// flattened list. Unequal row lengths therefore never fail; cells past
// the end of the flattened list keep the element default.
package grid
