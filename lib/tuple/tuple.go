// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tuple

// Tuple2 is a two-element tuple.
type Tuple2[A, B any] struct {
	Item1 A
	Item2 B
}

// New2 returns a Tuple2 holding the given elements.
func New2[A, B any](item1 A, item2 B) Tuple2[A, B] {
	return Tuple2[A, B]{item1, item2}
}

// TupleArity returns 2.
func (Tuple2[A, B]) TupleArity() int { return 2 }

// Tuple3 is a three-element tuple.
type Tuple3[A, B, C any] struct {
	Item1 A
	Item2 B
	Item3 C
}

// New3 returns a Tuple3 holding the given elements.
func New3[A, B, C any](item1 A, item2 B, item3 C) Tuple3[A, B, C] {
	return Tuple3[A, B, C]{item1, item2, item3}
}

// TupleArity returns 3.
func (Tuple3[A, B, C]) TupleArity() int { return 3 }

// Tuple4 is a four-element tuple.
type Tuple4[A, B, C, D any] struct {
	Item1 A
	Item2 B
	Item3 C
	Item4 D
}

// New4 returns a Tuple4 holding the given elements.
func New4[A, B, C, D any](item1 A, item2 B, item3 C, item4 D) Tuple4[A, B, C, D] {
	return Tuple4[A, B, C, D]{item1, item2, item3, item4}
}

// TupleArity returns 4.
func (Tuple4[A, B, C, D]) TupleArity() int { return 4 }

// Tuple5 is a five-element tuple.
type Tuple5[A, B, C, D, E any] struct {
	Item1 A
	Item2 B
	Item3 C
	Item4 D
	Item5 E
}

// New5 returns a Tuple5 holding the given elements.
func New5[A, B, C, D, E any](item1 A, item2 B, item3 C, item4 D, item5 E) Tuple5[A, B, C, D, E] {
	return Tuple5[A, B, C, D, E]{item1, item2, item3, item4, item5}
}

// TupleArity returns 5.
func (Tuple5[A, B, C, D, E]) TupleArity() int { return 5 }

// Tuple6 is a six-element tuple.
type Tuple6[A, B, C, D, E, F any] struct {
	Item1 A
	Item2 B
	Item3 C
	Item4 D
	Item5 E
	Item6 F
}

// New6 returns a Tuple6 holding the given elements.
func New6[A, B, C, D, E, F any](item1 A, item2 B, item3 C, item4 D, item5 E, item6 F) Tuple6[A, B, C, D, E, F] {
	return Tuple6[A, B, C, D, E, F]{item1, item2, item3, item4, item5, item6}
}

// TupleArity returns 6.
func (Tuple6[A, B, C, D, E, F]) TupleArity() int { return 6 }

// Tuple7 is a seven-element tuple.
type Tuple7[A, B, C, D, E, F, G any] struct {
	Item1 A
	Item2 B
	Item3 C
	Item4 D
	Item5 E
	Item6 F
	Item7 G
}

// New7 returns a Tuple7 holding the given elements.
func New7[A, B, C, D, E, F, G any](item1 A, item2 B, item3 C, item4 D, item5 E, item6 F, item7 G) Tuple7[A, B, C, D, E, F, G] {
	return Tuple7[A, B, C, D, E, F, G]{item1, item2, item3, item4, item5, item6, item7}
}

// TupleArity returns 7.
func (Tuple7[A, B, C, D, E, F, G]) TupleArity() int { return 7 }
