// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tuple provides positional tuple types of arity two through
// seven.
//
// A tuple is a struct whose exported fields Item1..ItemN are its
// elements. The codecs recognize tuples through the TupleArity method
// and treat them differently from records: the binary form is the
// element blocks in order, and the text form names elements Item1,
// Item2, ... (or custom names supplied with a names struct tag). On
// decode the element names in text are ignored and only position
// matters.
package tuple
