// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package data

// Array is a read-only, array-like view over underlying data that
// supports multi-dimensional indexing and shape introspection without
// copying. It can be backed by anything from an in-memory slice to a
// dataset descriptor in an open file; implementations are expected to
// be cheap to query, never retrieving bulk data just to answer shape
// or kind questions.
type Array interface {

	// Shape returns the size of each dimension, ordered from outer to
	// inner (row-major). It is empty for scalars.
	Shape() []int

	// NumDims returns the number of dimensions, which is always
	// len(Shape()).
	NumDims() int

	// Len returns the total number of elements, the product of all
	// shape dimensions (1 for scalars).
	Len() int

	// Kind returns the broad element-kind classification.
	Kind() Kind

	// TypeName returns the name of the concrete element type,
	// e.g., "float64".
	TypeName() string

	// Value returns the element at the given n-dimensional index,
	// which must match the shape.
	Value(i ...int) any
}
