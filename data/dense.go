// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package data

import (
	"fmt"
	"reflect"
	"slices"
)

// Dense is a minimal row-major in-memory [Array] implementation over
// a slice of values. Per C / Go conventions, indexes are ordered from
// outer to inner, so the inner-most is right-most.
type Dense[T any] struct {
	shape   []int
	strides []int
	values  []T
}

// NewDense returns a new [Dense] array over the given values with the
// given shape, whose dimension sizes must multiply out to len(values).
func NewDense[T any](values []T, shape ...int) (*Dense[T], error) {
	n := 1
	for _, sz := range shape {
		if sz < 0 {
			return nil, fmt.Errorf("data: negative dimension size %d in shape %v", sz, shape)
		}
		n *= sz
	}
	if n != len(values) {
		return nil, fmt.Errorf("data: shape %v implies %d values, have %d", shape, n, len(values))
	}
	d := &Dense[T]{shape: slices.Clone(shape), values: values}
	d.strides = make([]int, len(shape))
	str := 1
	for i := len(shape) - 1; i >= 0; i-- {
		d.strides[i] = str
		str *= shape[i]
	}
	return d, nil
}

func (d *Dense[T]) Shape() []int {
	return slices.Clone(d.shape)
}

func (d *Dense[T]) NumDims() int {
	return len(d.shape)
}

func (d *Dense[T]) Len() int {
	n := 1
	for _, sz := range d.shape {
		n *= sz
	}
	return n
}

func (d *Dense[T]) Kind() Kind {
	return KindFor(reflect.TypeFor[T]().Kind())
}

func (d *Dense[T]) TypeName() string {
	return reflect.TypeFor[T]().String()
}

// Offset returns the flat offset for the given n-dimensional index,
// which must have exactly one value per dimension, each in range.
// It panics otherwise, like an out-of-range slice index.
func (d *Dense[T]) Offset(i ...int) int {
	if len(i) != len(d.shape) {
		panic(fmt.Sprintf("data: index %v has %d dimensions, array has %d", i, len(i), len(d.shape)))
	}
	off := 0
	for dim, ix := range i {
		if ix < 0 || ix >= d.shape[dim] {
			panic(fmt.Sprintf("data: index %d out of range [0,%d) in dimension %d", ix, d.shape[dim], dim))
		}
		off += ix * d.strides[dim]
	}
	return off
}

func (d *Dense[T]) Value(i ...int) any {
	return d.values[d.Offset(i...)]
}

// At returns the element at the given n-dimensional index as its
// concrete type.
func (d *Dense[T]) At(i ...int) T {
	return d.values[d.Offset(i...)]
}

// Values returns the underlying value slice (not a copy).
func (d *Dense[T]) Values() []T {
	return d.values
}
