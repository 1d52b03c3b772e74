// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package data

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDense2D(t *testing.T) {
	d, err := NewDense([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, d.Shape())
	assert.Equal(t, 2, d.NumDims())
	assert.Equal(t, 6, d.Len())
	assert.Equal(t, Float, d.Kind())
	assert.Equal(t, "float64", d.TypeName())
	assert.Equal(t, 6.0, d.At(1, 2))
	assert.Equal(t, 4.0, d.Value(1, 0))
}

func TestDense1D(t *testing.T) {
	d, err := NewDense([]string{"a", "b"}, 2)
	require.NoError(t, err)
	assert.Equal(t, String, d.Kind())
	assert.Equal(t, "b", d.At(1))
	assert.Equal(t, 1, d.NumDims())
	assert.Equal(t, len(d.Shape()), d.NumDims())
}

func TestDenseIndexValidation(t *testing.T) {
	d, err := NewDense([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)

	// wrong arity must not silently read the wrong element
	assert.Panics(t, func() { d.Value(0) })
	assert.Panics(t, func() { d.Value(0, 1, 2) })
	assert.Panics(t, func() { d.Value(0, 3) })
	assert.Panics(t, func() { d.Value(-1, 0) })
	assert.Panics(t, func() { d.At(2, 0) })
	assert.NotPanics(t, func() { d.Value(1, 2) })
}

func TestDenseScalar(t *testing.T) {
	d, err := NewDense([]float64{3.14})
	require.NoError(t, err)
	assert.Equal(t, 0, d.NumDims())
	assert.Equal(t, 1, d.Len())
	assert.Equal(t, 3.14, d.Value())
	assert.Panics(t, func() { d.Value(0) })
}

func TestDenseShapeMismatch(t *testing.T) {
	_, err := NewDense([]int{1, 2, 3}, 2, 2)
	assert.Error(t, err)
}

func TestDenseShapeIsolation(t *testing.T) {
	d, err := NewDense([]int{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	sh := d.Shape()
	sh[0] = 99
	assert.Equal(t, []int{2, 2}, d.Shape())
}

func TestKindFor(t *testing.T) {
	assert.Equal(t, Bool, KindFor(reflect.Bool))
	assert.Equal(t, Int, KindFor(reflect.Int32))
	assert.Equal(t, Uint, KindFor(reflect.Uint8))
	assert.Equal(t, Float, KindFor(reflect.Float32))
	assert.Equal(t, Complex, KindFor(reflect.Complex128))
	assert.Equal(t, String, KindFor(reflect.String))
	assert.Equal(t, Object, KindFor(reflect.Struct))
}

func TestKindIsReal(t *testing.T) {
	assert.True(t, Int.IsReal())
	assert.True(t, Uint.IsReal())
	assert.True(t, Float.IsReal())
	assert.False(t, Bool.IsReal())
	assert.False(t, Complex.IsReal())
	assert.False(t, String.IsReal())
	assert.False(t, Unknown.IsReal())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "float", Float.String())
	assert.Equal(t, "unknown", Unknown.String())
}
