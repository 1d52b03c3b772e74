// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package data defines the opaque array-like capability that
// repository items expose for their underlying data: shape, element
// kind, and indexing, without copying anything. Concrete numerical
// backends live outside this module; [Dense] is a minimal in-memory
// implementation for parsed and synthetic data.
package data

import "reflect"

// Kind classifies the element type of an array-like view, mirroring
// the broad kind categories of numerical array libraries.
type Kind int32

const (
	// Unknown is an unclassified element kind.
	Unknown Kind = iota

	// Bool is a boolean element kind.
	Bool

	// Int is a signed integer element kind.
	Int

	// Uint is an unsigned integer element kind.
	Uint

	// Float is a floating-point element kind.
	Float

	// Complex is a complex floating-point element kind.
	Complex

	// String is a string element kind.
	String

	// Object is an arbitrary (boxed) element kind.
	Object
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Float:
		return "float"
	case Complex:
		return "complex"
	case String:
		return "string"
	case Object:
		return "object"
	}
	return "unknown"
}

// IsReal returns true if the kind represents real numbers
// (signed integer, unsigned integer, or floating point).
func (k Kind) IsReal() bool {
	return k == Int || k == Uint || k == Float
}

// KindFor returns the [Kind] corresponding to the given
// [reflect.Kind].
func KindFor(rk reflect.Kind) Kind {
	switch {
	case rk == reflect.Bool:
		return Bool
	case rk >= reflect.Int && rk <= reflect.Int64:
		return Int
	case rk >= reflect.Uint && rk <= reflect.Uintptr:
		return Uint
	case rk == reflect.Float32 || rk == reflect.Float64:
		return Float
	case rk == reflect.Complex64 || rk == reflect.Complex128:
		return Complex
	case rk == reflect.String:
		return String
	}
	return Object
}
