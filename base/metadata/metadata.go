// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metadata provides a map of named any elements with generic
// support for type-safe Get and nil-safe Set. It is used for the
// attribute maps that carry metadata about repository items.
package metadata

import (
	"fmt"
	"maps"
	"slices"
)

// Data is metadata as a map of named any elements.
// Keys follow a CamelCase naming convention, functioning as optional
// fields, so it is good practice to provide access functions that
// establish standard key names.
type Data map[string]any

func (md *Data) init() {
	if *md == nil {
		*md = make(map[string]any)
	}
}

// Set sets the given key to the given value, ensuring that
// the map is created if not previously.
func (md *Data) Set(key string, value any) {
	md.init()
	(*md)[key] = value
}

// Get gets the metadata value of the given type for the given key.
// It returns an error if the key is not present or the item has a
// different type.
func Get[T any](md Data, key string) (T, error) {
	var z T
	x, ok := md[key]
	if !ok {
		return z, fmt.Errorf("key %q not found in metadata", key)
	}
	v, ok := x.(T)
	if !ok {
		return z, fmt.Errorf("key %q has a different type than expected %T: is %T", key, z, x)
	}
	return v, nil
}

// Keys returns a sorted list of the keys in the map.
func (md Data) Keys() []string {
	return slices.Sorted(maps.Keys(md))
}

// Copy does a shallow copy of metadata from the source.
// Any pointer-based values will still point to the same underlying
// data as the source, but the two maps remain distinct.
func (md *Data) Copy(src Data) {
	if src == nil {
		return
	}
	md.init()
	maps.Copy(*md, src)
}
