// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package findfast implements an optimized bidirectional slice search
// that can save a lot of time when you have a rough idea of where an
// item might be.
package findfast

// FindFunc returns the index of the item in the slice that matches the
// given match function, searching bidirectionally outward from the
// optional starting index (defaulting to the middle, which is a good
// default when nothing is known about the location). Returns -1 if
// not found.
func FindFunc[T any](s []T, match func(e T) bool, startIndex ...int) int {
	n := len(s)
	if n == 0 {
		return -1
	}
	si := n / 2
	if len(startIndex) > 0 && startIndex[0] >= 0 {
		si = min(startIndex[0], n-1)
	}
	for up, dn := si, si-1; up < n || dn >= 0; up, dn = up+1, dn-1 {
		if up < n && match(s[up]) {
			return up
		}
		if dn >= 0 && match(s[dn]) {
			return dn
		}
	}
	return -1
}
