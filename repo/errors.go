// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repo

import "fmt"

// OpenError indicates that a node's backing resource could not be
// acquired: a missing file, an unsupported sub-format, a permission
// failure.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("repo: open %q: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// CloseError indicates that a node's backing resource failed to
// release cleanly. It is treated as non-fatal: the node still
// transitions to closed.
type CloseError struct {
	Path string
	Err  error
}

func (e *CloseError) Error() string {
	return fmt.Sprintf("repo: close %q: %v", e.Path, e.Err)
}

func (e *CloseError) Unwrap() error {
	return e.Err
}

// EnumError indicates that enumerating a node's children failed, for
// example because an open file contains structures the reading
// backend does not support.
type EnumError struct {
	Path string
	Err  error
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("repo: enumerate children of %q: %v", e.Path, e.Err)
}

func (e *EnumError) Unwrap() error {
	return e.Err
}
