// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repo

import (
	"path/filepath"

	"github.com/scrydata/scry/tree"
)

// FileNode is the fallback node for files of unrecognized format: a
// leaf that verifies the file exists when opened and exposes nothing
// else. Files whose extension or magic number match a registered
// plugin get that plugin's node type instead.
type FileNode struct {
	BaseNode
}

// NewFileNode returns a FileNode for the given path, which must name
// a regular file.
func NewFileNode(path string) (*FileNode, error) {
	if err := statRegularFile(path); err != nil {
		return nil, err
	}
	fn := &FileNode{}
	tree.InitNode(fn)
	fn.Filename = path
	fn.SetName(filepath.Base(path))
	return fn, nil
}

// CanFetch reports that unrecognized files have no children to fetch.
func (fn *FileNode) CanFetch() bool { return false }
