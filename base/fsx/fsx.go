// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsx provides the small set of filesystem helpers used by the
// repository tree.
package fsx

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/scrydata/scry/base/errors"
)

// FileExists checks whether the given path exists as a regular file,
// returning true if so, false if not, and an error if there was an
// error in accessing the file.
func FileExists(filePath string) (bool, error) {
	fileInfo, err := os.Stat(filePath)
	if err == nil {
		return fileInfo.Mode().IsRegular(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// DirExists checks whether the given path exists as a directory,
// with the same return conventions as [FileExists].
func DirExists(path string) (bool, error) {
	fileInfo, err := os.Stat(path)
	if err == nil {
		return fileInfo.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Exists checks whether anything exists at the given path,
// with the same return conventions as [FileExists].
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// HiddenName returns true if the given file name (not a full path)
// is hidden by the dot-prefix convention.
func HiddenName(name string) bool {
	return strings.HasPrefix(name, ".")
}

// DirAndFile returns the final directory and file name parts of
// the given path, e.g., for "/a/b/c/d.txt" it returns "c/d.txt".
func DirAndFile(file string) string {
	dir, fnm := filepath.Split(file)
	return filepath.Join(filepath.Base(dir), fnm)
}

// RelFilePath returns the file path relative to the given root path,
// falling back on [DirAndFile] if it is not relative to the root.
func RelFilePath(file, root string) string {
	rp, err := filepath.Rel(root, file)
	if err == nil && !strings.HasPrefix(rp, "..") {
		return rp
	}
	return DirAndFile(file)
}
