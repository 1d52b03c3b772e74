// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repo

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/scrydata/scry/base/errors"
	"github.com/scrydata/scry/base/fsx"
	"github.com/scrydata/scry/tree"
)

// DirNode represents a filesystem directory. Its children are the
// directory's entries, fetched lazily: subdirectories first, then
// files, with dot-hidden entries excluded. Files are routed through
// the repository's format dispatcher so recognized formats get their
// plugin's node type.
type DirNode struct {
	BaseNode
}

// NewDirNode returns a DirNode for the given path, which must name a
// directory. An empty path is allowed and yields a detached virtual
// directory.
func NewDirNode(path string) (*DirNode, error) {
	if path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%q is not a directory: %w", path, fs.ErrInvalid)
		}
	}
	dn := &DirNode{}
	tree.InitNode(dn)
	dn.Filename = path
	if path != "" {
		dn.SetName(filepath.Base(path))
	}
	return dn, nil
}

// OpenResources verifies the directory still exists and registers it
// with the repository's filesystem watcher. A watch failure is logged
// but does not fail the open.
func (dn *DirNode) OpenResources() error {
	if dn.Filename == "" {
		return nil
	}
	info, err := os.Stat(dn.Filename)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory: %w", dn.Filename, fs.ErrInvalid)
	}
	if dn.Repo != nil {
		errors.Log(dn.Repo.WatchPath(dn.Filename))
	}
	return nil
}

// CloseResources unregisters the directory from the filesystem
// watcher.
func (dn *DirNode) CloseResources() error {
	if dn.Filename != "" && dn.Repo != nil {
		dn.Repo.UnwatchPath(dn.Filename)
	}
	return nil
}

// FetchMembers lists the directory, returning child nodes for the
// visible subdirectories followed by the visible files. Entries that
// are neither directories nor regular files are skipped.
func (dn *DirNode) FetchMembers() ([]Node, error) {
	ents, err := os.ReadDir(dn.Filename)
	if err != nil {
		return nil, err
	}
	var dirs, files []Node
	for _, ent := range ents {
		if fsx.HiddenName(ent.Name()) {
			continue
		}
		path := filepath.Join(dn.Filename, ent.Name())
		if ent.IsDir() {
			sub, err := NewDirNode(path)
			if err != nil {
				errors.Log(err)
				continue
			}
			dirs = append(dirs, sub)
			continue
		}
		if !ent.Type().IsRegular() {
			slog.Debug("repo: skipping irregular directory entry", "path", path)
			continue
		}
		var fn Node
		if dn.Repo != nil {
			fn = dn.Repo.makeNode(path)
		}
		if fn == nil {
			plain, err := NewFileNode(path)
			if err != nil {
				errors.Log(err)
				continue
			}
			fn = plain
		}
		files = append(files, fn)
	}
	return append(dirs, files...), nil
}

// Refresh re-reads the directory from disk: previously fetched
// children are finalized and discarded, and the listing is fetched
// again. Refreshing an unfetched directory just fetches it.
func (dn *DirNode) Refresh() error {
	for _, kid := range dn.Children {
		if rn := AsRepoNode(kid); rn != nil {
			rn.AsRepo().Finalize()
		}
	}
	dn.ResetFetched()
	_, err := dn.FetchChildren()
	return err
}
