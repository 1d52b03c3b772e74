// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/scrydata/scry/base/errors"
	"github.com/scrydata/scry/detect"
	"github.com/scrydata/scry/registry"
	"github.com/scrydata/scry/tree"
)

// Repo is the root of a repository tree. It owns the format registry
// and dispatcher used to construct nodes for files, the error policy
// installed on adopted nodes, and the filesystem watcher that keeps
// open directories current.
type Repo struct {
	// Root is the synthetic invisible root whose children are the
	// repository's top-level nodes.
	Root *BaseNode

	// Registry maps format identifiers to node constructors.
	// Plugins register themselves here.
	Registry *registry.Registry[Node]

	// Dispatch maps file paths to format identifiers, by extension
	// or magic number. nil disables format dispatch, so every file
	// becomes a plain [FileNode].
	Dispatch detect.Dispatcher

	// Policy is installed on nodes adopted by [Repo.InsertNode]
	// that do not already carry one. nil means [CaptureErrors].
	Policy Policy

	// OnChange, if non-nil, is called with the directory path each
	// time the filesystem watcher reports a change under a watched
	// directory. It runs on the watcher goroutine.
	OnChange func(dir string)

	watcher    *fsnotify.Watcher
	doneWatch  chan struct{}
	updateMu   sync.Mutex
	lastUpdate watchUpdate
}

// NewRepo returns an empty repository with a default sniffing
// dispatcher and capturing error policy.
func NewRepo() *Repo {
	rp := &Repo{
		Registry: registry.New[Node](),
		Dispatch: detect.NewSniffer(),
		Policy:   CaptureErrors,
	}
	rp.Root = &BaseNode{}
	tree.InitNode(rp.Root)
	rp.Root.SetName("/")
	rp.Root.Repo = rp
	return rp
}

// Roots returns the repository's top-level nodes.
func (rp *Repo) Roots() []tree.Node {
	return rp.Root.Children
}

// InsertNode adopts the given node as a top-level node, installing
// the repository and its policy on it.
func (rp *Repo) InsertNode(n Node) {
	bn := n.AsRepo()
	bn.Repo = rp
	if bn.Policy == nil {
		bn.Policy = rp.Policy
	}
	rp.Root.AddChild(n)
}

// RemoveNode finalizes the given top-level node, releasing its
// resources bottom-up, and removes it from the repository.
func (rp *Repo) RemoveNode(n Node) {
	n.AsRepo().Finalize()
	rp.Root.DeleteChild(n)
}

// makeNode constructs a node for path through the dispatcher and
// registry, or returns nil if the file's format is unrecognized or
// construction fails. Construction failures are logged, never fatal:
// the caller falls back to a plain [FileNode].
func (rp *Repo) makeNode(path string) Node {
	if rp.Dispatch == nil || rp.Registry == nil {
		return nil
	}
	id := rp.Dispatch.Identify(path)
	if id == "" {
		return nil
	}
	n, err := rp.Registry.NewInstance(id, path)
	if err != nil {
		errors.Log(fmt.Errorf("repo: constructing %q node for %q: %w", id, path, err))
		return nil
	}
	return n
}

// OpenPath adds the file or directory at path to the repository as a
// top-level node and returns it. Files are routed through the format
// dispatcher; unrecognized files get a plain [FileNode].
func (rp *Repo) OpenPath(path string) (Node, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	var n Node
	if info.IsDir() {
		dn, err := NewDirNode(path)
		if err != nil {
			return nil, err
		}
		n = dn
	} else {
		if n = rp.makeNode(path); n == nil {
			fn, err := NewFileNode(path)
			if err != nil {
				return nil, err
			}
			n = fn
		}
	}
	rp.InsertNode(n)
	return n, nil
}

// SelectPath resolves the given filesystem path to a node, fetching
// children along the way as needed. It looks for a top-level node
// whose Filename is a prefix of path and then descends one path
// segment at a time.
func (rp *Repo) SelectPath(path string) (Node, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	for _, root := range rp.Root.Children {
		rn := AsRepoNode(root)
		if rn == nil {
			continue
		}
		fname := rn.AsRepo().Filename
		if fname == "" {
			continue
		}
		if path != fname && !strings.HasPrefix(path, fname+string(filepath.Separator)) {
			continue
		}
		rel, err := filepath.Rel(fname, path)
		if err != nil {
			return nil, err
		}
		cur := rn
		if rel != "." {
			for _, seg := range strings.Split(rel, string(filepath.Separator)) {
				if _, err := cur.AsTree().FetchChildren(); err != nil {
					return nil, err
				}
				kid := cur.AsTree().ChildByName(seg)
				if kid == nil {
					return nil, fmt.Errorf("repo: no node %q under %q", seg, cur.AsTree().Path())
				}
				if cur = AsRepoNode(kid); cur == nil {
					return nil, fmt.Errorf("repo: node %q is not inspectable", seg)
				}
			}
		}
		return cur, nil
	}
	return nil, fmt.Errorf("repo: no top-level node contains %q", path)
}

// Close finalizes every top-level node and stops the filesystem
// watcher. The repository can be repopulated afterward, but watching
// requires a new [Repo.ConfigWatcher].
func (rp *Repo) Close() {
	rp.stopWatcher()
	for _, root := range rp.Root.Children {
		if rn := AsRepoNode(root); rn != nil {
			rn.AsRepo().Finalize()
		}
	}
	rp.Root.DeleteChildren()
}
