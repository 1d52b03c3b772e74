// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repo implements a lazy-loading hierarchical model of
// inspectable data. Nodes wrap files, directories, and the structures
// inside opened files; resources are acquired on demand when a node
// is opened and its children are enumerated, and released again when
// the node is finalized. Format support is pluggable through a
// [registry.Registry] of node constructors keyed by identifier, with
// a [detect.Dispatcher] mapping paths to identifiers.
package repo

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/scrydata/scry/base/errors"
	"github.com/scrydata/scry/base/metadata"
	"github.com/scrydata/scry/data"
	"github.com/scrydata/scry/tree"
)

// Node is the interface that all repository nodes implement, through
// an embedded [BaseNode]. The methods below Node's embedded
// [tree.Node] are the resource hooks: concrete node types override
// the ones relevant to their format and inherit safe defaults for the
// rest. Callers drive nodes through [BaseNode.Open], [BaseNode.Close],
// and [tree.NodeBase.FetchChildren]; the hooks are not called
// directly.
type Node interface {
	tree.Node

	// AsRepo returns the [BaseNode] of this node, for direct access
	// to its repository state.
	AsRepo() *BaseNode

	// OpenResources acquires whatever backing resources the node
	// needs: opening a file handle, parsing a document, registering
	// a directory watch. It is only called on a closed node.
	OpenResources() error

	// CloseResources releases what OpenResources acquired. It is
	// only called on an open node.
	CloseResources() error

	// FetchMembers enumerates the node's children. It is only
	// called on an open node, and at most once per fetch cycle.
	// Children returned alongside a non-nil error are still adopted.
	FetchMembers() ([]Node, error)

	// Array returns the node's underlying array data, or nil if the
	// node holds no array.
	Array() data.Array

	// Attrs returns the node's format-level attributes, or nil.
	Attrs() metadata.Data

	// ElemTypeName returns the name of the node's element type,
	// or "" if the node holds no array.
	ElemTypeName() string

	// DimNames returns one display name per array dimension.
	DimNames() []string

	// DimPaths returns, per dimension, the path of a sibling node
	// that labels that dimension, or "" when none does.
	DimPaths() []string
}

// BaseNode provides the default behavior for all repository nodes.
// Concrete node types embed it and override the resource hooks they
// need; the embedded [tree.NodeBase.This] pointer routes the Open,
// Close, and Fetch drivers to the outermost type's hooks.
type BaseNode struct {
	tree.NodeBase

	// Filename is the absolute path of the file or directory this
	// node represents, or "" for purely virtual nodes such as the
	// members of an opened file.
	Filename string `copier:"-"`

	// Repo is the repository this node belongs to. It is set when
	// the node is inserted or fetched, and handed down to children.
	Repo *Repo `copier:"-"`

	// Policy decides whether this node's errors are captured or
	// propagated. nil is equivalent to [CaptureErrors].
	Policy Policy `copier:"-"`

	open bool
	err  error
}

func (bn *BaseNode) AsRepo() *BaseNode { return bn }

// AsRepoNode returns the given [tree.Node] as a repository [Node],
// or nil if it is not one.
func AsRepoNode(n tree.Node) Node {
	if rn, ok := n.(Node); ok {
		return rn
	}
	return nil
}

// IsOpen reports whether the node's resources are currently acquired.
func (bn *BaseNode) IsOpen() bool { return bn.open }

// Err returns the error captured by the most recent Open, Close, or
// fetch, or nil if it completed cleanly.
func (bn *BaseNode) Err() error { return bn.err }

// handle applies the node's policy to err. Under [Propagate] the
// error is returned; under [Capture] it is logged, stored on the
// node, and nil is returned.
func (bn *BaseNode) handle(err error) error {
	if bn.Policy != nil && bn.Policy.Handle(err) == Propagate {
		return err
	}
	errors.Log(err)
	bn.err = err
	return nil
}

// Open transitions the node to open by calling the outermost type's
// OpenResources hook. Any previously captured error is cleared first.
// Opening an already-open node closes it and reopens from scratch, so
// Open doubles as a reload.
func (bn *BaseNode) Open() error {
	bn.err = nil
	rn := bn.This.(Node)
	if bn.open {
		slog.Warn("repo: open of already-open node; closing first", "path", bn.Path())
		errors.Log(rn.CloseResources())
		bn.open = false
	}
	if err := rn.OpenResources(); err != nil {
		return bn.handle(&OpenError{Path: bn.displayPath(), Err: err})
	}
	bn.open = true
	return nil
}

// Close transitions the node to closed by calling the outermost
// type's CloseResources hook. Closing a closed node is a no-op. The
// node is considered closed even if the hook fails.
func (bn *BaseNode) Close() error {
	bn.err = nil
	if !bn.open {
		slog.Debug("repo: close of already-closed node", "path", bn.Path())
		return nil
	}
	err := bn.This.(Node).CloseResources()
	bn.open = false
	if err != nil {
		return bn.handle(&CloseError{Path: bn.displayPath(), Err: err})
	}
	return nil
}

// Fetch implements [tree.Node] by opening the node if necessary and
// enumerating its members through the outermost type's FetchMembers
// hook. It is invoked by [tree.NodeBase.FetchChildren], which marks
// the node fetched before calling it, so a failed fetch is not
// retried until [tree.NodeBase.ResetFetched].
func (bn *BaseNode) Fetch() ([]tree.Node, error) {
	bn.err = nil
	if !bn.open {
		if err := bn.Open(); err != nil {
			return nil, err
		}
	}
	if !bn.open { // open failed under Capture
		return nil, nil
	}
	kids, err := bn.This.(Node).FetchMembers()
	tkids := make([]tree.Node, 0, len(kids))
	for _, kid := range kids {
		if kid == nil {
			continue
		}
		kb := kid.AsRepo()
		kb.Repo = bn.Repo
		if kb.Policy == nil {
			kb.Policy = bn.Policy
		}
		tkids = append(tkids, kid)
	}
	if err != nil {
		return tkids, bn.handle(&EnumError{Path: bn.displayPath(), Err: err})
	}
	return tkids, nil
}

// Finalize recursively finalizes the node's children and then closes
// the node itself, releasing resources bottom-up. Errors are logged,
// not returned: finalization always completes.
func (bn *BaseNode) Finalize() {
	for _, kid := range bn.Children {
		if rn := AsRepoNode(kid); rn != nil {
			rn.AsRepo().Finalize()
		}
	}
	errors.Log(bn.Close())
}

// Decoration returns the node's display state: [Errored] if an error
// is captured, [Visited] if the children have been fetched, and
// [Unvisited] otherwise.
func (bn *BaseNode) Decoration() DecorState {
	if bn.err != nil {
		return Errored
	}
	if bn.ChildrenFetched() {
		return Visited
	}
	return Unvisited
}

// CheckFileExists verifies that the node's Filename exists, capturing
// an error on the node if it does not. Nodes with no Filename always
// pass.
func (bn *BaseNode) CheckFileExists() bool {
	if bn.Filename == "" {
		return true
	}
	if _, err := os.Stat(bn.Filename); err != nil {
		errors.Log(err)
		bn.err = err
		return false
	}
	return true
}

// displayPath prefers the node's filename for error reporting and
// falls back to its tree path.
func (bn *BaseNode) displayPath() string {
	if bn.Filename != "" {
		return bn.Filename
	}
	return bn.Path()
}

// OpenResources implements the default open hook: if the node has a
// Filename, it must exist.
func (bn *BaseNode) OpenResources() error {
	if bn.Filename == "" {
		return nil
	}
	_, err := os.Stat(bn.Filename)
	return err
}

// CloseResources implements the default close hook, which holds
// nothing and does nothing.
func (bn *BaseNode) CloseResources() error { return nil }

// FetchMembers implements the default fetch hook: no children.
func (bn *BaseNode) FetchMembers() ([]Node, error) { return nil, nil }

// Array implements the default array hook: no array data.
func (bn *BaseNode) Array() data.Array { return nil }

// Attrs implements the default attributes hook: no attributes.
func (bn *BaseNode) Attrs() metadata.Data { return nil }

// ElemTypeName returns the element type name of the node's array, if
// it has one.
func (bn *BaseNode) ElemTypeName() string {
	if ar := bn.This.(Node).Array(); ar != nil {
		return ar.TypeName()
	}
	return ""
}

// ArrayShape returns the shape of the node's array, or nil.
func (bn *BaseNode) ArrayShape() []int {
	if ar := bn.This.(Node).Array(); ar != nil {
		return ar.Shape()
	}
	return nil
}

// NumDims returns the number of dimensions of the node's array. It
// always equals len(ArrayShape()).
func (bn *BaseNode) NumDims() int {
	return len(bn.ArrayShape())
}

// IsSliceable reports whether the node holds array data that can be
// sliced for inspection. Scalar (0-dimensional) arrays are not
// sliceable.
func (bn *BaseNode) IsSliceable() bool {
	return bn.NumDims() > 0
}

// DimNames implements the default dimension-name hook: Dim0, Dim1, …
// for each array dimension.
func (bn *BaseNode) DimNames() []string {
	nd := bn.NumDims()
	names := make([]string, nd)
	for i := range names {
		names[i] = fmt.Sprintf("Dim%d", i)
	}
	return names
}

// DimPaths implements the default dimension-path hook: no dimension
// has a labeling sibling.
func (bn *BaseNode) DimPaths() []string {
	return make([]string, bn.NumDims())
}

// statRegularFile returns an error unless path names a regular file.
func statRegularFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%q is not a regular file: %w", path, fs.ErrInvalid)
	}
	return nil
}
