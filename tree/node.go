// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tree provides a generic lazy-loading tree system, centered
// on the core [Node] interface. Nodes materialize their children on
// first expansion, not at construction, and know nothing about files
// or data; those specializations live in the repo package.
package tree

// Node is the interface that all tree nodes satisfy. The core
// functionality of a tree node is defined on [NodeBase], and all
// higher-level tree types must embed it. This interface only contains
// the functionality that higher-level types may need to override.
// You can call [Node.AsTree] to get the [NodeBase] of a Node and
// access the core tree functionality. All values that implement
// [Node] are pointer values.
type Node interface {

	// AsTree returns the [NodeBase] of this Node. Most core
	// tree functionality is implemented on [NodeBase].
	AsTree() *NodeBase

	// Init is called when the node is first initialized.
	// It is called before the node is added to the tree, so it will
	// not have any parents or siblings. It will be called only once
	// in the lifetime of the node. It does nothing by default, but
	// it can be implemented by higher-level types.
	Init()

	// OnAdd is called when the node is added to a parent.
	// It will be called only once in the lifetime of the node,
	// unless the node is moved. It will not be called on root nodes.
	// It does nothing by default.
	OnAdd()

	// CanFetch reports whether this node is capable of having
	// children at all. Leaf node types return false so that the
	// fetch machinery never runs for them; the default is true,
	// assuming children until a fetch proves otherwise.
	CanFetch() bool

	// Fetch enumerates this node's children, returning them in order.
	// It is the variant-supplied hook behind [NodeBase.FetchChildren],
	// which guarantees that it runs at most once per node; do not call
	// it directly. The default implementation returns no children.
	Fetch() ([]Node, error)

	// Destroy recursively deletes and destroys the node and all of its
	// children. Node types can implement this to do additional
	// necessary destruction; if they do, they should call
	// [NodeBase.Destroy] at the end of their implementation.
	Destroy()
}
