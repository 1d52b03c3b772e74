// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import "reflect"

// admin.go has infrastructure code outside of the Node interface.

// InitNode initializes the node, setting the [NodeBase.This] field to
// the true underlying type and calling [Node.Init] once. It must be
// called on every node before use; the child-adding functions call it
// automatically for the child being added.
func InitNode(this Node) {
	n := this.AsTree()
	if n.This != this {
		n.This = this
		n.This.Init()
	}
}

// New creates, initializes, and returns a new node of the given type.
// If a parent is given, the node is added to it, with a name assigned
// automatically if not set afterward.
func New[T Node](parent ...Node) T {
	var zv T
	n := reflect.New(reflect.TypeOf(zv).Elem()).Interface().(T)
	InitNode(n)
	if len(parent) > 0 && parent[0] != nil {
		parent[0].AsTree().AddChild(n)
	}
	return n
}

// NewInstance returns a new uninitialized instance of the underlying
// type of the given node.
func NewInstance(n Node) Node {
	return reflect.New(reflect.TypeOf(n).Elem()).Interface().(Node)
}

// TypeName returns the short (package-unqualified) type name of the
// underlying type of the given node.
func TypeName(n Node) string {
	return reflect.TypeOf(n).Elem().Name()
}

// SetParent sets the parent of the given child node to the given
// parent node. This is only for nodes with no existing parent; see
// [MoveToParent] to move nodes that already have one. It does not add
// the child to the parent's list of children; see [NodeBase.AddChild]
// for a version that does. If the child has no name, a unique one is
// assigned based on its type and the number of lifetime children of
// the parent.
func SetParent(child Node, parent Node) {
	n := child.AsTree()
	n.Parent = parent
	if parent != nil {
		pn := parent.AsTree()
		pn.numLifetimeChildren++
		if n.Name == "" {
			n.SetName(autoName(child, pn.numLifetimeChildren-1))
		}
	}
	child.OnAdd()
}

// MoveToParent removes the given node from its current parent
// and adds it as a child of the given new parent.
// The old and new parents can be in different trees (or not).
func MoveToParent(child Node, parent Node) {
	if oldParent := child.AsTree().Parent; oldParent != nil {
		idx := IndexOf(oldParent.AsTree().Children, child)
		if idx >= 0 {
			opn := oldParent.AsTree()
			opn.Children = append(opn.Children[:idx], opn.Children[idx+1:]...)
		}
	}
	parent.AsTree().AddChild(child)
}

// IsRoot tests whether the given node is the root node in its tree.
func IsRoot(n *NodeBase) bool {
	return n.This == nil || n.Parent == nil || n.Parent.AsTree().This == nil
}

// Root returns the root node of the given node's tree.
func Root(n Node) Node {
	if IsRoot(n.AsTree()) {
		return n.AsTree().This
	}
	return Root(n.AsTree().Parent)
}
