// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import "iter"

const (
	// Continue = true can be returned from tree iteration functions
	// to continue processing down the tree, as compared to
	// Break = false which stops this branch.
	Continue = true

	// Break = false can be returned from tree iteration functions
	// to stop processing this branch of the tree.
	Break = false
)

// WalkUp calls the given function on the node and all of its parents,
// sequentially in the current goroutine. It stops walking if the
// function returns [Break] and keeps walking if it returns [Continue].
// It returns whether walking was finished (false if it was aborted
// with [Break]).
func (nb *NodeBase) WalkUp(fun func(n Node) bool) bool {
	cur := nb.This
	for {
		if !fun(cur) {
			return false
		}
		parent := cur.AsTree().Parent
		if parent == nil || parent == cur { // prevent loops
			return true
		}
		cur = parent
	}
}

// WalkUpParent calls the given function on all of the node's parents
// (but not the node itself), sequentially in the current goroutine,
// with the same [Break] / [Continue] conventions as [NodeBase.WalkUp].
func (nb *NodeBase) WalkUpParent(fun func(n Node) bool) bool {
	if IsRoot(nb) {
		return true
	}
	cur := nb.Parent
	for {
		if !fun(cur) {
			return false
		}
		parent := cur.AsTree().Parent
		if parent == nil || parent == cur {
			return true
		}
		cur = parent
	}
}

// WalkDown calls the given function on the node and all of its
// children in depth-first pre-order, sequentially in the current
// goroutine. It stops walking the current branch of the tree if the
// function returns [Break] and keeps walking if it returns [Continue].
// The walk only covers already-materialized children; it does not
// trigger any lazy fetching.
func (nb *NodeBase) WalkDown(fun func(n Node) bool) {
	if nb.This == nil {
		return
	}
	walkDown(nb.This, fun)
}

func walkDown(n Node, fun func(n Node) bool) {
	cb := n.AsTree()
	if cb.This == nil {
		return
	}
	if !fun(n) {
		return
	}
	// fun can add or delete children, so walk the live slice by index
	for i := 0; i < len(cb.Children); i++ {
		if kid := cb.Children[i]; kid != nil {
			walkDown(kid, fun)
		}
	}
}

// WalkDownPost iterates depth-first over the children, calling
// shouldContinue on each node to test if processing should proceed
// (if it returns [Break] then the children of that branch are not
// further processed), and then calls the given function after all of
// a node's children have been visited. In effect, the given function
// is called for deeper nodes first; this is the traversal used for
// bottom-up cleanup.
func (nb *NodeBase) WalkDownPost(shouldContinue func(n Node) bool, fun func(n Node) bool) {
	if nb.This == nil {
		return
	}
	walkDownPost(nb.This, shouldContinue, fun)
}

func walkDownPost(n Node, shouldContinue func(n Node) bool, fun func(n Node) bool) {
	cb := n.AsTree()
	if cb.This == nil {
		return
	}
	if shouldContinue(n) {
		for i := 0; i < len(cb.Children); i++ {
			if kid := cb.Children[i]; kid != nil {
				walkDownPost(kid, shouldContinue, fun)
			}
		}
	}
	fun(n)
}

// Preorder returns a depth-first pre-order sequence over this node and
// all of its descendants, in the current state of the tree. The
// sequence is lazy and finite; each call to Preorder (or each range
// over its result) starts a fresh walk from the current tree state.
func (nb *NodeBase) Preorder() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		ok := true
		nb.WalkDown(func(n Node) bool {
			if !ok || !yield(n) {
				ok = false
				return Break
			}
			return Continue
		})
	}
}
