// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/jinzhu/copier"
)

// NodeBase implements the [Node] interface and provides the core
// functionality for the tree system. You must use NodeBase as an
// embedded struct in all higher-level tree types.
//
// All nodes must be properly initialized by using [InitNode] (called
// automatically by [NodeBase.AddChild] and [NodeBase.InsertChild] for
// the child being added). This ensures that the [NodeBase.This] field
// is set correctly and the [Node.Init] method is called.
type NodeBase struct {

	// Name is the name of this node, which is typically unique
	// relative to other children of the same parent. It is used for
	// finding nodes by path.
	Name string `copier:"-"`

	// This is the value of this Node as its true underlying type.
	// This allows methods defined on base types to call methods
	// defined on higher-level types. It is set to nil when the node
	// is destroyed.
	This Node `copier:"-" json:"-"`

	// Parent is the parent of this node, which is set automatically
	// when this node is added as a child of a parent. Nodes can only
	// have one parent at a time.
	Parent Node `copier:"-" json:"-"`

	// Children is the ordered list of children of this node. All of
	// them are set to have this node as their parent. Use the child
	// helper functions when applicable so that everything is updated
	// properly, such as when deleting children.
	Children []Node `copier:"-" json:",omitempty"`

	// fetched is set after the first (and only) run of the [Node.Fetch]
	// hook; before that the child list is empty for fetchable nodes.
	fetched bool

	// numLifetimeChildren is the number of children that have ever
	// been added to this node, used for automatic unique naming.
	numLifetimeChildren uint64

	// index is the last known value of our index in our parent,
	// used as a starting point for finding us next time.
	// It is not guaranteed to be accurate; see [NodeBase.IndexInParent].
	index int
}

// String implements the [fmt.Stringer] interface by returning the
// path of the node.
func (nb *NodeBase) String() string {
	if nb == nil || nb.This == nil {
		return "nil"
	}
	return nb.Path()
}

// AsTree returns the [NodeBase] for this Node.
func (nb *NodeBase) AsTree() *NodeBase {
	return nb
}

// SetName sets the name of this node.
func (nb *NodeBase) SetName(name string) *NodeBase {
	nb.Name = name
	return nb
}

// Init is a placeholder implementation of [Node.Init] that does nothing.
func (nb *NodeBase) Init() {}

// OnAdd is a placeholder implementation of [Node.OnAdd] that does nothing.
func (nb *NodeBase) OnAdd() {}

// CanFetch implements [Node.CanFetch], assuming children until a fetch
// proves otherwise. Leaf node types override this to return false.
func (nb *NodeBase) CanFetch() bool {
	return true
}

// Fetch implements [Node.Fetch], returning no children.
func (nb *NodeBase) Fetch() ([]Node, error) {
	return nil, nil
}

// Parents:

// IndexInParent returns our index within our parent node. It caches
// the last value and uses that as the starting point for an optimized
// search, so subsequent calls are typically quite fast. Returns -1 if
// we don't have a parent.
func (nb *NodeBase) IndexInParent() int {
	if nb.Parent == nil {
		return -1
	}
	idx := IndexOf(nb.Parent.AsTree().Children, nb.This, nb.index)
	nb.index = idx
	return idx
}

// ParentByName finds the first parent recursively up the hierarchy
// that matches the given name. It returns nil if none is found.
func (nb *NodeBase) ParentByName(name string) Node {
	if IsRoot(nb) {
		return nil
	}
	if nb.Parent.AsTree().Name == name {
		return nb.Parent
	}
	return nb.Parent.AsTree().ParentByName(name)
}

// Children:

// HasChildren returns whether this node has any children.
func (nb *NodeBase) HasChildren() bool {
	return len(nb.Children) > 0
}

// NumChildren returns the number of children this node has.
func (nb *NodeBase) NumChildren() int {
	return len(nb.Children)
}

// Child returns the child of this node at the given index and returns
// nil if the index is out of range.
func (nb *NodeBase) Child(i int) Node {
	if i >= len(nb.Children) || i < 0 {
		return nil
	}
	return nb.Children[i]
}

// ChildByName returns the first child that has the given name, and nil
// if no such element is found. The startIndex arg allows for optimized
// bidirectional finding if you have an idea where it might be, which
// can be a key speedup for large lists. If no value is specified for
// startIndex, it starts in the middle, which is a good default.
func (nb *NodeBase) ChildByName(name string, startIndex ...int) Node {
	return nb.Child(IndexByName(nb.Children, name, startIndex...))
}

// Paths:

// EscapePathName returns a name that replaces any / with \\
func EscapePathName(name string) string {
	return strings.ReplaceAll(name, "/", `\\`)
}

// UnescapePathName returns a name that replaces any \\ with /
func UnescapePathName(name string) string {
	return strings.ReplaceAll(name, `\\`, "/")
}

// Path returns the path to this node from the tree root, using
// [Node] Names separated by / delimiters. Any existing / characters
// in names are escaped to \\
func (nb *NodeBase) Path() string {
	if nb.Parent != nil {
		return nb.Parent.AsTree().Path() + "/" + EscapePathName(nb.Name)
	}
	return "/" + EscapePathName(nb.Name)
}

// PathFrom returns the path to this node from the given parent node,
// using [Node] Names separated by / delimiters. The paths that it
// returns exclude the name of the parent and the leading slash; for
// example, in the tree a/b/c/d/e, the result of d.PathFrom(b) would
// be c/d.
func (nb *NodeBase) PathFrom(parent Node) string {
	if nb.This == parent {
		return ""
	}
	// critical to get This
	parent = parent.AsTree().This
	// we bail a level below the parent so it isn't in the path
	if nb.Parent == nil || nb.Parent == parent {
		return EscapePathName(nb.Name)
	}
	ppath := nb.Parent.AsTree().PathFrom(parent)
	return ppath + "/" + EscapePathName(nb.Name)
}

// FindPath returns the node at the given path from this node.
// FindPath only works correctly when names are unique.
// The given path must be consistent with the format produced by
// [NodeBase.PathFrom]. It returns nil if no node is found at the
// given path. FindPath does not fetch unfetched children; use
// [NodeBase.FetchChildren] on the relevant nodes (or a repo-level
// select operation) for that.
func (nb *NodeBase) FindPath(path string) Node {
	curn := nb.This
	pels := strings.Split(strings.Trim(strings.TrimSpace(path), "\""), "/")
	for _, pe := range pels {
		if len(pe) == 0 {
			continue
		}
		idx := IndexByName(curn.AsTree().Children, UnescapePathName(pe))
		if idx < 0 {
			return nil
		}
		curn = curn.AsTree().Children[idx]
	}
	return curn
}

// Adding Children:

// AddChild adds the given child at the end of the children list.
// The child node is assumed to not be on another tree (see
// [MoveToParent]) and the existing name should be unique among
// children.
func (nb *NodeBase) AddChild(kid Node) {
	InitNode(kid)
	nb.Children = append(nb.Children, kid)
	SetParent(kid, nb.This)
}

// InsertChild adds the given child at the given position in the
// children list, with the same assumptions as [NodeBase.AddChild].
func (nb *NodeBase) InsertChild(kid Node, index int) {
	InitNode(kid)
	nb.Children = append(nb.Children, nil)
	copy(nb.Children[index+1:], nb.Children[index:])
	nb.Children[index] = kid
	SetParent(kid, nb.This)
}

// Deleting Children:

// DeleteChildAt deletes the child at the given index, destroying it.
// It returns false if there is no child at the given index.
func (nb *NodeBase) DeleteChildAt(index int) bool {
	child := nb.Child(index)
	if child == nil {
		return false
	}
	nb.Children = append(nb.Children[:index], nb.Children[index+1:]...)
	child.Destroy()
	return true
}

// DeleteChild deletes the given child node, destroying it.
// It returns false if it can not find it.
func (nb *NodeBase) DeleteChild(child Node) bool {
	if child == nil {
		return false
	}
	idx := IndexOf(nb.Children, child)
	if idx < 0 {
		return false
	}
	return nb.DeleteChildAt(idx)
}

// DeleteChildByName deletes the child node with the given name,
// destroying it. It returns false if it can not find it.
func (nb *NodeBase) DeleteChildByName(name string) bool {
	idx := IndexByName(nb.Children, name)
	if idx < 0 {
		return false
	}
	return nb.DeleteChildAt(idx)
}

// DeleteChildren deletes and destroys all children nodes.
func (nb *NodeBase) DeleteChildren() {
	kids := nb.Children
	nb.Children = nb.Children[:0] // preserves capacity
	for _, kid := range kids {
		if kid == nil {
			continue
		}
		kid.Destroy()
	}
}

// Delete deletes this node from its parent's children list
// and then destroys itself.
func (nb *NodeBase) Delete() {
	if nb.Parent == nil {
		nb.This.Destroy()
	} else {
		nb.Parent.AsTree().DeleteChild(nb.This)
	}
}

// Destroy recursively deletes and destroys the node and all of its
// children.
func (nb *NodeBase) Destroy() {
	if nb.This == nil { // already destroyed
		return
	}
	nb.DeleteChildren()
	nb.This = nil
}

// Lazy fetching:

// ChildrenFetched reports whether the children of this node have been
// materialized (i.e., [NodeBase.FetchChildren] has run).
func (nb *NodeBase) ChildrenFetched() bool {
	return nb.fetched
}

// HasUnfetchedChildren returns true if the node is capable of having
// children (per [Node.CanFetch]) that have not yet been materialized.
func (nb *NodeBase) HasUnfetchedChildren() bool {
	return !nb.fetched && nb.This.CanFetch()
}

// FetchChildren materializes this node's children, calling the
// [Node.Fetch] hook on the first call and adding the resulting nodes
// as children. It is idempotent: once the children have been fetched,
// it returns the cached child list without re-executing any side
// effects. The node is marked as fetched even when the hook fails, so
// that a bad node is not retried on every refresh; the error (always
// nil for node types that capture their errors internally) reports
// what went wrong.
func (nb *NodeBase) FetchChildren() ([]Node, error) {
	if nb.fetched {
		return nb.Children, nil
	}
	nb.fetched = true
	kids, err := nb.This.Fetch()
	for _, kid := range kids {
		if kid != nil {
			nb.AddChild(kid)
		}
	}
	return nb.Children, err
}

// ResetFetched deletes all existing children and clears the fetched
// flag, so that the next [NodeBase.FetchChildren] takes a fresh
// snapshot. Callers holding live resources below this node must
// finalize them first.
func (nb *NodeBase) ResetFetched() {
	nb.DeleteChildren()
	nb.fetched = false
}

// Deep copy:

// CopyFieldsFrom copies the fields of the node from the given node,
// doing a deep copy of all fields that do not have a `copier:"-"`
// struct tag. The tree structure fields (name, parent, children) are
// not copied.
func (nb *NodeBase) CopyFieldsFrom(from Node) {
	err := copier.CopyWithOption(nb.This, from.AsTree().This,
		copier.Option{CaseSensitive: true, DeepCopy: true})
	if err != nil {
		slog.Error("tree.NodeBase.CopyFieldsFrom", "err", err)
	}
}

// Clone creates and returns a deep copy of the tree from this node
// down, with fields copied per [NodeBase.CopyFieldsFrom].
func (nb *NodeBase) Clone() Node {
	nc := NewInstance(nb.This)
	InitNode(nc)
	nc.AsTree().SetName(nb.Name)
	nc.AsTree().CopyFieldsFrom(nb.This)
	nc.AsTree().fetched = nb.fetched
	for _, kid := range nb.Children {
		if kid == nil {
			continue
		}
		nc.AsTree().AddChild(kid.AsTree().Clone())
	}
	return nc
}

// autoName returns an automatic name for a new child, based on the
// lowercased type name and the number of lifetime children.
func autoName(child Node, n uint64) string {
	return strings.ToLower(TypeName(child)) + "-" + strconv.FormatUint(n, 10)
}
