// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repo

// Disposition is a [Policy]'s verdict on a node error.
type Disposition int32

const (
	// Capture records the error on the node and lets the traversal
	// continue. The node reports the error through [BaseNode.Err]
	// and decorates itself as [Errored].
	Capture Disposition = iota

	// Propagate returns the error to the caller immediately,
	// aborting whatever operation produced it.
	Propagate
)

// Policy decides whether node errors are captured in place or
// propagated to the caller. A repo installs its policy on every node
// it adopts, and nodes hand it down to the children they fetch, so a
// whole tree shares one policy unless a node is given its own.
type Policy interface {
	// Handle inspects an error raised while opening, closing, or
	// fetching a node and returns the disposition for it.
	Handle(err error) Disposition
}

// dispositionPolicy returns the same disposition for every error.
type dispositionPolicy Disposition

func (p dispositionPolicy) Handle(err error) Disposition {
	return Disposition(p)
}

// CaptureErrors is the interactive-use policy: errors are stored on
// the node so a browser can show them in place. A nil [Policy] is
// equivalent to CaptureErrors.
var CaptureErrors Policy = dispositionPolicy(Capture)

// PropagateErrors is the fail-fast policy for debugging and tests:
// the first error aborts the operation that raised it.
var PropagateErrors Policy = dispositionPolicy(Propagate)
