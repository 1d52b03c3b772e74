// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repo

// DecorState summarizes a node's history for display purposes.
type DecorState int32

const (
	// Unvisited nodes have never had their children fetched and
	// carry no error.
	Unvisited DecorState = iota

	// Visited nodes have fetched their children at least once.
	Visited

	// Errored nodes carry a captured error. Errored takes
	// precedence over Visited.
	Errored
)

func (ds DecorState) String() string {
	switch ds {
	case Unvisited:
		return "Unvisited"
	case Visited:
		return "Visited"
	case Errored:
		return "Errored"
	}
	return "DecorState(?)"
}
