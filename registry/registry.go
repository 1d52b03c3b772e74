// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package registry provides an ordered mapping from stable string
// identifiers to factory entries for polymorphic implementations.
// It is used to register repository node variants and inspector
// variants, so that new formats plug in with one entry instead of a
// runtime string-to-symbol import.
//
// Registry errors always propagate to the caller: they indicate
// programmer or configuration mistakes, not data-driven faults, so
// there is no capture mode for them.
package registry

import (
	"fmt"
)

var (
	// ErrDuplicate is returned when registering an identifier that is
	// already present; the original entry remains intact.
	ErrDuplicate = fmt.Errorf("registry: duplicate identifier")

	// ErrNotFound is returned when looking up an identifier that has
	// not been registered.
	ErrNotFound = fmt.Errorf("registry: identifier not found")

	// ErrUnresolved is returned when creating an instance from an
	// entry whose factory has not been bound yet (deferred plugin
	// registration).
	ErrUnresolved = fmt.Errorf("registry: entry has no bound factory")
)

// Entry is one registered implementation.
type Entry[T any] struct {

	// Identifier is the short key under which the implementation is
	// registered, unique within one registry (e.g., "csv-file").
	Identifier string

	// FullName is the fully qualified implementation reference,
	// used for display and diagnostics (e.g., a package-qualified
	// type name).
	FullName string

	// Extensions are optional lowercase filename-extension hints
	// (without the dot) for format dispatching.
	Extensions []string

	// New constructs an instance for the given path. It may be nil at
	// registration time for deferred plugin registration; use
	// [Registry.Bind] to supply it before the first NewInstance call.
	New func(path string) (T, error)
}

// Registry is an ordered registry of [Entry] values, keyed by
// identifier. The zero value is not usable; use [New].
type Registry[T any] struct {
	entries map[string]*Entry[T]
	order   []string
}

// New returns a new empty [Registry].
func New[T any]() *Registry[T] {
	return &Registry[T]{entries: map[string]*Entry[T]{}}
}

// Register adds the given entry to the registry. It returns an error
// wrapping [ErrDuplicate] if the identifier is already registered,
// leaving the original entry intact.
func (r *Registry[T]) Register(e Entry[T]) error {
	if e.Identifier == "" {
		return fmt.Errorf("registry: empty identifier (full name %q)", e.FullName)
	}
	if _, has := r.entries[e.Identifier]; has {
		return fmt.Errorf("%w: %q", ErrDuplicate, e.Identifier)
	}
	r.entries[e.Identifier] = &e
	r.order = append(r.order, e.Identifier)
	return nil
}

// Bind sets the factory of an already-registered entry, supporting
// deferred registration where the implementation is not loadable at
// registration time. It returns an error wrapping [ErrNotFound] if
// the identifier is not registered.
func (r *Registry[T]) Bind(identifier string, maker func(path string) (T, error)) error {
	e, has := r.entries[identifier]
	if !has {
		return fmt.Errorf("%w: %q", ErrNotFound, identifier)
	}
	e.New = maker
	return nil
}

// Lookup returns the entry registered under the given identifier,
// or an error wrapping [ErrNotFound] if it is absent.
func (r *Registry[T]) Lookup(identifier string) (*Entry[T], error) {
	e, has := r.entries[identifier]
	if !has {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, identifier)
	}
	return e, nil
}

// Has reports whether the given identifier is registered.
func (r *Registry[T]) Has(identifier string) bool {
	_, has := r.entries[identifier]
	return has
}

// Items returns the registered entries in insertion order.
func (r *Registry[T]) Items() []*Entry[T] {
	items := make([]*Entry[T], 0, len(r.order))
	for _, id := range r.order {
		items = append(items, r.entries[id])
	}
	return items
}

// Len returns the number of registered entries.
func (r *Registry[T]) Len() int {
	return len(r.order)
}

// NewInstance resolves the entry for the given identifier and calls
// its factory with the given path. It returns an error wrapping
// [ErrNotFound] if the identifier is not registered, and an error
// wrapping [ErrUnresolved] if the entry has no bound factory.
func (r *Registry[T]) NewInstance(identifier, path string) (T, error) {
	var zv T
	e, err := r.Lookup(identifier)
	if err != nil {
		return zv, err
	}
	if e.New == nil {
		return zv, fmt.Errorf("%w: %q (full name %q)", ErrUnresolved, e.Identifier, e.FullName)
	}
	return e.New(path)
}
