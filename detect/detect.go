// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package detect maps file paths to registered repository node variant
// identifiers, using filename-extension hints first and magic-number
// content sniffing as a fallback.
package detect

import (
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// Dispatcher identifies which registered node variant should represent
// a file, returning the registry identifier, or "" if the file is not
// claimed by any variant (such files become plain unknown-file nodes).
type Dispatcher interface {
	Identify(path string) string
}

// Sniffer is the default [Dispatcher]. It resolves the lowercased
// filename extension against bound hints, and when that fails, sniffs
// the file content for a magic-number match and resolves the matched
// type's canonical extension the same way.
type Sniffer struct {
	exts map[string]string
}

// NewSniffer returns a new empty [Sniffer].
func NewSniffer() *Sniffer {
	return &Sniffer{exts: map[string]string{}}
}

// Bind associates the given extensions (lowercase, without the dot)
// with the given variant identifier. Later bindings win over earlier
// ones for the same extension.
func (sn *Sniffer) Bind(identifier string, exts ...string) {
	for _, ext := range exts {
		sn.exts[strings.ToLower(ext)] = identifier
	}
}

// Identify implements [Dispatcher].
func (sn *Sniffer) Identify(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if id, ok := sn.exts[ext]; ok {
		return id
	}
	t, err := filetype.MatchFile(path)
	if err != nil || t == filetype.Unknown {
		return ""
	}
	if id, ok := sn.exts[t.Extension]; ok {
		return id
	}
	return ""
}
