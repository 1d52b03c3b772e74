// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package settings persists user preferences between runs, as a TOML
// file under the user's config directory.
package settings

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/scrydata/scry/base/logx"
)

// MaxRecent is the number of entries kept in [Settings.RecentPaths].
const MaxRecent = 10

// Settings holds the user preferences that persist between runs.
type Settings struct {
	// RecentPaths are the most recently opened files and
	// directories, newest first.
	RecentPaths []string `toml:"recent_paths"`

	// SelectedPath is the path selected when the previous run
	// ended, restored on the next start.
	SelectedPath string `toml:"selected_path"`

	// Verbosity is the logging verbosity name: debug, info, warn,
	// or error.
	Verbosity string `toml:"verbosity"`
}

// Default returns the settings used when no settings file exists.
func Default() *Settings {
	return &Settings{Verbosity: "warn"}
}

// Path returns the location of the settings file, creating nothing.
func Path() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "scry", "settings.toml"), nil
}

// Open loads the settings file, returning defaults if it does not
// exist yet.
func Open() (*Settings, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return OpenFile(path)
}

// OpenFile loads settings from the given file, returning defaults if
// it does not exist.
func OpenFile(path string) (*Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	st := Default()
	if err := toml.Unmarshal(b, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Save writes the settings to the default location, creating the
// config directory if needed.
func (st *Settings) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return st.SaveFile(path)
}

// SaveFile writes the settings to the given file.
func (st *Settings) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := toml.Marshal(st)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// AddRecent records path as the most recently opened, deduplicating
// and capping the list at [MaxRecent].
func (st *Settings) AddRecent(path string) {
	st.RecentPaths = slices.DeleteFunc(st.RecentPaths, func(p string) bool {
		return p == path
	})
	st.RecentPaths = append([]string{path}, st.RecentPaths...)
	if len(st.RecentPaths) > MaxRecent {
		st.RecentPaths = st.RecentPaths[:MaxRecent]
	}
}

// Apply installs the settings that affect global state, currently
// just the logging verbosity.
func (st *Settings) Apply() {
	logx.UserLevel = logx.LevelFromName(st.Verbosity)
}
