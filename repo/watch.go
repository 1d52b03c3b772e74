// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repo

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/scrydata/scry/base/errors"
)

// watchUpdate records the last change notification, to coalesce the
// bursts of events a single filesystem operation can produce.
type watchUpdate struct {
	dir  string
	when time.Time
}

// ConfigWatcher starts the repository's filesystem watcher if it is
// not already running. Open directory nodes register their paths with
// it; changes under those paths invoke [Repo.OnChange].
func (rp *Repo) ConfigWatcher() error {
	if rp.watcher != nil {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	rp.watcher = w
	rp.doneWatch = make(chan struct{})
	go rp.watchWatcher()
	return nil
}

// WatchPath adds the given directory to the filesystem watcher,
// starting the watcher if needed.
func (rp *Repo) WatchPath(path string) error {
	if err := rp.ConfigWatcher(); err != nil {
		return err
	}
	return rp.watcher.Add(path)
}

// UnwatchPath removes the given directory from the filesystem
// watcher. Unwatching an unwatched path is a no-op.
func (rp *Repo) UnwatchPath(path string) {
	if rp.watcher == nil {
		return
	}
	_ = rp.watcher.Remove(path) // not-watched is fine
}

// watchWatcher consumes watcher events until the watcher is stopped.
// Creations, removals, and renames change directory listings, so they
// trigger an update; plain writes do not. The watcher and done channel
// are snapshotted before the loop: stopWatcher nils the fields from
// another goroutine.
func (rp *Repo) watchWatcher() {
	watch := rp.watcher
	done := rp.doneWatch
	for {
		select {
		case <-done:
			return
		case event, ok := <-watch.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				rp.notifyChange(filepath.Dir(event.Name))
			}
		case err, ok := <-watch.Errors:
			if !ok {
				return
			}
			errors.Log(err)
		}
	}
}

// notifyChange invokes OnChange for the given directory, dropping
// repeat notifications for the same directory within a short window.
func (rp *Repo) notifyChange(dir string) {
	rp.updateMu.Lock()
	now := time.Now()
	if rp.lastUpdate.dir == dir && now.Sub(rp.lastUpdate.when) < 100*time.Millisecond {
		rp.updateMu.Unlock()
		return
	}
	rp.lastUpdate = watchUpdate{dir: dir, when: now}
	fn := rp.OnChange
	rp.updateMu.Unlock()
	if fn != nil {
		fn(dir)
	}
}

// stopWatcher shuts down the filesystem watcher goroutine and
// releases the watcher.
func (rp *Repo) stopWatcher() {
	if rp.watcher == nil {
		return
	}
	close(rp.doneWatch)
	errors.Log(rp.watcher.Close())
	rp.watcher = nil
	rp.doneWatch = nil
}
