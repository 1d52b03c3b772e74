// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/scrydata/scry/detect"
	"github.com/scrydata/scry/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file with some content under dir.
func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))
	return path
}

// makeTestDir builds a directory with a mix of entries:
//
//	dir/
//	├── .hidden        (excluded)
//	├── alpha.txt
//	├── beta.dat
//	└── sub/
//	    └── gamma.txt
func makeTestDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, ".hidden")
	writeFile(t, dir, "alpha.txt")
	writeFile(t, dir, "beta.dat")
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, sub, "gamma.txt")
	return dir
}

func childNames(n Node) []string {
	var names []string
	for _, kid := range n.AsTree().Children {
		names = append(names, kid.AsTree().Name)
	}
	return names
}

func TestDirNodeFetch(t *testing.T) {
	dir := makeTestDir(t)
	dn, err := NewDirNode(dir)
	require.NoError(t, err)
	dn.Policy = PropagateErrors

	_, err = dn.FetchChildren()
	require.NoError(t, err)
	// directories before files, hidden entries excluded
	assert.Equal(t, []string{"sub", "alpha.txt", "beta.dat"}, childNames(dn))
}

func TestDirNodeLazy(t *testing.T) {
	dir := makeTestDir(t)
	dn, err := NewDirNode(dir)
	require.NoError(t, err)

	sub := filepath.Join(dir, "sub")
	// nothing is read until fetched
	assert.False(t, dn.ChildrenFetched())
	assert.False(t, dn.IsOpen())

	_, err = dn.FetchChildren()
	require.NoError(t, err)
	subNode := dn.ChildByName("sub").(*DirNode)
	assert.Equal(t, sub, subNode.Filename)
	assert.False(t, subNode.ChildrenFetched())

	_, err = subNode.FetchChildren()
	require.NoError(t, err)
	assert.Equal(t, []string{"gamma.txt"}, childNames(subNode))
}

func TestDirNodeNotADir(t *testing.T) {
	dir := makeTestDir(t)
	_, err := NewDirNode(filepath.Join(dir, "alpha.txt"))
	assert.Error(t, err)
	_, err = NewDirNode(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestDirNodeRefresh(t *testing.T) {
	dir := makeTestDir(t)
	dn, err := NewDirNode(dir)
	require.NoError(t, err)
	_, err = dn.FetchChildren()
	require.NoError(t, err)
	assert.Len(t, dn.Children, 3)

	writeFile(t, dir, "delta.txt")
	require.NoError(t, dn.Refresh())
	assert.Equal(t, []string{"sub", "alpha.txt", "beta.dat", "delta.txt"}, childNames(dn))
}

func TestFileNode(t *testing.T) {
	dir := makeTestDir(t)
	fn, err := NewFileNode(filepath.Join(dir, "alpha.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha.txt", fn.Name)
	assert.False(t, fn.HasUnfetchedChildren())

	_, err = NewFileNode(filepath.Join(dir, "sub"))
	assert.Error(t, err)
	_, err = NewFileNode(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

// markNode is a plugin-style node used to verify format dispatch.
type markNode struct {
	BaseNode
}

func registerMark(t *testing.T, rp *Repo) {
	t.Helper()
	err := rp.Registry.Register(registry.Entry[Node]{
		Identifier: "mark",
		Extensions: []string{"dat"},
		New: func(path string) (Node, error) {
			n := &markNode{}
			n.Filename = path
			n.SetName(filepath.Base(path))
			return n, nil
		},
	})
	require.NoError(t, err)
	rp.Dispatch.(*detect.Sniffer).Bind("mark", "dat")
}

func TestRepoDispatch(t *testing.T) {
	dir := makeTestDir(t)
	rp := NewRepo()
	defer rp.Close()
	registerMark(t, rp)

	dn, err := rp.OpenPath(dir)
	require.NoError(t, err)
	_, err = dn.AsTree().FetchChildren()
	require.NoError(t, err)

	// recognized extension gets the registered variant
	assert.IsType(t, &markNode{}, dn.AsTree().ChildByName("beta.dat"))
	// unrecognized files fall back to plain file nodes
	assert.IsType(t, &FileNode{}, dn.AsTree().ChildByName("alpha.txt"))
}

func TestRepoInsertRemove(t *testing.T) {
	dir := makeTestDir(t)
	rp := NewRepo()
	defer rp.Close()

	dn, err := NewDirNode(dir)
	require.NoError(t, err)
	rp.InsertNode(dn)
	assert.Len(t, rp.Roots(), 1)
	assert.Equal(t, rp, dn.Repo)
	assert.Equal(t, rp.Policy, dn.Policy)

	_, err = dn.FetchChildren()
	require.NoError(t, err)
	rp.RemoveNode(dn)
	assert.Empty(t, rp.Roots())
	assert.False(t, dn.IsOpen())
}

func TestRepoOpenPathFile(t *testing.T) {
	dir := makeTestDir(t)
	rp := NewRepo()
	defer rp.Close()

	n, err := rp.OpenPath(filepath.Join(dir, "alpha.txt"))
	require.NoError(t, err)
	assert.IsType(t, &FileNode{}, n)

	_, err = rp.OpenPath(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRepoSelectPath(t *testing.T) {
	dir := makeTestDir(t)
	rp := NewRepo()
	defer rp.Close()
	rp.Policy = PropagateErrors

	root, err := rp.OpenPath(dir)
	require.NoError(t, err)

	n, err := rp.SelectPath(filepath.Join(dir, "sub", "gamma.txt"))
	require.NoError(t, err)
	assert.Equal(t, "gamma.txt", n.AsTree().Name)
	assert.Equal(t, filepath.Join(dir, "sub", "gamma.txt"), n.AsRepo().Filename)

	// selecting the root itself
	n, err = rp.SelectPath(dir)
	require.NoError(t, err)
	assert.Equal(t, root, n)

	_, err = rp.SelectPath(filepath.Join(dir, "sub", "missing.txt"))
	assert.Error(t, err)
	_, err = rp.SelectPath("/not/under/any/root")
	assert.Error(t, err)
}

func TestRepoWatch(t *testing.T) {
	dir := makeTestDir(t)
	rp := NewRepo()
	defer rp.Close()

	changed := make(chan string, 8)
	rp.OnChange = func(d string) { changed <- d }

	dn, err := rp.OpenPath(dir)
	require.NoError(t, err)
	_, err = dn.AsTree().FetchChildren() // opens the dir, registering the watch
	require.NoError(t, err)

	writeFile(t, dir, "epsilon.txt")
	select {
	case d := <-changed:
		assert.Equal(t, dir, d)
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification for new file")
	}
}

func TestRepoCloseDuringNotify(t *testing.T) {
	dir := makeTestDir(t)
	rp := NewRepo()

	entered := make(chan struct{})
	release := make(chan struct{})
	rp.OnChange = func(d string) {
		entered <- struct{}{}
		<-release
	}

	dn, err := rp.OpenPath(dir)
	require.NoError(t, err)
	_, err = dn.AsTree().FetchChildren()
	require.NoError(t, err)

	writeFile(t, dir, "zeta.txt")
	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification for new file")
	}

	// closing while the watcher goroutine is inside the callback must
	// not panic when the goroutine resumes its event loop
	rp.Close()
	close(release)
	time.Sleep(50 * time.Millisecond)
	assert.Nil(t, rp.watcher)
}

func TestRepoClose(t *testing.T) {
	dir := makeTestDir(t)
	rp := NewRepo()
	dn, err := rp.OpenPath(dir)
	require.NoError(t, err)
	_, err = dn.AsTree().FetchChildren()
	require.NoError(t, err)

	rp.Close()
	assert.Empty(t, rp.Roots())
	assert.False(t, dn.AsRepo().IsOpen())
}
