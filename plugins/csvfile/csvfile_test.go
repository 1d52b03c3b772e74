// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csvfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/scrydata/scry/base/metadata"
	"github.com/scrydata/scry/data"
	"github.com/scrydata/scry/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleCSV = `name,height,mass
luke,1.72,77
leia,1.50,49
han,1.80,80
`

func openSample(t *testing.T) *Node {
	t.Helper()
	n, err := NewNode(writeCSV(t, "people.csv", sampleCSV))
	require.NoError(t, err)
	n.Policy = repo.PropagateErrors
	require.NoError(t, n.Open())
	return n
}

func TestNodeOpen(t *testing.T) {
	n := openSample(t)
	ar := n.Array()
	require.NotNil(t, ar)
	assert.Equal(t, []int{3, 3}, ar.Shape())
	assert.Equal(t, data.String, ar.Kind())
	assert.Equal(t, "leia", ar.Value(1, 0))
	assert.Equal(t, []string{"Row", "Column"}, n.DimNames())

	rows, err := metadata.Get[int](n.Attrs(), "rows")
	require.NoError(t, err)
	assert.Equal(t, 3, rows)
	hdr, err := metadata.Get[bool](n.Attrs(), "has header")
	require.NoError(t, err)
	assert.True(t, hdr)
}

func TestNodeColumns(t *testing.T) {
	n := openSample(t)
	kids, err := n.FetchChildren()
	require.NoError(t, err)
	require.Len(t, kids, 3)

	name := n.ChildByName("name").(*ColumnNode)
	assert.False(t, name.HasUnfetchedChildren())
	assert.Equal(t, data.String, name.Array().Kind())
	assert.Equal(t, []int{3}, name.Array().Shape())

	// fully numeric columns parse to float64
	height := n.ChildByName("height").(*ColumnNode)
	assert.Equal(t, data.Float, height.Array().Kind())
	assert.Equal(t, 1.50, height.Array().Value(1))
	assert.True(t, height.IsSliceable())
	assert.Equal(t, []string{"Row"}, height.DimNames())
}

func TestNodeNoHeader(t *testing.T) {
	n, err := NewNode(writeCSV(t, "nums.csv", "1,2\n3,4\n"))
	require.NoError(t, err)
	n.Policy = repo.PropagateErrors
	require.NoError(t, n.Open())

	hdr, err := metadata.Get[bool](n.Attrs(), "has header")
	require.NoError(t, err)
	assert.False(t, hdr)
	assert.Equal(t, []int{2, 2}, n.Array().Shape())

	kids, err := n.FetchChildren()
	require.NoError(t, err)
	require.Len(t, kids, 2)
	assert.Equal(t, "column 0", kids[0].AsTree().Name)
	col := kids[0].(*ColumnNode)
	assert.Equal(t, data.Float, col.Array().Kind())
}

func TestNodeTSV(t *testing.T) {
	n, err := NewNode(writeCSV(t, "data.tsv", "a\tb\n1\t2\n"))
	require.NoError(t, err)
	n.Policy = repo.PropagateErrors
	require.NoError(t, n.Open())
	assert.Equal(t, []int{1, 2}, n.Array().Shape())
	assert.Equal(t, "2", n.Array().Value(0, 1))
}

func TestNodeClose(t *testing.T) {
	n := openSample(t)
	require.NoError(t, n.Close())
	assert.Nil(t, n.Array())
	assert.Nil(t, n.Attrs())
}

func TestNewNodeNotRegular(t *testing.T) {
	_, err := NewNode(t.TempDir())
	assert.Error(t, err)
	_, err = NewNode(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestNodeOpenBadFile(t *testing.T) {
	n, err := NewNode(writeCSV(t, "bad.csv", "a,\"unterminated\n"))
	require.NoError(t, err)
	n.Policy = repo.PropagateErrors
	err = n.Open()
	require.Error(t, err)
	var oe *repo.OpenError
	assert.ErrorAs(t, err, &oe)
	assert.False(t, n.IsOpen())
}

func TestRegister(t *testing.T) {
	rp := repo.NewRepo()
	defer rp.Close()
	require.NoError(t, Register(rp))
	assert.True(t, rp.Registry.Has(Identifier))
	assert.Equal(t, Identifier, rp.Dispatch.Identify("/tmp/x.csv"))

	n, err := rp.OpenPath(writeCSV(t, "t.csv", sampleCSV))
	require.NoError(t, err)
	assert.IsType(t, &Node{}, n)
}

func TestNodeFetchOpensFile(t *testing.T) {
	n, err := NewNode(writeCSV(t, "people.csv", sampleCSV))
	require.NoError(t, err)
	n.Policy = repo.PropagateErrors

	// fetching a closed node opens it first
	kids, err := n.FetchChildren()
	require.NoError(t, err)
	assert.Len(t, kids, 3)
	assert.True(t, n.IsOpen())
}
