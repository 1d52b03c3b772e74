// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package csvfile provides repository nodes for comma- and
// tab-separated value files. The file node exposes the whole table as
// a 2-D string array; its children are one node per column, each
// exposing that column as a 1-D array, parsed to float64 when every
// cell is numeric.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/scrydata/scry/base/metadata"
	"github.com/scrydata/scry/data"
	"github.com/scrydata/scry/detect"
	"github.com/scrydata/scry/registry"
	"github.com/scrydata/scry/repo"
	"github.com/scrydata/scry/tree"
)

// Identifier is the format identifier csvfile registers under.
const Identifier = "csv-file"

// Register adds the csvfile node constructor to the given
// repository's format registry and binds the csv and tsv extensions
// to it in the repository's dispatcher.
func Register(rp *repo.Repo) error {
	err := rp.Registry.Register(registry.Entry[repo.Node]{
		Identifier: Identifier,
		FullName:   "github.com/scrydata/scry/plugins/csvfile.Node",
		Extensions: []string{"csv", "tsv"},
		New: func(path string) (repo.Node, error) {
			return NewNode(path)
		},
	})
	if err != nil {
		return err
	}
	if sn, ok := rp.Dispatch.(*detect.Sniffer); ok {
		sn.Bind(Identifier, "csv", "tsv")
	}
	return nil
}

// Node is a repository node for a delimiter-separated value file.
// Opening the node parses the whole file into memory; closing it
// drops the parsed data.
type Node struct {
	repo.BaseNode

	delim   rune
	header  []string
	records [][]string
	columns []data.Array
}

// NewNode returns a csvfile node for the given path, which must name
// a regular file. The file is not read until the node is opened.
func NewNode(path string) (*Node, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%q is not a regular file: %w", path, fs.ErrInvalid)
	}
	n := &Node{}
	tree.InitNode(n)
	n.Filename = path
	n.SetName(filepath.Base(path))
	return n, nil
}

// OpenResources reads and parses the file. Files with a .tsv
// extension are read tab-delimited, everything else comma-delimited.
// A first row containing no numeric cell is taken as the header.
func (n *Node) OpenResources() error {
	f, err := os.Open(n.Filename)
	if err != nil {
		return err
	}
	defer f.Close()
	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1
	n.delim = ','
	if strings.EqualFold(filepath.Ext(n.Filename), ".tsv") {
		n.delim = '\t'
	}
	rd.Comma = n.delim
	recs, err := rd.ReadAll()
	if err != nil {
		return err
	}
	n.header, n.records = splitHeader(recs)
	n.columns = buildColumns(n.header, n.records)
	return nil
}

// CloseResources drops the parsed table.
func (n *Node) CloseResources() error {
	n.header = nil
	n.records = nil
	n.columns = nil
	return nil
}

// FetchMembers returns one child node per column.
func (n *Node) FetchMembers() ([]repo.Node, error) {
	kids := make([]repo.Node, len(n.columns))
	for i, col := range n.columns {
		cn := &ColumnNode{array: col}
		cn.SetName(n.columnName(i))
		kids[i] = cn
	}
	return kids, nil
}

// Array returns the whole table as a 2-D string array.
func (n *Node) Array() data.Array {
	if n.records == nil {
		return nil
	}
	ncol := 0
	for _, rec := range n.records {
		ncol = max(ncol, len(rec))
	}
	values := make([]string, 0, len(n.records)*ncol)
	for _, rec := range n.records {
		values = append(values, rec...)
		for j := len(rec); j < ncol; j++ {
			values = append(values, "")
		}
	}
	ar, err := data.NewDense(values, len(n.records), ncol)
	if err != nil {
		return nil
	}
	return ar
}

// Attrs reports the table dimensions and whether a header row was
// found.
func (n *Node) Attrs() metadata.Data {
	if n.records == nil && n.header == nil {
		return nil
	}
	md := metadata.Data{}
	md.Set("rows", len(n.records))
	md.Set("columns", len(n.columns))
	md.Set("has header", len(n.header) > 0)
	md.Set("delimiter", string(n.delim))
	return md
}

// DimNames labels the table's dimensions.
func (n *Node) DimNames() []string {
	return []string{"Row", "Column"}
}

func (n *Node) columnName(i int) string {
	if i < len(n.header) && n.header[i] != "" {
		return n.header[i]
	}
	return "column " + strconv.Itoa(i)
}

// splitHeader separates a header row from the data records. The first
// row is a header when it is non-empty and none of its cells parse as
// a number.
func splitHeader(recs [][]string) (header []string, records [][]string) {
	if len(recs) == 0 {
		return nil, nil
	}
	first := recs[0]
	if len(first) == 0 {
		return nil, recs
	}
	for _, cell := range first {
		if _, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
			return nil, recs
		}
	}
	return first, recs[1:]
}

// buildColumns extracts per-column arrays, parsed to float64 when
// every cell in the column is numeric.
func buildColumns(header []string, records [][]string) []data.Array {
	ncol := len(header)
	for _, rec := range records {
		ncol = max(ncol, len(rec))
	}
	cols := make([]data.Array, ncol)
	for j := range ncol {
		cells := make([]string, len(records))
		for i, rec := range records {
			if j < len(rec) {
				cells[i] = rec[j]
			}
		}
		cols[j] = columnArray(cells)
	}
	return cols
}

func columnArray(cells []string) data.Array {
	nums := make([]float64, len(cells))
	numeric := len(cells) > 0
	for i, cell := range cells {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			numeric = false
			break
		}
		nums[i] = v
	}
	if numeric {
		if ar, err := data.NewDense(nums, len(nums)); err == nil {
			return ar
		}
	}
	ar, err := data.NewDense(cells, len(cells))
	if err != nil {
		return nil
	}
	return ar
}

// ColumnNode is a leaf node exposing one column of a parsed table.
type ColumnNode struct {
	repo.BaseNode

	array data.Array
}

// CanFetch reports that columns have no children.
func (cn *ColumnNode) CanFetch() bool { return false }

// Array returns the column's values.
func (cn *ColumnNode) Array() data.Array { return cn.array }

// DimNames labels the column's single dimension.
func (cn *ColumnNode) DimNames() []string { return []string{"Row"} }
