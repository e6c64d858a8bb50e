// Package table ties a column schema to a clustered B+-Tree and the set of
// secondary indexes declared on it, translating SQL-level row values to
// and from the tree's key/payload cells.
package table

import (
	"fmt"
	"strconv"

	"rsql/internal/btree"
	"rsql/internal/column"
	"rsql/internal/dberrors"
	"rsql/internal/pager"
	"rsql/internal/sindex"
)

// Row is one decoded record: PK is column 0's integer value, Values holds
// every column (including PK at index 0) as its SQL text representation.
type Row struct {
	PK     uint32
	Values []string
}

// Index is one secondary index declared on a table column.
type Index struct {
	Name   string
	Column string
	Unique bool
	pager  *pager.Pager
	tree   *sindex.Tree
}

// Table owns a schema, a pager-backed clustered B+-Tree keyed on column 0,
// and zero or more secondary indexes.
type Table struct {
	Name    string
	Schema  column.Schema
	RowSize uint32

	pager *pager.Pager
	tree  *btree.Tree

	Indexes map[string]*Index
}

// Open creates or reopens a table's backing file and its B+-Tree. deferFlush
// is a pointer to the owning database's transaction flag, shared across
// every table and index so BEGIN/COMMIT/ROLLBACK apply uniformly.
func Open(name, path string, schema column.Schema, deferFlush *bool) (*Table, error) {
	p, err := pager.Open(path)
	if err != nil {
		return nil, err
	}
	rowSize := schema.RowSize()
	tr, err := btree.New(p, rowSize, deferFlush)
	if err != nil {
		return nil, err
	}
	return &Table{
		Name:    name,
		Schema:  schema,
		RowSize: rowSize,
		pager:   p,
		tree:    tr,
		Indexes: make(map[string]*Index),
	}, nil
}

// OpenIndex creates or reopens a secondary index's backing file and tree,
// and attaches it to the table under its declared name.
func (t *Table) OpenIndex(name, path, column string, unique bool, deferFlush *bool) error {
	p, err := pager.Open(path)
	if err != nil {
		return err
	}
	tr, err := sindex.New(p, unique, deferFlush)
	if err != nil {
		return err
	}
	t.Indexes[name] = &Index{
		Name:   name,
		Column: column,
		Unique: unique,
		pager:  p,
		tree:   tr,
	}
	return nil
}

// DropIndex detaches and deletes an index.
func (t *Table) DropIndex(name string) {
	delete(t.Indexes, name)
}

// Insert parses values[0] as the integer primary key, checks every UNIQUE
// index before writing anything (per the source's ordering), writes the
// row, then updates every index.
func (t *Table) Insert(values []string) error {
	if len(values) != len(t.Schema) {
		return fmt.Errorf("table: %d values for %d columns", len(values), len(t.Schema))
	}
	pk, err := strconv.ParseUint(values[0], 10, 32)
	if err != nil {
		return dberrors.ErrInvalidID
	}

	for _, idx := range t.Indexes {
		if !idx.Unique {
			continue
		}
		col, ok := t.Schema.ByName(idx.Column)
		if !ok {
			return dberrors.ErrColumnNotFound
		}
		existing, err := idx.tree.Find(values[t.columnPosition(col.Name)])
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return dberrors.ErrUniqueViolation
		}
	}

	row, err := SerializeRow(t.Schema, t.RowSize, values)
	if err != nil {
		return err
	}
	if err := t.tree.Insert(uint32(pk), row); err != nil {
		if err == btree.ErrDuplicateKey {
			return dberrors.ErrDuplicatePrimaryKey
		}
		return err
	}

	for _, idx := range t.Indexes {
		pos := t.columnPosition(idx.Column)
		if err := idx.tree.Insert(values[pos], uint32(pk)); err != nil {
			return err
		}
	}
	return nil
}

// Update rewrites the row stored under pk and keeps every index in sync,
// removing the old indexed value and inserting the new one.
func (t *Table) Update(pk uint32, values []string) error {
	if len(values) != len(t.Schema) {
		return fmt.Errorf("table: %d values for %d columns", len(values), len(t.Schema))
	}
	old, exists, err := t.find(pk)
	if err != nil {
		return err
	}
	if !exists {
		return dberrors.ErrTableNotFound
	}

	row, err := SerializeRow(t.Schema, t.RowSize, values)
	if err != nil {
		return err
	}
	if err := t.tree.Update(pk, row); err != nil {
		return err
	}

	for _, idx := range t.Indexes {
		pos := t.columnPosition(idx.Column)
		if old.Values[pos] != values[pos] {
			if err := idx.tree.Delete(old.Values[pos], pk); err != nil && err != sindex.ErrNotFound {
				return err
			}
			if err := idx.tree.Insert(values[pos], pk); err != nil {
				return err
			}
		}
	}
	return nil
}

// Delete removes the row under pk and every index entry that referenced it.
func (t *Table) Delete(pk uint32) error {
	old, exists, err := t.find(pk)
	if err != nil {
		return err
	}
	if !exists {
		return dberrors.ErrTableNotFound
	}
	if err := t.tree.Delete(pk); err != nil {
		return err
	}
	for _, idx := range t.Indexes {
		pos := t.columnPosition(idx.Column)
		if err := idx.tree.Delete(old.Values[pos], pk); err != nil && err != sindex.ErrNotFound {
			return err
		}
	}
	return nil
}

func (t *Table) find(pk uint32) (Row, bool, error) {
	data, exists, err := t.tree.Get(pk)
	if err != nil || !exists {
		return Row{}, exists, err
	}
	values, err := DeserializeRow(t.Schema, data, pk)
	if err != nil {
		return Row{}, false, err
	}
	return Row{PK: pk, Values: values}, true, nil
}

// SelectAll returns every row in primary-key order.
func (t *Table) SelectAll() ([]Row, error) {
	raw, err := t.tree.SelectAll()
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(raw))
	for _, r := range raw {
		values, err := DeserializeRow(t.Schema, r.Data, r.Key)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Row{PK: r.Key, Values: values})
	}
	return rows, nil
}

// RebuildIndex repopulates idx from the table's current contents, used by
// CREATE INDEX.
func (t *Table) RebuildIndex(name string) error {
	idx, ok := t.Indexes[name]
	if !ok {
		return dberrors.ErrIndexNotFound
	}
	rows, err := t.SelectAll()
	if err != nil {
		return err
	}
	pos := t.columnPosition(idx.Column)
	entries := make([]sindex.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, sindex.Entry{Key: r.Values[pos], RowID: r.PK})
	}
	return idx.tree.Rebuild(entries)
}

// FlushAll writes every cached page of the table and its indexes to disk,
// used by COMMIT.
func (t *Table) FlushAll() error {
	if err := t.pager.FlushAll(); err != nil {
		return err
	}
	for _, idx := range t.Indexes {
		if err := idx.pager.FlushAll(); err != nil {
			return err
		}
	}
	return nil
}

// ClearCache discards every cached-but-unflushed page of the table and its
// indexes, used by ROLLBACK.
func (t *Table) ClearCache() error {
	if err := t.pager.Clear(); err != nil {
		return err
	}
	for _, idx := range t.Indexes {
		if err := idx.pager.Clear(); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) columnPosition(name string) int {
	for i, c := range t.Schema {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Close flushes and closes the table's file and every index's file.
func (t *Table) Close() error {
	if err := t.pager.Close(); err != nil {
		return err
	}
	for _, idx := range t.Indexes {
		if err := idx.pager.Close(); err != nil {
			return err
		}
	}
	return nil
}
