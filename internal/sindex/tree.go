// Package sindex is the string-keyed B+-Tree behind a secondary index: the
// same page layout as the primary tree, but with 64-byte truncated keys,
// 68-byte cells, and support for duplicate keys when the index is not
// UNIQUE.
package sindex

import (
	"bytes"
	"fmt"

	"rsql/internal/node"
	"rsql/internal/pager"
)

// ErrUniqueViolation is returned by Insert on a unique index when key is
// already present.
var ErrUniqueViolation = fmt.Errorf("sindex: unique constraint violated")

// ErrNotFound is returned by Delete when no cell matches (key, rowID).
var ErrNotFound = fmt.Errorf("sindex: entry not found")

// Entry is one (key, row id) pair, used by SelectAll and Rebuild.
type Entry struct {
	Key   string
	RowID uint32
}

// Tree is a secondary index's B+-Tree. Page 0 is always its root.
type Tree struct {
	pager      *pager.Pager
	unique     bool
	deferFlush *bool
}

// New wraps pgr as an index tree. unique enforces uniqueness on Insert. If
// the backing file was empty, page 0 is initialized as an empty leaf root
// and flushed unconditionally.
func New(pgr *pager.Pager, unique bool, deferFlush *bool) (*Tree, error) {
	t := &Tree{pager: pgr, unique: unique, deferFlush: deferFlush}
	if pgr.NumPages() == 0 {
		if err := t.initRoot(); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Tree) initRoot() error {
	root, err := t.pager.GetPage(0)
	if err != nil {
		return err
	}
	node.InitLeaf(root.Data[:])
	node.SetIsRoot(root.Data[:], true)
	return t.pager.Flush(0)
}

func (t *Tree) flush(pageNum uint32) error {
	if t.deferFlush != nil && *t.deferFlush {
		return nil
	}
	return t.pager.Flush(pageNum)
}

func (t *Tree) findLeaf(key Key) (uint32, error) {
	pageNum := uint32(0)
	for {
		page, err := t.pager.GetPage(pageNum)
		if err != nil {
			return 0, err
		}
		if node.NodeType(page.Data[:]) == node.Leaf {
			return pageNum, nil
		}
		pageNum = internalChildForKey(page.Data[:], key)
	}
}

// Find returns every row id stored under key within its leaf. Duplicates
// that might span adjacent leaves are not searched for; the contract only
// requires the leaf that would hold key.
func (t *Tree) Find(key string) ([]uint32, error) {
	normKey := NormalizeKey(key)
	leafPageNum, err := t.findLeaf(normKey)
	if err != nil {
		return nil, err
	}
	page, err := t.pager.GetPage(leafPageNum)
	if err != nil {
		return nil, err
	}
	buf := page.Data[:]
	numCells := node.NumCells(buf)
	var ids []uint32
	for i := uint32(0); i < numCells; i++ {
		k := leafKeyAt(buf, i)
		if bytes.Equal(k[:], normKey[:]) {
			ids = append(ids, leafRowIDAt(buf, i))
		}
	}
	return ids, nil
}

// Insert adds (key, rowID). On a unique index it fails with
// ErrUniqueViolation if key already maps to any row.
func (t *Tree) Insert(key string, rowID uint32) error {
	if t.unique {
		existing, err := t.Find(key)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return ErrUniqueViolation
		}
	}

	normKey := NormalizeKey(key)
	leafPageNum, err := t.findLeaf(normKey)
	if err != nil {
		return err
	}
	page, err := t.pager.GetPage(leafPageNum)
	if err != nil {
		return err
	}
	buf := page.Data[:]
	slot := leafFindInsertSlot(buf, normKey)
	numCells := node.NumCells(buf)

	if numCells < maxLeafCells() {
		for i := numCells; i > slot; i-- {
			copyLeafCell(buf, i, i-1)
		}
		writeLeafCell(buf, slot, normKey, rowID)
		node.SetNumCells(buf, numCells+1)
		return t.flush(leafPageNum)
	}
	return t.splitAndInsert(leafPageNum, normKey, rowID)
}

// Delete removes the cell matching both key and rowID.
func (t *Tree) Delete(key string, rowID uint32) error {
	normKey := NormalizeKey(key)
	leafPageNum, err := t.findLeaf(normKey)
	if err != nil {
		return err
	}
	page, err := t.pager.GetPage(leafPageNum)
	if err != nil {
		return err
	}
	buf := page.Data[:]
	numCells := node.NumCells(buf)
	slot := numCells
	for i := uint32(0); i < numCells; i++ {
		k := leafKeyAt(buf, i)
		if bytes.Equal(k[:], normKey[:]) && leafRowIDAt(buf, i) == rowID {
			slot = i
			break
		}
	}
	if slot == numCells {
		return ErrNotFound
	}
	for i := slot; i < numCells-1; i++ {
		copyLeafCell(buf, i, i+1)
	}
	node.SetNumCells(buf, numCells-1)
	return t.flush(leafPageNum)
}

// SelectAll walks every leaf in key order and collects its entries.
func (t *Tree) SelectAll() ([]Entry, error) {
	pageNum, err := t.leftmostLeaf()
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for {
		page, err := t.pager.GetPage(pageNum)
		if err != nil {
			return nil, err
		}
		buf := page.Data[:]
		numCells := node.NumCells(buf)
		for i := uint32(0); i < numCells; i++ {
			k := leafKeyAt(buf, i)
			entries = append(entries, Entry{
				Key:   trimTrailingZeros(k[:]),
				RowID: leafRowIDAt(buf, i),
			})
		}
		next := node.NextLeaf(buf)
		if next == 0 {
			return entries, nil
		}
		pageNum = next
	}
}

func (t *Tree) leftmostLeaf() (uint32, error) {
	pageNum := uint32(0)
	for {
		page, err := t.pager.GetPage(pageNum)
		if err != nil {
			return 0, err
		}
		buf := page.Data[:]
		if node.NodeType(buf) == node.Leaf {
			return pageNum, nil
		}
		pageNum = internalChildAt(buf, 0)
	}
}

func trimTrailingZeros(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end])
}

// Rebuild discards the index's backing file and contents, recreating it as
// an empty leaf root, then re-inserts every entry.
func (t *Tree) Rebuild(entries []Entry) error {
	if err := t.pager.Reset(); err != nil {
		return err
	}
	if err := t.initRoot(); err != nil {
		return err
	}
	for _, e := range entries {
		if err := t.Insert(e.Key, e.RowID); err != nil {
			return err
		}
	}
	return nil
}
