// Package btree is the clustered, page-0-rooted B+-Tree that backs every
// table: leaves hold full rows keyed by the table's integer primary key,
// and a single level of internal nodes (the root itself, once it has split)
// fans out to them.
package btree

import (
	"fmt"

	"rsql/internal/node"
	"rsql/internal/pager"
)

// ErrDuplicateKey is returned by Insert when the key already exists.
var ErrDuplicateKey = fmt.Errorf("btree: duplicate key")

// ErrNotFound is returned by Delete and Update when the key is absent.
var ErrNotFound = fmt.Errorf("btree: key not found")

// ErrInternalOverflow is returned when a leaf split would need to insert one
// more separator key into an already-full internal root. Splitting the
// internal node itself (growing the tree to two levels) is out of scope.
var ErrInternalOverflow = fmt.Errorf("btree: internal overflow not supported")

// Row is one key/payload pair as returned by SelectAll. Data is a copy of
// the stored row, safe to retain.
type Row struct {
	Key  uint32
	Data []byte
}

// Tree is a clustered B+-Tree over a single pager. Page 0 is always its
// root, whether that root is currently a leaf or has split into an
// internal node.
type Tree struct {
	pager      *pager.Pager
	rowSize    uint32
	cellSize   uint32
	deferFlush *bool
}

// New wraps pgr in a Tree sized for rows of rowSize bytes. If the backing
// file was empty, page 0 is initialized as an empty leaf root and flushed
// immediately regardless of deferFlush, since tree creation happens outside
// any transaction. deferFlush, when non-nil and true, suppresses every
// subsequent Flush call so a ROLLBACK can discard buffered writes via
// pgr.Clear.
func New(pgr *pager.Pager, rowSize uint32, deferFlush *bool) (*Tree, error) {
	t := &Tree{
		pager:      pgr,
		rowSize:    rowSize,
		cellSize:   4 + rowSize,
		deferFlush: deferFlush,
	}
	if pgr.NumPages() == 0 {
		root, err := pgr.GetPage(0)
		if err != nil {
			return nil, err
		}
		node.InitLeaf(root.Data[:])
		node.SetIsRoot(root.Data[:], true)
		if err := pgr.Flush(0); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Tree) flush(pageNum uint32) error {
	if t.deferFlush != nil && *t.deferFlush {
		return nil
	}
	return t.pager.Flush(pageNum)
}

func (t *Tree) maxCells() uint32 {
	return maxLeafCells(t.cellSize)
}

// findLeaf descends from the root to the leaf that would contain key.
func (t *Tree) findLeaf(key uint32) (uint32, error) {
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

// Find reports whether key exists, and if so which leaf page and slot it
// occupies.
func (t *Tree) Find(key uint32) (pageNum, slot uint32, exists bool, err error) {
	pageNum, err = t.findLeaf(key)
	if err != nil {
		return 0, 0, false, err
	}
	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return 0, 0, false, err
	}
	slot, exists = leafFindSlot(page.Data[:], key, t.cellSize)
	return pageNum, slot, exists, nil
}

// Get returns a copy of the row stored under key, if any.
func (t *Tree) Get(key uint32) (row []byte, exists bool, err error) {
	pageNum, slot, exists, err := t.Find(key)
	if err != nil || !exists {
		return nil, exists, err
	}
	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return nil, false, err
	}
	src := leafRowAt(page.Data[:], slot, t.cellSize, t.rowSize)
	row = make([]byte, len(src))
	copy(row, src)
	return row, true, nil
}

// Insert adds (key, row) to the tree. row must be exactly rowSize bytes.
// Returns ErrDuplicateKey if key is already present.
func (t *Tree) Insert(key uint32, row []byte) error {
	if uint32(len(row)) != t.rowSize {
		return fmt.Errorf("btree: row is %d bytes, want %d", len(row), t.rowSize)
	}
	leafPageNum, err := t.findLeaf(key)
	if err != nil {
		return err
	}
	page, err := t.pager.GetPage(leafPageNum)
	if err != nil {
		return err
	}
	buf := page.Data[:]
	slot, exists := leafFindSlot(buf, key, t.cellSize)
	if exists {
		return ErrDuplicateKey
	}

	numCells := node.NumCells(buf)
	if numCells < t.maxCells() {
		for i := numCells; i > slot; i-- {
			copyLeafCell(buf, i, i-1, t.cellSize)
		}
		writeLeafCell(buf, slot, t.cellSize, key, row)
		node.SetNumCells(buf, numCells+1)
		return t.flush(leafPageNum)
	}
	return t.splitAndInsert(leafPageNum, key, row)
}

// Update overwrites the row payload stored under key, leaving the key and
// tree shape unchanged.
func (t *Tree) Update(key uint32, row []byte) error {
	if uint32(len(row)) != t.rowSize {
		return fmt.Errorf("btree: row is %d bytes, want %d", len(row), t.rowSize)
	}
	leafPageNum, slot, exists, err := t.Find(key)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	page, err := t.pager.GetPage(leafPageNum)
	if err != nil {
		return err
	}
	copy(leafRowAt(page.Data[:], slot, t.cellSize, t.rowSize), row)
	return t.flush(leafPageNum)
}

// Delete removes key and its row from the tree. It never rebalances or
// merges leaves.
func (t *Tree) Delete(key uint32) error {
	leafPageNum, slot, exists, err := t.Find(key)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	page, err := t.pager.GetPage(leafPageNum)
	if err != nil {
		return err
	}
	buf := page.Data[:]
	numCells := node.NumCells(buf)
	for i := slot; i < numCells-1; i++ {
		copyLeafCell(buf, i, i+1, t.cellSize)
	}
	node.SetNumCells(buf, numCells-1)
	return t.flush(leafPageNum)
}

// Scan walks every row in key order, following the leftmost-leaf-then-
// next_leaf chain, invoking fn for each. fn's row slice aliases the page
// cache and must not be retained past the call.
func (t *Tree) Scan(fn func(key uint32, row []byte) error) error {
	pageNum, err := t.leftmostLeaf()
	if err != nil {
		return err
	}
	for {
		page, err := t.pager.GetPage(pageNum)
		if err != nil {
			return err
		}
		buf := page.Data[:]
		numCells := node.NumCells(buf)
		for i := uint32(0); i < numCells; i++ {
			key := leafKeyAt(buf, i, t.cellSize)
			row := leafRowAt(buf, i, t.cellSize, t.rowSize)
			if err := fn(key, row); err != nil {
				return err
			}
		}
		next := node.NextLeaf(buf)
		if next == 0 {
			return nil
		}
		pageNum = next
	}
}

// SelectAll collects every row in key order. Each Row's Data is a copy,
// safe to retain.
func (t *Tree) SelectAll() ([]Row, error) {
	var rows []Row
	err := t.Scan(func(key uint32, row []byte) error {
		data := make([]byte, len(row))
		copy(data, row)
		rows = append(rows, Row{Key: key, Data: data})
		return nil
	})
	return rows, err
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
