package sindex

import (
	"bytes"
	"fmt"

	"rsql/internal/node"
)

// ErrInternalOverflow is returned when a leaf split would need one more
// separator key in an already-full internal root.
var ErrInternalOverflow = fmt.Errorf("sindex: internal overflow not supported")

func compareKeys(a, b Key) int {
	return bytes.Compare(a[:], b[:])
}

// splitAndInsert mirrors the primary tree's split (see internal/btree), with
// one deliberate difference: the key promoted to the parent is the first
// key of the new right leaf, not the last key kept in the left leaf. This
// matches the source's indexing behaviour and keeps lookups for the
// smallest key in the right subtree correct even when the index holds
// duplicate keys spanning the split point.
func (t *Tree) splitAndInsert(oldPageNum uint32, key Key, rowID uint32) error {
	oldPage, err := t.pager.GetPage(oldPageNum)
	if err != nil {
		return err
	}
	oldBuf := oldPage.Data[:]
	numCells := node.NumCells(oldBuf)

	type cell struct {
		key   Key
		rowID uint32
	}
	cells := make([]cell, 0, numCells+1)
	slot := leafFindInsertSlot(oldBuf, key)
	for i := uint32(0); i < numCells; i++ {
		if i == slot {
			cells = append(cells, cell{key, rowID})
		}
		cells = append(cells, cell{leafKeyAt(oldBuf, i), leafRowIDAt(oldBuf, i)})
	}
	if slot == numCells {
		cells = append(cells, cell{key, rowID})
	}

	newPageNum := t.pager.NumPages()
	newPage, err := t.pager.GetPage(newPageNum)
	if err != nil {
		return err
	}
	node.InitLeaf(newPage.Data[:])

	oldNext := node.NextLeaf(oldBuf)
	node.SetNextLeaf(oldBuf, newPageNum)
	node.SetNextLeaf(newPage.Data[:], oldNext)

	leftCount := uint32((len(cells) + 1) / 2)
	rightCount := uint32(len(cells)) - leftCount

	for i := uint32(0); i < leftCount; i++ {
		writeLeafCell(oldBuf, i, cells[i].key, cells[i].rowID)
	}
	node.SetNumCells(oldBuf, leftCount)

	for i := uint32(0); i < rightCount; i++ {
		writeLeafCell(newPage.Data[:], i, cells[leftCount+i].key, cells[leftCount+i].rowID)
	}
	node.SetNumCells(newPage.Data[:], rightCount)

	splitKey := cells[leftCount].key
	wasRoot := node.IsRoot(oldBuf)
	parent := node.Parent(oldBuf)

	if wasRoot {
		if err := t.createNewRoot(splitKey, newPageNum); err != nil {
			return err
		}
	} else {
		node.SetParent(newPage.Data[:], parent)
		if err := t.internalNodeInsert(parent, splitKey, newPageNum); err != nil {
			return err
		}
	}

	if err := t.flush(oldPageNum); err != nil {
		return err
	}
	return t.flush(newPageNum)
}

func (t *Tree) createNewRoot(splitKey Key, rightChild uint32) error {
	root, err := t.pager.GetPage(0)
	if err != nil {
		return err
	}

	leftPageNum := t.pager.NumPages()
	leftPage, err := t.pager.GetPage(leftPageNum)
	if err != nil {
		return err
	}
	leftPage.Data = root.Data
	node.SetIsRoot(leftPage.Data[:], false)
	node.SetParent(leftPage.Data[:], 0)

	rightPage, err := t.pager.GetPage(rightChild)
	if err != nil {
		return err
	}
	node.SetParent(rightPage.Data[:], 0)

	node.InitInternal(root.Data[:])
	node.SetIsRoot(root.Data[:], true)
	node.SetNumKeys(root.Data[:], 1)
	setInternalChildAt(root.Data[:], 0, leftPageNum)
	setInternalKeyAt(root.Data[:], 0, splitKey)
	node.SetRightChild(root.Data[:], rightChild)

	if err := t.flush(0); err != nil {
		return err
	}
	if err := t.flush(leftPageNum); err != nil {
		return err
	}
	return t.flush(rightChild)
}

func (t *Tree) internalNodeInsert(parentPageNum uint32, newKey Key, newChild uint32) error {
	page, err := t.pager.GetPage(parentPageNum)
	if err != nil {
		return err
	}
	buf := page.Data[:]
	oldNumKeys := node.NumKeys(buf)
	if oldNumKeys >= maxInternalKeys() {
		return ErrInternalOverflow
	}
	newNumKeys := oldNumKeys + 1

	insertIndex := oldNumKeys
	for i := uint32(0); i < oldNumKeys; i++ {
		if compareKeys(internalKeyAt(buf, i), newKey) > 0 {
			insertIndex = i
			break
		}
	}

	oldRightChild := node.RightChild(buf)
	getChild := func(i uint32) uint32 {
		if i == oldNumKeys {
			return oldRightChild
		}
		return internalChildAt(buf, i)
	}
	setChild := func(i, v uint32) {
		if i == newNumKeys {
			node.SetRightChild(buf, v)
		} else {
			setInternalChildAt(buf, i, v)
		}
	}

	for i := oldNumKeys; i > insertIndex; i-- {
		setChild(i+1, getChild(i))
		setInternalKeyAt(buf, i, internalKeyAt(buf, i-1))
	}
	setChild(insertIndex, getChild(insertIndex))
	setChild(insertIndex+1, newChild)
	setInternalKeyAt(buf, insertIndex, newKey)
	node.SetNumKeys(buf, newNumKeys)

	return t.flush(parentPageNum)
}
