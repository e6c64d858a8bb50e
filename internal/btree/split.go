package btree

import "rsql/internal/node"

// splitAndInsert handles the case where key's destination leaf is full. The
// existing cells plus the new one are redistributed across the old leaf
// (kept in place) and a freshly allocated leaf, split roughly in half, and
// the largest key kept in the old leaf is promoted to the parent as a
// separator.
func (t *Tree) splitAndInsert(oldPageNum, key uint32, row []byte) error {
	oldPage, err := t.pager.GetPage(oldPageNum)
	if err != nil {
		return err
	}
	oldBuf := oldPage.Data[:]
	numCells := node.NumCells(oldBuf)

	type cell struct {
		key uint32
		row []byte
	}
	cells := make([]cell, 0, numCells+1)
	inserted := false
	for i := uint32(0); i < numCells; i++ {
		k := leafKeyAt(oldBuf, i, t.cellSize)
		if !inserted && key < k {
			cells = append(cells, cell{key, row})
			inserted = true
		}
		r := make([]byte, t.rowSize)
		copy(r, leafRowAt(oldBuf, i, t.cellSize, t.rowSize))
		cells = append(cells, cell{k, r})
	}
	if !inserted {
		cells = append(cells, cell{key, row})
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
		writeLeafCell(oldBuf, i, t.cellSize, cells[i].key, cells[i].row)
	}
	node.SetNumCells(oldBuf, leftCount)

	for i := uint32(0); i < rightCount; i++ {
		writeLeafCell(newPage.Data[:], i, t.cellSize, cells[leftCount+i].key, cells[leftCount+i].row)
	}
	node.SetNumCells(newPage.Data[:], rightCount)

	splitKey := cells[leftCount-1].key
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

// createNewRoot handles the first split of all: the root leaf (page 0) is
// copied into a freshly allocated page, and page 0 is rewritten in place as
// an internal node with one key (splitKey) pointing at the relocated left
// leaf, and rightChild pointing at the new right leaf. Page 0 must remain
// the root forever, so it is the internal node that gets created here, not
// the leaves.
func (t *Tree) createNewRoot(splitKey, rightChild uint32) error {
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

// internalNodeInsert installs a new (key, child) separator into an internal
// node that has already split a child leaf. newChild's keys are all greater
// than newKey; newKey's existing left child (whatever was already reachable
// at that position, including via rightChild) is left pointing at the
// original, now-smaller leaf.
func (t *Tree) internalNodeInsert(parentPageNum, newKey, newChild uint32) error {
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
		if internalKeyAt(buf, i) > newKey {
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
