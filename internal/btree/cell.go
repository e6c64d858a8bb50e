package btree

import (
	"encoding/binary"

	"rsql/internal/node"
	"rsql/internal/pager"
)

// internalCellSize is the on-disk size of one internal-node cell: a child
// page number (4 bytes) followed by a key (4 bytes).
const internalCellSize = 8

func leafCellOffset(i, cellSize uint32) uint32 {
	return node.LeafHeaderSize + i*cellSize
}

func leafKeyAt(buf []byte, i, cellSize uint32) uint32 {
	off := leafCellOffset(i, cellSize)
	return binary.LittleEndian.Uint32(buf[off : off+4])
}

func setLeafKeyAt(buf []byte, i, cellSize, key uint32) {
	off := leafCellOffset(i, cellSize)
	binary.LittleEndian.PutUint32(buf[off:off+4], key)
}

func leafRowAt(buf []byte, i, cellSize, rowSize uint32) []byte {
	off := leafCellOffset(i, cellSize) + 4
	return buf[off : off+rowSize]
}

// copyLeafCell copies cell src to cell dst within the same page.
func copyLeafCell(buf []byte, dst, src, cellSize uint32) {
	dstOff := leafCellOffset(dst, cellSize)
	srcOff := leafCellOffset(src, cellSize)
	copy(buf[dstOff:dstOff+cellSize], buf[srcOff:srcOff+cellSize])
}

func writeLeafCell(buf []byte, i, cellSize uint32, key uint32, row []byte) {
	setLeafKeyAt(buf, i, cellSize, key)
	copy(leafRowAt(buf, i, cellSize, uint32(len(row))), row)
}

func maxLeafCells(cellSize uint32) uint32 {
	return (pager.PageSize - node.LeafHeaderSize) / cellSize
}

func internalCellOffset(i uint32) uint32 {
	return node.InternalHeaderSize + i*internalCellSize
}

func internalChildAt(buf []byte, i uint32) uint32 {
	off := internalCellOffset(i)
	return binary.LittleEndian.Uint32(buf[off : off+4])
}

func setInternalChildAt(buf []byte, i, v uint32) {
	off := internalCellOffset(i)
	binary.LittleEndian.PutUint32(buf[off:off+4], v)
}

func internalKeyAt(buf []byte, i uint32) uint32 {
	off := internalCellOffset(i) + 4
	return binary.LittleEndian.Uint32(buf[off : off+4])
}

func setInternalKeyAt(buf []byte, i, key uint32) {
	off := internalCellOffset(i) + 4
	binary.LittleEndian.PutUint32(buf[off:off+4], key)
}

func maxInternalKeys() uint32 {
	return (pager.PageSize - node.InternalHeaderSize) / internalCellSize
}

// internalFindChildIndex returns the smallest index i such that key_i >= key,
// or numKeys if there is no such key (meaning the right child).
func internalFindChildIndex(buf []byte, key uint32) uint32 {
	numKeys := node.NumKeys(buf)
	lo, hi := uint32(0), numKeys
	for lo < hi {
		mid := (lo + hi) / 2
		if internalKeyAt(buf, mid) >= key {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// internalChildForKey resolves which child page to descend into for key.
func internalChildForKey(buf []byte, key uint32) uint32 {
	idx := internalFindChildIndex(buf, key)
	if idx == node.NumKeys(buf) {
		return node.RightChild(buf)
	}
	return internalChildAt(buf, idx)
}

// leafFindSlot binary searches a leaf's cells for key, returning the
// insertion slot and whether key is already present.
func leafFindSlot(buf []byte, key, cellSize uint32) (slot uint32, exists bool) {
	numCells := node.NumCells(buf)
	lo, hi := uint32(0), numCells
	for lo < hi {
		mid := (lo + hi) / 2
		k := leafKeyAt(buf, mid, cellSize)
		if k == key {
			return mid, true
		}
		if k < key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, false
}
