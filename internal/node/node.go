// Package node is a collection of pure accessors over a 4 KiB page buffer.
// Every multibyte field is read and written unaligned, little-endian,
// because cells do not obey 4-byte alignment. It knows nothing about pages
// or files; it operates on a plain []byte so both the primary B+-Tree and
// the secondary index B+-Tree can share the header layout.
package node

import "encoding/binary"

// Type distinguishes leaf pages from internal pages.
type Type byte

const (
	Internal Type = 0
	Leaf     Type = 1
)

// Common header (6 bytes): node_type (1), is_root (1), parent_page_number (4).
const (
	typeOffset   = 0
	isRootOffset = 1
	parentOffset = 2

	CommonHeaderSize = 6
)

// Leaf header adds num_cells (4) and next_leaf_page_number (4).
const (
	leafNumCellsOffset = CommonHeaderSize
	leafNextLeafOffset = CommonHeaderSize + 4

	LeafHeaderSize = CommonHeaderSize + 8
)

// Internal header adds num_keys (4) and right_child_page_number (4).
const (
	internalNumKeysOffset   = CommonHeaderSize
	internalRightChildOffset = CommonHeaderSize + 4

	InternalHeaderSize = CommonHeaderSize + 8
)

func NodeType(buf []byte) Type {
	return Type(buf[typeOffset])
}

func SetNodeType(buf []byte, t Type) {
	buf[typeOffset] = byte(t)
}

func IsRoot(buf []byte) bool {
	return buf[isRootOffset] != 0
}

func SetIsRoot(buf []byte, v bool) {
	if v {
		buf[isRootOffset] = 1
	} else {
		buf[isRootOffset] = 0
	}
}

func Parent(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[parentOffset : parentOffset+4])
}

func SetParent(buf []byte, pageNum uint32) {
	binary.LittleEndian.PutUint32(buf[parentOffset:parentOffset+4], pageNum)
}

func NumCells(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[leafNumCellsOffset : leafNumCellsOffset+4])
}

func SetNumCells(buf []byte, n uint32) {
	binary.LittleEndian.PutUint32(buf[leafNumCellsOffset:leafNumCellsOffset+4], n)
}

// NextLeaf returns the successor leaf's page number, or 0 for "no
// successor" (page 0 can never be a leaf's successor, since page 0 is
// always the root).
func NextLeaf(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[leafNextLeafOffset : leafNextLeafOffset+4])
}

func SetNextLeaf(buf []byte, pageNum uint32) {
	binary.LittleEndian.PutUint32(buf[leafNextLeafOffset:leafNextLeafOffset+4], pageNum)
}

func NumKeys(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[internalNumKeysOffset : internalNumKeysOffset+4])
}

func SetNumKeys(buf []byte, n uint32) {
	binary.LittleEndian.PutUint32(buf[internalNumKeysOffset:internalNumKeysOffset+4], n)
}

func RightChild(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[internalRightChildOffset : internalRightChildOffset+4])
}

func SetRightChild(buf []byte, pageNum uint32) {
	binary.LittleEndian.PutUint32(buf[internalRightChildOffset:internalRightChildOffset+4], pageNum)
}

// InitLeaf zeroes the header and sets the not-root, zero-cells, no-parent,
// no-successor defaults.
func InitLeaf(buf []byte) {
	for i := 0; i < LeafHeaderSize; i++ {
		buf[i] = 0
	}
	SetNodeType(buf, Leaf)
}

// InitInternal zeroes the header and sets the not-root, zero-keys,
// no-parent, no-right-child defaults.
func InitInternal(buf []byte) {
	for i := 0; i < InternalHeaderSize; i++ {
		buf[i] = 0
	}
	SetNodeType(buf, Internal)
}
