package storage

import (
	"encoding/binary"

	"github.com/dustin/go-humanize"

	"rtreedb/pkg/errs"
	"rtreedb/pkg/rnode"
)

// HeaderSize is the fixed file header: dimension (4 bytes), node size
// (8 bytes), split-type discriminant (1 byte).
const HeaderSize = 13

// encodeHeader serializes the file header per the on-disk format: dim
// uint32 LE, nodeSize uint64 LE, splitType uint8.
func encodeHeader(dim, nodeSize int, st byte) []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(dim))
	binary.LittleEndian.PutUint64(buf[4:12], uint64(nodeSize))
	buf[12] = st
	return buf
}

// decodeHeader parses the file header, returning an error if the
// recorded split type is not one of the three known kinds.
func decodeHeader(buf []byte) (dim, nodeSize int, st byte, err error) {
	if len(buf) < HeaderSize {
		return 0, 0, 0, &errs.ConfigError{Msg: "header too short to be a valid r-tree file"}
	}
	dim = int(binary.LittleEndian.Uint32(buf[0:4]))
	nodeSize = int(binary.LittleEndian.Uint64(buf[4:12]))
	st = buf[12]
	if dim < 1 {
		return 0, 0, 0, &errs.ConfigError{Msg: "corrupt header: dimension must be at least 1"}
	}
	if st < 1 || st > 3 {
		return 0, 0, 0, &errs.ConfigError{Msg: "corrupt header: unknown split type discriminant"}
	}
	return dim, nodeSize, st, nil
}

// encodeNode serializes n into a freshly allocated nodeSize-byte page,
// per the node page layout: byte 0 is_leaf, bytes 1..9 entry count LE,
// then packed entries. Trailing bytes are left zeroed.
func encodeNode(n rnode.Node, dim, nodeSize int) ([]byte, error) {
	needed := rnode.NodeHeaderSize + n.Len()*rnode.EntrySize(dim, n.IsLeaf)
	if needed > nodeSize {
		return nil, &errs.InvariantViolation{Msg: "node_size too small for this dimension: need " +
			humanize.Bytes(uint64(needed)) + " but node_size is " + humanize.Bytes(uint64(nodeSize))}
	}

	buf := make([]byte, nodeSize)
	if n.IsLeaf {
		buf[0] = 1
	} else {
		buf[0] = 0
	}
	binary.LittleEndian.PutUint64(buf[1:9], uint64(n.Len()))

	off := rnode.NodeHeaderSize
	if n.IsLeaf {
		for _, e := range n.Leaves {
			for _, c := range e.Coord {
				binary.LittleEndian.PutUint64(buf[off:off+8], uint64(c))
				off += 8
			}
			binary.LittleEndian.PutUint64(buf[off:off+8], uint64(e.Data))
			off += 8
		}
	} else {
		for _, e := range n.Children {
			for _, c := range e.Lo {
				binary.LittleEndian.PutUint64(buf[off:off+8], uint64(c))
				off += 8
			}
			for _, c := range e.Hi {
				binary.LittleEndian.PutUint64(buf[off:off+8], uint64(c))
				off += 8
			}
			binary.LittleEndian.PutUint64(buf[off:off+8], uint64(e.Child))
			off += 8
		}
	}
	return buf, nil
}

// decodeNode reconstructs a Node from a raw nodeSize-byte page. Trailing
// bytes beyond the entries actually written are ignored.
func decodeNode(buf []byte, dim int) (rnode.Node, error) {
	if len(buf) < rnode.NodeHeaderSize {
		return rnode.Node{}, &errs.InvariantViolation{Msg: "page shorter than the node header"}
	}
	isLeaf := buf[0] != 0
	count := int(binary.LittleEndian.Uint64(buf[1:9]))

	entrySize := rnode.EntrySize(dim, isLeaf)
	needed := rnode.NodeHeaderSize + count*entrySize
	if needed > len(buf) {
		return rnode.Node{}, &errs.InvariantViolation{Msg: "page too short for its recorded entry count"}
	}

	n := rnode.Node{IsLeaf: isLeaf}
	off := rnode.NodeHeaderSize
	if isLeaf {
		n.Leaves = make([]rnode.LeafEntry, count)
		for i := 0; i < count; i++ {
			coord := make([]int64, dim)
			for j := 0; j < dim; j++ {
				coord[j] = int64(binary.LittleEndian.Uint64(buf[off : off+8]))
				off += 8
			}
			data := int64(binary.LittleEndian.Uint64(buf[off : off+8]))
			off += 8
			n.Leaves[i] = rnode.LeafEntry{Coord: coord, Data: data}
		}
	} else {
		n.Children = make([]rnode.NonLeafEntry, count)
		for i := 0; i < count; i++ {
			lo := make([]int64, dim)
			for j := 0; j < dim; j++ {
				lo[j] = int64(binary.LittleEndian.Uint64(buf[off : off+8]))
				off += 8
			}
			hi := make([]int64, dim)
			for j := 0; j < dim; j++ {
				hi[j] = int64(binary.LittleEndian.Uint64(buf[off : off+8]))
				off += 8
			}
			child := uint32(binary.LittleEndian.Uint64(buf[off : off+8]))
			off += 8
			n.Children[i] = rnode.NonLeafEntry{Lo: lo, Hi: hi, Child: child}
		}
	}
	return n, nil
}
