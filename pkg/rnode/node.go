// Package rnode implements the R-tree's node and entry model: leaf
// entries (a coordinate plus a payload), non-leaf entries (a bounding
// box plus a child index), and the node container that holds one kind
// or the other. Entry size and node capacity math lives here too, since
// both the storage layer and the split algorithms need it.
package rnode

import "rtreedb/pkg/geom"

// LeafEntry is (coord, data_point): a point and its signed 64-bit
// integer payload. Its bounding box is the degenerate box (coord, coord).
type LeafEntry struct {
	Coord []int64
	Data  int64
}

// BoundingBox returns the degenerate point box for this entry.
func (e LeafEntry) BoundingBox() geom.Box {
	return geom.PointBox(e.Coord)
}

// Equal reports whether two leaf entries have identical coordinates and
// payload. This is the equality range and k-NN search dedup on when the
// same entry is reached via more than one traversal path.
func (e LeafEntry) Equal(o LeafEntry) bool {
	if e.Data != o.Data || len(e.Coord) != len(o.Coord) {
		return false
	}
	for i := range e.Coord {
		if e.Coord[i] != o.Coord[i] {
			return false
		}
	}
	return true
}

func (e LeafEntry) clone() LeafEntry {
	return LeafEntry{Coord: append([]int64(nil), e.Coord...), Data: e.Data}
}

// NonLeafEntry is (lo, hi, child_index): a bounding box over a child
// node's entries, and the index of that child in storage.
type NonLeafEntry struct {
	Lo    []int64
	Hi    []int64
	Child uint32
}

// BoundingBox returns the entry's (lo, hi) box.
func (e NonLeafEntry) BoundingBox() geom.Box {
	return geom.Box{Lo: e.Lo, Hi: e.Hi}
}

func (e NonLeafEntry) clone() NonLeafEntry {
	return NonLeafEntry{
		Lo:    append([]int64(nil), e.Lo...),
		Hi:    append([]int64(nil), e.Hi...),
		Child: e.Child,
	}
}

// Node is a tagged union of leaf entries and non-leaf entries: exactly
// one of Leaves/Children is populated, selected by IsLeaf. Keeping two
// separate slices (rather than a shared base type with hidden fields)
// means each entry kind keeps its own shape; BoundingBox is the one
// accessor both provide.
type Node struct {
	IsLeaf   bool
	Leaves   []LeafEntry
	Children []NonLeafEntry
}

// Len returns the entry count, from whichever slice is in play.
func (n Node) Len() int {
	if n.IsLeaf {
		return len(n.Leaves)
	}
	return len(n.Children)
}

// BoundingBox returns the union of every entry's bounding box. Called on
// an empty node it returns the zero Box; callers must not rely on that
// for geometry (it only arises for a fresh, still-empty root).
func (n Node) BoundingBox() geom.Box {
	if n.IsLeaf {
		if len(n.Leaves) == 0 {
			return geom.Box{}
		}
		box := n.Leaves[0].BoundingBox()
		for _, e := range n.Leaves[1:] {
			box = geom.Union(box, e.BoundingBox())
		}
		return box
	}
	if len(n.Children) == 0 {
		return geom.Box{}
	}
	box := n.Children[0].BoundingBox()
	for _, e := range n.Children[1:] {
		box = geom.Union(box, e.BoundingBox())
	}
	return box
}

// Clone returns a deep copy of the node: modifying the copy never
// affects stored state, and vice versa. This is the copy semantics the
// storage contract requires of get_node/set_node/add_node.
func (n Node) Clone() Node {
	out := Node{IsLeaf: n.IsLeaf}
	if n.IsLeaf {
		out.Leaves = make([]LeafEntry, len(n.Leaves))
		for i, e := range n.Leaves {
			out.Leaves[i] = e.clone()
		}
	} else {
		out.Children = make([]NonLeafEntry, len(n.Children))
		for i, e := range n.Children {
			out.Children[i] = e.clone()
		}
	}
	return out
}

// LeafEntrySize is the on-disk byte size of one leaf entry: d signed
// 64-bit coordinates plus a signed 64-bit payload.
func LeafEntrySize(dim int) int { return 8*dim + 8 }

// NonLeafEntrySize is the on-disk byte size of one non-leaf entry: d
// signed 64-bit lows, d signed 64-bit highs, and a signed 64-bit child
// index.
func NonLeafEntrySize(dim int) int { return 16*dim + 8 }

// EntrySize dispatches on entry kind.
func EntrySize(dim int, isLeaf bool) int {
	if isLeaf {
		return LeafEntrySize(dim)
	}
	return NonLeafEntrySize(dim)
}

// NodeHeaderSize is the fixed part of every serialized node page: one
// is_leaf byte plus an 8-byte entry count.
const NodeHeaderSize = 9

// Capacity is M(is_leaf): the maximum number of entries a node of this
// kind can hold in nodeSize bytes, floor((nodeSize - NodeHeaderSize) /
// entry_size). The page header comes off the budget first, so a full
// node still fits its page.
func Capacity(dim, nodeSize int, isLeaf bool) int {
	return (nodeSize - NodeHeaderSize) / EntrySize(dim, isLeaf)
}

// MinNodeSize is the smallest node_size creation accepts for dimension
// dim: room for the page header plus two non-leaf entries (the minimum
// needed to hold a freshly split root).
func MinNodeSize(dim int) int {
	return NodeHeaderSize + 2*NonLeafEntrySize(dim)
}
