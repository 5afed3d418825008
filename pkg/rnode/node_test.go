package rnode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeafEntryBoundingBoxAndEquality(t *testing.T) {
	e := LeafEntry{Coord: []int64{3, 4}, Data: 99}
	box := e.BoundingBox()
	require.Equal(t, []int64{3, 4}, box.Lo)
	require.Equal(t, []int64{3, 4}, box.Hi)

	require.True(t, e.Equal(LeafEntry{Coord: []int64{3, 4}, Data: 99}))
	require.False(t, e.Equal(LeafEntry{Coord: []int64{3, 4}, Data: 100}))
	require.False(t, e.Equal(LeafEntry{Coord: []int64{3, 5}, Data: 99}))
}

func TestNodeBoundingBoxUnion(t *testing.T) {
	n := Node{IsLeaf: true, Leaves: []LeafEntry{
		{Coord: []int64{0, 0}, Data: 1},
		{Coord: []int64{5, -2}, Data: 2},
	}}
	box := n.BoundingBox()
	require.Equal(t, []int64{0, -2}, box.Lo)
	require.Equal(t, []int64{5, 0}, box.Hi)
}

func TestNodeCloneIsDeep(t *testing.T) {
	n := Node{IsLeaf: true, Leaves: []LeafEntry{{Coord: []int64{1, 2}, Data: 7}}}
	c := n.Clone()
	c.Leaves[0].Coord[0] = 999
	c.Leaves[0].Data = -1
	require.Equal(t, int64(1), n.Leaves[0].Coord[0], "mutating the clone must not affect the original")
	require.Equal(t, int64(7), n.Leaves[0].Data)
}

func TestCapacityAndMinNodeSize(t *testing.T) {
	dim := 2
	// leaf entry size = 8*2+8=24, header=9 => (128-9)/24 = 4
	require.Equal(t, 4, Capacity(dim, 128, true))
	// non-leaf entry size = 16*2+8=40 => (128-9)/40 = 2
	require.Equal(t, 2, Capacity(dim, 128, false))

	require.Equal(t, 9+2*NonLeafEntrySize(dim), MinNodeSize(dim))
}
