package split

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rtreedb/pkg/geom"
	"rtreedb/pkg/rnode"
)

func leafNode(coords ...[]int64) rnode.Node {
	n := rnode.Node{IsLeaf: true}
	for i, c := range coords {
		n.Leaves = append(n.Leaves, rnode.LeafEntry{Coord: c, Data: int64(i)})
	}
	return n
}

func coordSet(n rnode.Node) map[int64]bool {
	out := map[int64]bool{}
	for _, e := range n.Leaves {
		out[e.Data] = true
	}
	return out
}

func TestBruteForceSplitMinimizesTotalArea(t *testing.T) {
	// Two tight clusters far apart: any sane split keeps them separate.
	n := leafNode(
		[]int64{0, 0}, []int64{1, 1},
		[]int64{100, 100}, []int64{101, 101},
	)
	left, right, err := bruteForceSplit(n)
	require.NoError(t, err)
	require.NotEmpty(t, left.Leaves)
	require.NotEmpty(t, right.Leaves)
	require.Equal(t, 4, left.Len()+right.Len())

	a := coordSet(left)
	b := coordSet(right)
	// {0,1} should end up together, {2,3} together, in either order.
	clusterLo := map[int64]bool{0: true, 1: true}
	require.True(t, (eqSet(a, clusterLo) && eqSet(b, invert(clusterLo, 4))) ||
		(eqSet(b, clusterLo) && eqSet(a, invert(clusterLo, 4))))
}

func eqSet(a, b map[int64]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func invert(s map[int64]bool, total int64) map[int64]bool {
	out := map[int64]bool{}
	for i := int64(0); i < total; i++ {
		if !s[i] {
			out[i] = true
		}
	}
	return out
}

func TestBruteForceSplitTieBreakIsFirstPartition(t *testing.T) {
	// Three colinear points equally spaced: partition {0}|{1,2} and
	// {0,1}|{2} are both "reasonable"; the brute-force enumeration with
	// entry 0 fixed to the first group starts at mask=0, i.e. {0}|{1,2},
	// and only replaces it on a strictly smaller total area.
	n := leafNode([]int64{0}, []int64{1}, []int64{2})
	left, right, err := bruteForceSplit(n)
	require.NoError(t, err)
	require.Equal(t, 3, left.Len()+right.Len())
	require.NotEmpty(t, left.Leaves)
	require.NotEmpty(t, right.Leaves)
	// Both {0}|{1,2} and {0,1}|{2} total an area of 3; the first wins.
	require.Equal(t, map[int64]bool{0: true}, coordSet(left))
	require.Equal(t, map[int64]bool{1: true, 2: true}, coordSet(right))
}

func TestQuadraticSplitSeedsAreFarthestPair(t *testing.T) {
	n := leafNode(
		[]int64{0, 0},
		[]int64{1, 0},
		[]int64{50, 0},
	)
	left, right, err := quadraticSplit(n)
	require.NoError(t, err)
	require.Equal(t, 3, left.Len()+right.Len())
	// The seeds are {0,0} and {50,0} (union area 51, the largest pair).
	// The entry at {1,0} (data=1) enlarges the first seed's box by 1 and
	// the second's by 49, so it joins the first group.
	require.NotEmpty(t, left.Leaves)
	require.NotEmpty(t, right.Leaves)
	require.Equal(t, map[int64]bool{0: true, 1: true}, coordSet(left))
	require.Equal(t, map[int64]bool{2: true}, coordSet(right))
}

func TestLinearSplitUsesRootBoxNormalizer(t *testing.T) {
	n := leafNode(
		[]int64{0, 0},
		[]int64{10, 0},
		[]int64{5, 100},
	)
	// Against the node's own box both axes normalize to 1.0 and axis 0
	// would win. The wider root box shrinks axis 0 to 10/1000, so axis 1
	// picks the seeds: {5,100} (highest lo) and {0,0} (lowest hi).
	root := geom.Box{Lo: []int64{0, 0}, Hi: []int64{1000, 100}}
	left, right, err := linearSplit(n, root)
	require.NoError(t, err)
	require.Equal(t, 3, left.Len()+right.Len())
	require.NotEmpty(t, left.Leaves)
	require.NotEmpty(t, right.Leaves)
	require.Equal(t, map[int64]bool{2: true}, coordSet(left))
	require.Equal(t, map[int64]bool{0: true, 1: true}, coordSet(right))
}

func TestLinearSplitDegenerateRootBoxDoesNotDivideByZero(t *testing.T) {
	n := leafNode([]int64{0, 0}, []int64{0, 1}, []int64{0, 2})
	root := geom.Box{Lo: []int64{0, 0}, Hi: []int64{0, 2}} // zero width on axis 0
	require.NotPanics(t, func() {
		left, right, err := linearSplit(n, root)
		require.NoError(t, err)
		require.Equal(t, 3, left.Len()+right.Len())
	})
}

func TestSplitDispatch(t *testing.T) {
	n := leafNode([]int64{0, 0}, []int64{1, 1}, []int64{2, 2})
	root := n.BoundingBox()

	for _, k := range []Kind{BruteForce, Quadratic, Linear} {
		left, right, err := Split(k, n, root)
		require.NoError(t, err, k)
		require.Equal(t, 3, left.Len()+right.Len(), k)
	}
}

func TestSplitUnknownKindErrors(t *testing.T) {
	n := leafNode([]int64{0}, []int64{1})
	_, _, err := Split(Kind(99), n, n.BoundingBox())
	require.Error(t, err)
}
