package rtree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rtreedb/pkg/split"
)

// dim=2, nodeSize=89 is the smallest node size creation accepts for two
// dimensions (rnode.MinNodeSize). It gives a leaf capacity of 3
// ((89-9)/24) and a non-leaf capacity of 2 ((89-9)/40), small enough to
// force splits with a handful of inserts.
func newSmallTree(t *testing.T, st split.Kind) *Tree {
	t.Helper()
	tr, err := CreateInMemory(2, 89, st)
	require.NoError(t, err)
	return tr
}

func TestInsertSingleEntryIsRetrievableByRange(t *testing.T) {
	tr := newSmallTree(t, split.Quadratic)
	require.NoError(t, tr.Insert([]int64{5, 5}, 42))

	got, err := tr.SearchRange([]int64{0, 0}, []int64{10, 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.EqualValues(t, 42, got[0].Data)
}

func TestInsertForcesSplitNodeCountTransition(t *testing.T) {
	tr := newSmallTree(t, split.Quadratic)
	require.EqualValues(t, 1, tr.Count())

	require.NoError(t, tr.Insert([]int64{0, 0}, 1))
	require.NoError(t, tr.Insert([]int64{1, 1}, 2))
	require.NoError(t, tr.Insert([]int64{2, 2}, 3))
	require.EqualValues(t, 1, tr.Count())

	// Fourth insert overflows the 3-entry leaf capacity, forcing a split
	// that turns node 0 into a non-leaf pointing at two fresh leaves.
	require.NoError(t, tr.Insert([]int64{100, 100}, 4))
	require.EqualValues(t, 3, tr.Count())

	root, err := tr.store.GetNode(0)
	require.NoError(t, err)
	require.False(t, root.IsLeaf)
	require.Len(t, root.Children, 2)
}

func TestSearchRangeOverManyEntries(t *testing.T) {
	tr := newSmallTree(t, split.Linear)
	for i := int64(0); i < 40; i++ {
		require.NoError(t, tr.Insert([]int64{i, i}, i*10))
	}

	got, err := tr.SearchRange([]int64{10, 10}, []int64{19, 19})
	require.NoError(t, err)
	require.Len(t, got, 10)

	seen := make(map[int64]bool)
	for _, e := range got {
		seen[e.Data] = true
	}
	for i := int64(10); i < 20; i++ {
		require.True(t, seen[i*10])
	}
}

func TestSearchKNNSmallerThanN(t *testing.T) {
	tr := newSmallTree(t, split.Quadratic)
	for i := int64(0); i < 20; i++ {
		require.NoError(t, tr.Insert([]int64{i, 0}, i))
	}

	got, err := tr.SearchKNN([]int64{5, 0}, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	want := map[int64]bool{4: true, 5: true, 6: true}
	for _, e := range got {
		require.True(t, want[e.Data], "unexpected neighbor %d", e.Data)
	}
}

func TestSearchKNNLargerThanN(t *testing.T) {
	tr := newSmallTree(t, split.Quadratic)
	for i := int64(0); i < 5; i++ {
		require.NoError(t, tr.Insert([]int64{i, 0}, i))
	}

	got, err := tr.SearchKNN([]int64{2, 0}, 100)
	require.NoError(t, err)
	require.Len(t, got, 5)
}

func TestPersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/tree.bin"

	tr, err := CreateInFile(path, 2, 89, split.Linear)
	require.NoError(t, err)
	for i := int64(0); i < 30; i++ {
		require.NoError(t, tr.Insert([]int64{i, i * 2}, i))
	}
	countBefore := tr.Count()
	require.NoError(t, tr.Close())

	reopened, err := OpenFromFile(path)
	require.NoError(t, err)
	defer reopened.Close()

	require.Equal(t, countBefore, reopened.Count())
	got, err := reopened.SearchRange([]int64{0, 0}, []int64{29, 58})
	require.NoError(t, err)
	require.Len(t, got, 30)
}

func TestAllNodesReachableFromRootViaBFS(t *testing.T) {
	tr := newSmallTree(t, split.BruteForce)
	for i := int64(0); i < 25; i++ {
		require.NoError(t, tr.Insert([]int64{i, -i}, i))
	}

	reached := make(map[uint32]bool)
	queue := []uint32{0}
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		if reached[idx] {
			continue
		}
		reached[idx] = true

		n, err := tr.store.GetNode(idx)
		require.NoError(t, err)
		for _, c := range n.Children {
			queue = append(queue, c.Child)
		}
	}
	require.EqualValues(t, tr.Count(), len(reached))
}

func TestSearchRangeRejectsWrongDimension(t *testing.T) {
	tr := newSmallTree(t, split.Quadratic)
	_, err := tr.SearchRange([]int64{0}, []int64{1, 1})
	require.Error(t, err)
}
