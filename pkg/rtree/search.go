package rtree

import (
	"rtreedb/pkg/geom"
	"rtreedb/pkg/rnode"
)

// SearchRange returns every (coord, data) pair whose coordinate lies
// inside the box (lo, hi), via breadth-first traversal from node 0:
// non-leaf entries whose box overlaps the query are descended into,
// leaf entries inside the query box are collected, and duplicate leaf
// entries (identical coord and data) collapse.
func (t *Tree) SearchRange(lo, hi []int64) ([]rnode.LeafEntry, error) {
	if err := t.checkDim(lo); err != nil {
		return nil, err
	}
	if err := t.checkDim(hi); err != nil {
		return nil, err
	}
	query := geom.Box{Lo: lo, Hi: hi}
	seen := newLeafEntrySet()

	queue := []uint32{0}
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]

		n, err := t.store.GetNode(idx)
		if err != nil {
			return nil, err
		}
		if n.IsLeaf {
			for _, e := range n.Leaves {
				if geom.Contains(query, e.Coord) {
					seen.add(e)
				}
			}
			continue
		}
		for _, c := range n.Children {
			if geom.Overlaps(c.BoundingBox(), query) {
				queue = append(queue, c.Child)
			}
		}
	}
	return seen.entries(), nil
}
