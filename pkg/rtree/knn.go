package rtree

import (
	"rtreedb/pkg/errs"
	"rtreedb/pkg/geom"
	"rtreedb/pkg/rnode"
)

// SearchKNN returns up to k leaf entries nearest point under Manhattan
// distance, found by bisecting the search radius: start from the larger
// of the distances from point to the root box's lo and hi corners, then
// narrow (or widen) it until exactly k entries fall within it, or the
// bracket collapses to a single unit and the closest feasible count
// found so far is returned. The starting radius does not always reach
// every entry (another corner of the root box can be farther away);
// when it yields k or fewer entries, those are returned as they are.
func (t *Tree) SearchKNN(point []int64, k int) ([]rnode.LeafEntry, error) {
	if err := t.checkDim(point); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, &errs.ConfigError{Msg: "k must be positive"}
	}

	rootBox, err := t.currentRootBox()
	if err != nil {
		return nil, err
	}

	dMax := geom.ManhattanDistance(point, rootBox.Lo)
	if d := geom.ManhattanDistance(point, rootBox.Hi); d > dMax {
		dMax = d
	}
	dMin := int64(0)

	out, err := t.searchWithin(point, dMax)
	if err != nil {
		return nil, err
	}
	if len(out) <= k {
		return out, nil
	}

	var best []rnode.LeafEntry
	for len(out) != k {
		if dMax-dMin <= 1 {
			if best == nil {
				return out, nil
			}
			return best, nil
		}

		mid := dMin + (dMax-dMin)/2
		out, err = t.searchWithin(point, mid)
		if err != nil {
			return nil, err
		}

		switch {
		case len(out) == k:
			return out, nil
		case len(out) > k:
			best = out
			dMax = mid
		default:
			dMin = mid
		}
	}
	return out, nil
}

// searchWithin breadth-first collects every leaf entry within radius
// of point (Manhattan distance), pruning subtrees whose bounding box
// cannot possibly contain a closer point.
func (t *Tree) searchWithin(point []int64, radius int64) ([]rnode.LeafEntry, error) {
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
				if geom.ManhattanDistance(point, e.Coord) <= radius {
					seen.add(e)
				}
			}
			continue
		}
		for _, c := range n.Children {
			if geom.WithinDistance(c.BoundingBox(), point, radius) {
				queue = append(queue, c.Child)
			}
		}
	}
	return seen.entries(), nil
}
