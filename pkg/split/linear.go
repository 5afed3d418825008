package split

import (
	"rtreedb/pkg/geom"
	"rtreedb/pkg/rnode"
)

// linearSplit picks seeds by finding the dimension where the entries
// are most spread apart, normalized by the tree root's bounding box
// rather than the node being split, then distributes the remaining
// entries in their original order.
func linearSplit(n rnode.Node, rootBox geom.Box) (rnode.Node, rnode.Node, error) {
	k := n.Len()
	boxes := make([]geom.Box, k)
	for i := 0; i < k; i++ {
		boxes[i] = boxOf(n, i)
	}
	dim := len(boxes[0].Lo)

	var bestNorm float64 = -1
	bestH, bestL := 0, 0

	for d := 0; d < dim; d++ {
		h := 0 // entry with highest lo[d]
		l := 0 // entry with lowest hi[d]
		for i := 1; i < k; i++ {
			if boxes[i].Lo[d] > boxes[h].Lo[d] {
				h = i
			}
			if boxes[i].Hi[d] < boxes[l].Hi[d] {
				l = i
			}
		}
		if h == l {
			l = altSeed(boxes, h, d)
		}

		sep := boxes[h].Lo[d] - boxes[l].Hi[d]
		if sep < 0 {
			sep = -sep
		}
		width := rootBox.Hi[d] - rootBox.Lo[d]
		if width < 1 {
			width = 1
		}
		norm := float64(sep) / float64(width)
		if norm > bestNorm {
			bestNorm = norm
			bestH, bestL = h, l
		}
	}

	groupA := []int{bestH}
	groupB := []int{bestL}
	boxA := boxes[bestH]
	boxB := boxes[bestL]

	for i := 0; i < k; i++ {
		if i == bestH || i == bestL {
			continue
		}
		d1 := geom.CombinedArea(boxA, boxes[i]) - geom.Area(boxA)
		d2 := geom.CombinedArea(boxB, boxes[i]) - geom.Area(boxB)
		if assignToA(d1, d2, boxA, boxB, len(groupA), len(groupB)) {
			groupA = append(groupA, i)
			boxA = geom.Union(boxA, boxes[i])
		} else {
			groupB = append(groupB, i)
			boxB = geom.Union(boxB, boxes[i])
		}
	}

	return build(n, groupA), build(n, groupB), nil
}

// altSeed resolves the rare case where the same entry is both the
// highest-lo and lowest-hi entry on dimension d (e.g. two entries tie
// and the scan picked the same index both times, or a single dominating
// entry spans the whole range): pick the next best distinct entry as
// the low-hi seed so the two seeds are always different nodes.
func altSeed(boxes []geom.Box, h, d int) int {
	l := -1
	for i, b := range boxes {
		if i == h {
			continue
		}
		if l == -1 || b.Hi[d] < boxes[l].Hi[d] {
			l = i
		}
	}
	if l == -1 {
		// Only one entry total. Callers never split a single-entry
		// node, but stay defensive rather than panic.
		return h
	}
	return l
}
