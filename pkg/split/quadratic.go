package split

import (
	"rtreedb/pkg/geom"
	"rtreedb/pkg/rnode"
)

// quadraticSplit picks the pair of entries whose combined box wastes
// the most area as seeds, then distributes the rest one at a time,
// each step picking the remaining entry with the strongest preference
// for one side over the other.
func quadraticSplit(n rnode.Node) (rnode.Node, rnode.Node, error) {
	k := n.Len()
	seedA, seedB := pickQuadraticSeeds(n, k)

	boxes := make([]geom.Box, k)
	for i := 0; i < k; i++ {
		boxes[i] = boxOf(n, i)
	}

	remaining := make([]int, 0, k-2)
	for i := 0; i < k; i++ {
		if i != seedA && i != seedB {
			remaining = append(remaining, i)
		}
	}

	groupA := []int{seedA}
	groupB := []int{seedB}
	boxA := boxes[seedA]
	boxB := boxes[seedB]

	for len(remaining) > 0 {
		bestPos := -1
		var bestPref int64 = -1
		var bestD1, bestD2 int64

		for pos, i := range remaining {
			d1 := geom.CombinedArea(boxA, boxes[i]) - geom.Area(boxA)
			d2 := geom.CombinedArea(boxB, boxes[i]) - geom.Area(boxB)
			pref := abs64(d1 - d2)
			if pref > bestPref {
				bestPref = pref
				bestPos = pos
				bestD1, bestD2 = d1, d2
			}
		}

		chosen := remaining[bestPos]
		remaining = append(remaining[:bestPos], remaining[bestPos+1:]...)

		if assignToA(bestD1, bestD2, boxA, boxB, len(groupA), len(groupB)) {
			groupA = append(groupA, chosen)
			boxA = geom.Union(boxA, boxes[chosen])
		} else {
			groupB = append(groupB, chosen)
			boxB = geom.Union(boxB, boxes[chosen])
		}
	}

	return build(n, groupA), build(n, groupB), nil
}

// pickQuadraticSeeds chooses, among all C(k,2) pairs, the pair whose
// union box area is largest: the pair that wastes the most space if
// kept together. Ties keep the first pair encountered in lexicographic
// (i,j) order.
func pickQuadraticSeeds(n rnode.Node, k int) (int, int) {
	bestI, bestJ := 0, 1
	var bestArea int64 = -1
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			area := geom.CombinedArea(boxOf(n, i), boxOf(n, j))
			if area > bestArea {
				bestArea = area
				bestI, bestJ = i, j
			}
		}
	}
	return bestI, bestJ
}

// assignToA implements the quadratic/linear distribute tie-break chain:
// smaller enlargement wins; else smaller current group area wins; else
// fewer current entries wins; else the entry goes to group B.
func assignToA(d1, d2 int64, boxA, boxB geom.Box, lenA, lenB int) bool {
	if d1 != d2 {
		return d1 < d2
	}
	areaA, areaB := geom.Area(boxA), geom.Area(boxB)
	if areaA != areaB {
		return areaA < areaB
	}
	if lenA != lenB {
		return lenA < lenB
	}
	return false
}

func abs64(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}
