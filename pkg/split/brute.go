package split

import (
	"rtreedb/pkg/errs"
	"rtreedb/pkg/geom"
	"rtreedb/pkg/rnode"
)

// bruteForceSplit enumerates every partition of n's entries into two
// non-empty subsets and returns the one with minimum total bounding-box
// area. Enumeration fixes entry 0 in the first subset (so a partition
// and its mirror image are never both considered) and walks masks over
// the remaining k-1 entries in increasing order, excluding the mask
// that would leave the second subset empty. That gives exactly
// 2^(k-1)-1 candidates. Ties keep the first (lowest-mask) partition
// encountered.
func bruteForceSplit(n rnode.Node) (rnode.Node, rnode.Node, error) {
	k := n.Len()
	if k < 2 {
		return rnode.Node{}, rnode.Node{}, &errs.InvariantViolation{Msg: "split: need at least 2 entries to split"}
	}

	limit := (1 << uint(k-1)) - 1
	var bestA, bestB []int
	var bestArea int64

	for mask := 0; mask < limit; mask++ {
		idxA := []int{0}
		idxB := make([]int, 0, k-1)
		for j := 1; j < k; j++ {
			if mask&(1<<uint(j-1)) != 0 {
				idxA = append(idxA, j)
			} else {
				idxB = append(idxB, j)
			}
		}
		total := geom.Area(unionBoxOf(n, idxA)) + geom.Area(unionBoxOf(n, idxB))
		if bestA == nil || total < bestArea {
			bestArea = total
			bestA, bestB = idxA, idxB
		}
	}

	return build(n, bestA), build(n, bestB), nil
}
