// Package split implements the three node-splitting strategies an
// overfull R-tree node can be partitioned with: brute-force (optimal),
// quadratic-cost, and linear-cost. Each is a pure function from an
// over-full node (capacity+1 entries) to two non-empty nodes of the
// same kind; none of them touch storage.
package split

import (
	"rtreedb/pkg/errs"
	"rtreedb/pkg/geom"
	"rtreedb/pkg/rnode"
)

// Kind selects which split algorithm a tree uses. It is persisted in
// the disk header's split-type discriminant byte.
type Kind uint8

const (
	BruteForce Kind = 1
	Quadratic  Kind = 2
	Linear     Kind = 3
)

// Valid reports whether k is one of the three known split kinds.
func (k Kind) Valid() bool {
	return k == BruteForce || k == Quadratic || k == Linear
}

func (k Kind) String() string {
	switch k {
	case BruteForce:
		return "brute-force"
	case Quadratic:
		return "quadratic"
	case Linear:
		return "linear"
	default:
		return "unknown"
	}
}

// Split partitions an over-full node (n.Len() == capacity+1) into two
// non-empty nodes of the same IsLeaf kind, using the algorithm named by
// kind. rootBox is the tree root's bounding box at the start of the
// current insert; only the linear split's normalizer uses it.
func Split(kind Kind, n rnode.Node, rootBox geom.Box) (rnode.Node, rnode.Node, error) {
	switch kind {
	case BruteForce:
		return bruteForceSplit(n)
	case Quadratic:
		return quadraticSplit(n)
	case Linear:
		return linearSplit(n, rootBox)
	default:
		return rnode.Node{}, rnode.Node{}, &errs.InvariantViolation{Msg: "split: unknown split kind"}
	}
}

// boxOf returns the bounding box of entry i in an over-full node,
// dispatching on leaf vs non-leaf.
func boxOf(n rnode.Node, i int) geom.Box {
	if n.IsLeaf {
		return n.Leaves[i].BoundingBox()
	}
	return n.Children[i].BoundingBox()
}

// buildLeaf assembles a leaf node from the entries at the given indices.
func buildLeaf(n rnode.Node, idx []int) rnode.Node {
	out := rnode.Node{IsLeaf: true, Leaves: make([]rnode.LeafEntry, 0, len(idx))}
	for _, i := range idx {
		out.Leaves = append(out.Leaves, n.Leaves[i])
	}
	return out
}

// buildNonLeaf assembles a non-leaf node from the entries at the given
// indices.
func buildNonLeaf(n rnode.Node, idx []int) rnode.Node {
	out := rnode.Node{IsLeaf: false, Children: make([]rnode.NonLeafEntry, 0, len(idx))}
	for _, i := range idx {
		out.Children = append(out.Children, n.Children[i])
	}
	return out
}

// build assembles a node of n's kind from the given entry indices.
func build(n rnode.Node, idx []int) rnode.Node {
	if n.IsLeaf {
		return buildLeaf(n, idx)
	}
	return buildNonLeaf(n, idx)
}

// unionBoxOf folds the bounding boxes of the given entry indices.
func unionBoxOf(n rnode.Node, idx []int) geom.Box {
	box := boxOf(n, idx[0])
	for _, i := range idx[1:] {
		box = geom.Union(box, boxOf(n, i))
	}
	return box
}
