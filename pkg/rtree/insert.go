package rtree

import (
	"rtreedb/pkg/geom"
	"rtreedb/pkg/rnode"
	"rtreedb/pkg/split"
)

// splitResult is what choose-leaf's recursion hands back up: either
// "already written, nothing more to do" (occurred == false), or the two
// halves of an overflow split that the caller (the parent frame, or
// Insert itself at the root) is responsible for writing.
type splitResult struct {
	occurred    bool
	left, right rnode.Node
}

// Insert adds coord/data to the tree, descending via choose-leaf and
// propagating any resulting splits bottom-up. A leaf split may create
// one new node; a root split always creates two, since node 0 never
// moves and is instead rewritten in place to point at the two fresh
// halves.
func (t *Tree) Insert(coord []int64, data int64) error {
	if err := t.checkDim(coord); err != nil {
		return err
	}

	rootBox, err := t.currentRootBox()
	if err != nil {
		return err
	}

	e := rnode.LeafEntry{Coord: append([]int64(nil), coord...), Data: data}
	res, err := t.insertRec(0, e, rootBox)
	if err != nil {
		return err
	}
	if !res.occurred {
		return nil
	}

	leftIdx, err := t.store.AddNode(res.left)
	if err != nil {
		return err
	}
	rightIdx, err := t.store.AddNode(res.right)
	if err != nil {
		return err
	}
	leftBox := res.left.BoundingBox()
	rightBox := res.right.BoundingBox()
	newRoot := rnode.Node{IsLeaf: false, Children: []rnode.NonLeafEntry{
		{Lo: leftBox.Lo, Hi: leftBox.Hi, Child: leftIdx},
		{Lo: rightBox.Lo, Hi: rightBox.Hi, Child: rightIdx},
	}}
	return t.store.SetNode(0, newRoot)
}

// currentRootBox snapshots node 0's bounding box before this insert
// mutates anything. The linear split uses this snapshot, rather than
// recomputing the root's box mid-insert, as its per-dimension
// normalizer so a single insert's cascading splits all normalize
// against the same reference box. An empty root (the very first
// insert) has no meaningful box yet; a zeroed one of the right
// dimension is used as a placeholder that can never actually drive a
// split on this call (a single entry can't overflow a node).
func (t *Tree) currentRootBox() (geom.Box, error) {
	root, err := t.store.GetNode(0)
	if err != nil {
		return geom.Box{}, err
	}
	box := root.BoundingBox()
	if box.Lo == nil {
		dim := t.store.Dim()
		box = geom.Box{Lo: make([]int64, dim), Hi: make([]int64, dim)}
	}
	return box, nil
}

// insertRec implements choose-leaf for the subtree rooted at index:
// descend to a leaf, insert, and propagate any split back up without
// writing it anywhere. The caller (this function's own parent frame,
// or Insert for the true root) decides where the two halves land.
func (t *Tree) insertRec(index uint32, e rnode.LeafEntry, rootBox geom.Box) (splitResult, error) {
	n, err := t.store.GetNode(index)
	if err != nil {
		return splitResult{}, err
	}

	if n.IsLeaf {
		return t.insertIntoLeaf(index, n, e, rootBox)
	}
	return t.insertIntoInternal(index, n, e, rootBox)
}

func (t *Tree) insertIntoLeaf(index uint32, n rnode.Node, e rnode.LeafEntry, rootBox geom.Box) (splitResult, error) {
	n.Leaves = append(n.Leaves, e)
	capacity := rnode.Capacity(t.store.Dim(), t.store.NodeSize(), true)
	if len(n.Leaves) <= capacity {
		if err := t.store.SetNode(index, n); err != nil {
			return splitResult{}, err
		}
		return splitResult{}, nil
	}

	left, right, err := split.Split(t.store.SplitType(), n, rootBox)
	if err != nil {
		return splitResult{}, err
	}
	return splitResult{occurred: true, left: left, right: right}, nil
}

func (t *Tree) insertIntoInternal(index uint32, n rnode.Node, e rnode.LeafEntry, rootBox geom.Box) (splitResult, error) {
	chosen := chooseChild(n.Children, e.BoundingBox())
	childIdx := n.Children[chosen].Child

	childRes, err := t.insertRec(childIdx, e, rootBox)
	if err != nil {
		return splitResult{}, err
	}

	if !childRes.occurred {
		updated, err := t.store.GetNode(childIdx)
		if err != nil {
			return splitResult{}, err
		}
		box := updated.BoundingBox()
		n.Children[chosen] = rnode.NonLeafEntry{Lo: box.Lo, Hi: box.Hi, Child: childIdx}
		if err := t.store.SetNode(index, n); err != nil {
			return splitResult{}, err
		}
		return splitResult{}, nil
	}

	// The child overflowed: write its left half back to the child's
	// own index (preserving it), append the right half as a new node,
	// and replace/add this node's entries for the two halves.
	if err := t.store.SetNode(childIdx, childRes.left); err != nil {
		return splitResult{}, err
	}
	rightIdx, err := t.store.AddNode(childRes.right)
	if err != nil {
		return splitResult{}, err
	}

	leftBox := childRes.left.BoundingBox()
	rightBox := childRes.right.BoundingBox()
	n.Children[chosen] = rnode.NonLeafEntry{Lo: leftBox.Lo, Hi: leftBox.Hi, Child: childIdx}
	n.Children = append(n.Children, rnode.NonLeafEntry{Lo: rightBox.Lo, Hi: rightBox.Hi, Child: rightIdx})

	capacity := rnode.Capacity(t.store.Dim(), t.store.NodeSize(), false)
	if len(n.Children) <= capacity {
		if err := t.store.SetNode(index, n); err != nil {
			return splitResult{}, err
		}
		return splitResult{}, nil
	}

	left2, right2, err := split.Split(t.store.SplitType(), n, rootBox)
	if err != nil {
		return splitResult{}, err
	}
	return splitResult{occurred: true, left: left2, right: right2}, nil
}

// chooseChild picks the child entry requiring the least area
// enlargement to include box, breaking ties in favor of the child with
// the smaller current area.
func chooseChild(children []rnode.NonLeafEntry, box geom.Box) int {
	best := 0
	bestBox := children[0].BoundingBox()
	bestEnlargement := geom.CombinedArea(bestBox, box) - geom.Area(bestBox)
	bestArea := geom.Area(bestBox)

	for i := 1; i < len(children); i++ {
		b := children[i].BoundingBox()
		enlargement := geom.CombinedArea(b, box) - geom.Area(b)
		area := geom.Area(b)
		if enlargement < bestEnlargement || (enlargement == bestEnlargement && area < bestArea) {
			best = i
			bestEnlargement = enlargement
			bestArea = area
		}
	}
	return best
}
