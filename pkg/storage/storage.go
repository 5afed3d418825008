// Package storage implements the R-tree's storage layer: the uniform
// get/set/append contract the tree algorithms run against, an in-memory
// implementation backed by a growable node slice, and a disk-backed
// implementation with a fixed-header file, fixed-size node pages, and a
// direct-mapped write-back cache.
package storage

import (
	"rtreedb/pkg/rnode"
	"rtreedb/pkg/split"
)

// Storage is the capability set the R-tree engine is polymorphic over:
// dimension/node-size/split-type metadata fixed at creation, plus
// get/set/append on nodes addressed by a dense index. Copy semantics
// are load-bearing: GetNode returns an owned copy a caller can mutate
// freely, and SetNode/AddNode store a copy of what's handed to them.
// Neither side aliases the other's memory.
type Storage interface {
	// Dim is the tree's coordinate dimension, fixed at creation.
	Dim() int
	// NodeSize is the fixed byte budget for one serialized node.
	NodeSize() int
	// SplitType is the split algorithm this tree was created with.
	SplitType() split.Kind
	// Count is the number of nodes ever appended (the valid index range
	// is [0, Count())).
	Count() uint32
	// GetNode returns an owned copy of node i. i must be < Count().
	GetNode(i uint32) (rnode.Node, error)
	// SetNode replaces node i with a copy of n. i must be < Count().
	SetNode(i uint32, n rnode.Node) error
	// AddNode appends a copy of n and returns its new index.
	AddNode(n rnode.Node) (uint32, error)
	// Close flushes any buffered state and releases underlying
	// resources (a no-op for in-memory storage).
	Close() error
}
