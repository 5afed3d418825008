// Package rtree implements the R-tree engine itself: choose-leaf
// descent with bottom-up split propagation, breadth-first range search,
// and bisection-based k-nearest-neighbor search, all driven through the
// storage.Storage contract so the same algorithms run over an
// in-memory tree or a disk-backed one.
package rtree

import (
	"rtreedb/pkg/errs"
	"rtreedb/pkg/split"
	"rtreedb/pkg/storage"
)

// Tree is a handle over a storage backend. It holds no node state
// between operations: every call reads through storage, mutates local
// copies, and writes back before returning.
type Tree struct {
	store storage.Storage
}

// CreateInMemory creates a new tree backed by an in-RAM node store.
func CreateInMemory(dim, nodeSize int, st split.Kind) (*Tree, error) {
	s, err := storage.NewMemoryStorage(dim, nodeSize, st)
	if err != nil {
		return nil, err
	}
	return &Tree{store: s}, nil
}

// CreateInFile creates a new tree backed by a fresh file at path,
// truncating anything already there.
func CreateInFile(path string, dim, nodeSize int, st split.Kind) (*Tree, error) {
	s, err := storage.CreateInFile(path, dim, nodeSize, st)
	if err != nil {
		return nil, err
	}
	return &Tree{store: s}, nil
}

// OpenFromFile reopens a tree previously created with CreateInFile.
func OpenFromFile(path string) (*Tree, error) {
	s, err := storage.OpenFromFile(path)
	if err != nil {
		return nil, err
	}
	return &Tree{store: s}, nil
}

// Dimensions returns the tree's coordinate dimension.
func (t *Tree) Dimensions() int { return t.store.Dim() }

// Count returns the number of nodes the tree has ever allocated.
func (t *Tree) Count() uint32 { return t.store.Count() }

// Close flushes and releases the underlying storage.
func (t *Tree) Close() error { return t.store.Close() }

func (t *Tree) checkDim(coord []int64) error {
	if len(coord) != t.store.Dim() {
		return &errs.ConfigError{Msg: "coordinate length does not match tree dimension"}
	}
	return nil
}
