package storage

import (
	"rtreedb/pkg/errs"
	"rtreedb/pkg/rnode"
	"rtreedb/pkg/split"
)

// MemoryStorage is a growable in-RAM sequence of nodes. GetNode has
// nothing to reconstruct: the node's own IsLeaf tag already carries
// everything needed, so the store just hands back a deep copy.
type MemoryStorage struct {
	dim       int
	nodeSize  int
	splitType split.Kind
	nodes     []rnode.Node
}

// NewMemoryStorage creates an in-memory tree store and seeds it with a
// single empty leaf node at index 0, per the tree lifecycle: "on
// create... a single empty leaf node is written as node 0."
func NewMemoryStorage(dim, nodeSize int, st split.Kind) (*MemoryStorage, error) {
	if err := validateCreateParams(dim, nodeSize, st); err != nil {
		return nil, err
	}
	m := &MemoryStorage{dim: dim, nodeSize: nodeSize, splitType: st}
	m.nodes = append(m.nodes, rnode.Node{IsLeaf: true})
	return m, nil
}

func (m *MemoryStorage) Dim() int              { return m.dim }
func (m *MemoryStorage) NodeSize() int         { return m.nodeSize }
func (m *MemoryStorage) SplitType() split.Kind { return m.splitType }
func (m *MemoryStorage) Count() uint32         { return uint32(len(m.nodes)) }

func (m *MemoryStorage) GetNode(i uint32) (rnode.Node, error) {
	if i >= m.Count() {
		return rnode.Node{}, &errs.IndexError{Index: i, Count: m.Count()}
	}
	return m.nodes[i].Clone(), nil
}

func (m *MemoryStorage) SetNode(i uint32, n rnode.Node) error {
	if i >= m.Count() {
		return &errs.IndexError{Index: i, Count: m.Count()}
	}
	m.nodes[i] = n.Clone()
	return nil
}

func (m *MemoryStorage) AddNode(n rnode.Node) (uint32, error) {
	idx := uint32(len(m.nodes))
	m.nodes = append(m.nodes, n.Clone())
	return idx, nil
}

// Close is a no-op: there is nothing buffered to flush and no file to
// release.
func (m *MemoryStorage) Close() error { return nil }
