package rtree

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"rtreedb/pkg/rnode"
)

// leafEntrySet is the "set-like container keyed on leaf-entry equality"
// range/kNN search dedup on: bucketed by an xxhash of the entry's
// canonical byte encoding, with an equality check inside the bucket to
// survive hash collisions.
type leafEntrySet struct {
	buckets map[uint64][]rnode.LeafEntry
	ordered []rnode.LeafEntry
}

func newLeafEntrySet() *leafEntrySet {
	return &leafEntrySet{buckets: make(map[uint64][]rnode.LeafEntry)}
}

// add inserts e if an equal entry isn't already present, returning
// whether it was newly added.
func (s *leafEntrySet) add(e rnode.LeafEntry) bool {
	key := leafEntryHash(e)
	for _, existing := range s.buckets[key] {
		if existing.Equal(e) {
			return false
		}
	}
	s.buckets[key] = append(s.buckets[key], e)
	s.ordered = append(s.ordered, e)
	return true
}

func (s *leafEntrySet) entries() []rnode.LeafEntry { return s.ordered }
func (s *leafEntrySet) len() int                   { return len(s.ordered) }

// leafEntryHash hashes a leaf entry's canonical byte encoding with
// xxhash, chosen for speed and a good distribution across bucket keys.
func leafEntryHash(e rnode.LeafEntry) uint64 {
	buf := make([]byte, 0, 8*len(e.Coord)+8)
	var tmp [8]byte
	for _, c := range e.Coord {
		binary.LittleEndian.PutUint64(tmp[:], uint64(c))
		buf = append(buf, tmp[:]...)
	}
	binary.LittleEndian.PutUint64(tmp[:], uint64(e.Data))
	buf = append(buf, tmp[:]...)
	return xxhash.Sum64(buf)
}
