package storage

import "rtreedb/pkg/rnode"

// DefaultCacheSlots is the number of direct-mapped cache slots a disk
// storage uses unless told otherwise.
const DefaultCacheSlots = 1024

// cacheSlot holds at most one node's worth of cached state: which
// index it's caching, whether it differs from what's on disk, and the
// node itself.
type cacheSlot struct {
	valid bool
	dirty bool
	index uint32
	node  rnode.Node
}

// writeBackCache is a direct-mapped write-back cache over node pages:
// node i always maps to slot i mod len(slots). A slot holding a dirty
// page must be flushed to disk before it's reused for a different
// index ("evicted"), and every slot still dirty is flushed on Close.
type writeBackCache struct {
	slots []cacheSlot
}

func newWriteBackCache(numSlots int) *writeBackCache {
	return &writeBackCache{slots: make([]cacheSlot, numSlots)}
}

func (c *writeBackCache) slotFor(i uint32) *cacheSlot {
	return &c.slots[int(i)%len(c.slots)]
}

// lookup returns the cached node for i if the slot currently holds it.
func (c *writeBackCache) lookup(i uint32) (rnode.Node, bool) {
	s := c.slotFor(i)
	if s.valid && s.index == i {
		return s.node, true
	}
	return rnode.Node{}, false
}

// fill installs a freshly read node into i's slot as clean (not dirty),
// evicting whatever the slot held first via flush.
func (c *writeBackCache) fill(i uint32, n rnode.Node, flush func(cacheSlot) error) error {
	s := c.slotFor(i)
	if err := c.evictIfNeeded(s, i, flush); err != nil {
		return err
	}
	*s = cacheSlot{valid: true, dirty: false, index: i, node: n}
	return nil
}

// put installs n into i's slot as dirty, evicting whatever the slot
// held first.
func (c *writeBackCache) put(i uint32, n rnode.Node, flush func(cacheSlot) error) error {
	s := c.slotFor(i)
	if err := c.evictIfNeeded(s, i, flush); err != nil {
		return err
	}
	*s = cacheSlot{valid: true, dirty: true, index: i, node: n}
	return nil
}

// evictIfNeeded flushes the slot's current occupant if it's dirty and
// holds a different index than the one about to move in.
func (c *writeBackCache) evictIfNeeded(s *cacheSlot, incoming uint32, flush func(cacheSlot) error) error {
	if s.valid && s.index != incoming && s.dirty {
		if err := flush(*s); err != nil {
			return err
		}
	}
	return nil
}

// flushAll persists every dirty slot, used on Close.
func (c *writeBackCache) flushAll(flush func(cacheSlot) error) error {
	for i := range c.slots {
		if c.slots[i].valid && c.slots[i].dirty {
			if err := flush(c.slots[i]); err != nil {
				return err
			}
			c.slots[i].dirty = false
		}
	}
	return nil
}
