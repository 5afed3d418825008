package storage

import (
	"os"
	"sync"

	"github.com/pkg/errors"

	"rtreedb/pkg/errs"
	"rtreedb/pkg/rnode"
	"rtreedb/pkg/split"
)

// DiskStorage is the paged, write-back-cached file storage described in
// the format spec: a 13-byte header, then fixed-size node pages. All
// access goes through one direct-mapped cache; AddNode bypasses it and
// writes straight through, since a freshly appended node is never the
// hot path a subsequent get_node/set_node of the same insert revisits.
type DiskStorage struct {
	mu        sync.Mutex
	f         *os.File
	dim       int
	nodeSize  int
	splitType split.Kind
	count     uint32
	cache     *writeBackCache
}

// CreateInFile initializes a fresh r-tree file: header, then a single
// empty leaf node written as node 0, matching create_in_memory's
// lifecycle so "node 0 exists" holds uniformly across both storage
// kinds.
func CreateInFile(path string, dim, nodeSize int, st split.Kind) (*DiskStorage, error) {
	if err := validateCreateParams(dim, nodeSize, st); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0o666)
	if err != nil {
		return nil, &errs.IoError{Op: "create", Err: err}
	}

	if _, err := f.WriteAt(encodeHeader(dim, nodeSize, byte(st)), 0); err != nil {
		_ = f.Close()
		return nil, &errs.IoError{Op: "write header", Err: err}
	}

	d := &DiskStorage{
		f:         f,
		dim:       dim,
		nodeSize:  nodeSize,
		splitType: st,
		cache:     newWriteBackCache(DefaultCacheSlots),
	}
	root := rnode.Node{IsLeaf: true}
	buf, err := encodeNode(root, dim, nodeSize)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if _, err := f.WriteAt(buf, pageOffset(0, nodeSize)); err != nil {
		_ = f.Close()
		return nil, &errs.IoError{Op: "write root node", Err: err}
	}
	d.count = 1
	return d, nil
}

// OpenFromFile reopens an existing r-tree file, reading its header to
// recover dimension, node size and split type, and deriving the node
// count from the file's length.
func OpenFromFile(path string) (*DiskStorage, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o666)
	if err != nil {
		return nil, &errs.IoError{Op: "open", Err: err}
	}
	hdr := make([]byte, HeaderSize)
	if _, err := f.ReadAt(hdr, 0); err != nil {
		_ = f.Close()
		return nil, &errs.ConfigError{Msg: "unreadable header: " + err.Error()}
	}
	dim, nodeSize, stByte, err := decodeHeader(hdr)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	st := split.Kind(stByte)

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, &errs.IoError{Op: "stat", Err: err}
	}
	body := fi.Size() - HeaderSize
	if body < 0 || body%int64(nodeSize) != 0 {
		_ = f.Close()
		return nil, &errs.ConfigError{Msg: "corrupt header: file size does not align to node_size"}
	}

	return &DiskStorage{
		f:         f,
		dim:       dim,
		nodeSize:  nodeSize,
		splitType: st,
		count:     uint32(body / int64(nodeSize)),
		cache:     newWriteBackCache(DefaultCacheSlots),
	}, nil
}

func pageOffset(i uint32, nodeSize int) int64 {
	return HeaderSize + int64(i)*int64(nodeSize)
}

func (d *DiskStorage) Dim() int              { return d.dim }
func (d *DiskStorage) NodeSize() int         { return d.nodeSize }
func (d *DiskStorage) SplitType() split.Kind { return d.splitType }

func (d *DiskStorage) Count() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.count
}

// writePage persists a cache slot's node to its on-disk page.
func (d *DiskStorage) writePage(s cacheSlot) error {
	buf, err := encodeNode(s.node, d.dim, d.nodeSize)
	if err != nil {
		return err
	}
	if _, err := d.f.WriteAt(buf, pageOffset(s.index, d.nodeSize)); err != nil {
		return &errs.IoError{Op: "write node page", Err: err}
	}
	return nil
}

func (d *DiskStorage) readPage(i uint32) (rnode.Node, error) {
	buf := make([]byte, d.nodeSize)
	if _, err := d.f.ReadAt(buf, pageOffset(i, d.nodeSize)); err != nil {
		return rnode.Node{}, &errs.IoError{Op: "read node page", Err: err}
	}
	return decodeNode(buf, d.dim)
}

func (d *DiskStorage) GetNode(i uint32) (rnode.Node, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i >= d.count {
		return rnode.Node{}, &errs.IndexError{Index: i, Count: d.count}
	}
	if n, ok := d.cache.lookup(i); ok {
		return n.Clone(), nil
	}
	n, err := d.readPage(i)
	if err != nil {
		return rnode.Node{}, err
	}
	if err := d.cache.fill(i, n, d.writePage); err != nil {
		return rnode.Node{}, err
	}
	return n.Clone(), nil
}

func (d *DiskStorage) SetNode(i uint32, n rnode.Node) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i >= d.count {
		return &errs.IndexError{Index: i, Count: d.count}
	}
	// Validate the node fits before it ever reaches the cache, so a
	// too-large node fails immediately rather than surfacing later
	// during an unrelated eviction.
	if _, err := encodeNode(n, d.dim, d.nodeSize); err != nil {
		return err
	}
	return d.cache.put(i, n.Clone(), d.writePage)
}

func (d *DiskStorage) AddNode(n rnode.Node) (uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf, err := encodeNode(n, d.dim, d.nodeSize)
	if err != nil {
		return 0, err
	}
	idx := d.count
	if _, err := d.f.WriteAt(buf, pageOffset(idx, d.nodeSize)); err != nil {
		return 0, &errs.IoError{Op: "append node page", Err: err}
	}
	d.count++
	return idx, nil
}

// Close flushes every dirty cache slot, syncs the file, and releases
// the file handle. Scoped so a caller that defers Close right after a
// successful Create/Open always releases the file on every exit path.
func (d *DiskStorage) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.cache.flushAll(d.writePage); err != nil {
		_ = d.f.Close()
		return err
	}
	if err := fdatasync(d.f.Fd()); err != nil {
		// fdatasync is a best-effort durability optimization; fall back
		// to the portable Sync below regardless of its outcome.
		_ = err
	}
	if err := d.f.Sync(); err != nil {
		_ = d.f.Close()
		return errors.Wrap(&errs.IoError{Op: "sync", Err: err}, "disk storage close")
	}
	if err := d.f.Close(); err != nil {
		return &errs.IoError{Op: "close", Err: err}
	}
	return nil
}
