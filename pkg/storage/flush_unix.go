//go:build unix

package storage

import "golang.org/x/sys/unix"

// fdatasync durably flushes a file's data to disk on unix-family
// targets, skipping the metadata sync os.File.Sync performs. Split by
// build tag since the syscall has no portable equivalent.
func fdatasync(fd uintptr) error {
	return unix.Fdatasync(int(fd))
}
