//go:build !unix

package storage

// fdatasync has no equivalent outside the unix family here; callers
// fall back to the file's own Sync for shutdown durability.
func fdatasync(fd uintptr) error {
	return nil
}
