// Package errs defines the typed error kinds the R-tree engine surfaces,
// per the error handling design: configuration errors at creation time,
// I/O failures from the underlying file, and two "this is always a bug"
// kinds (index and invariant violations) that storage implementations
// raise when a caller or the engine itself misuses the contract.
package errs

import "fmt"

// ConfigError reports an invalid dimension/node-size combination, or a
// corrupt/unreadable on-disk header, discovered at creation/open time.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "rtree: config error: " + e.Msg }

// IoError wraps an underlying file read/write failure. The wrapped error
// is reachable via errors.Unwrap/errors.As so callers can still inspect
// the root cause (e.g. *os.PathError).
type IoError struct {
	Op  string
	Err error
}

func (e *IoError) Error() string { return fmt.Sprintf("rtree: io error during %s: %v", e.Op, e.Err) }
func (e *IoError) Unwrap() error { return e.Err }

// IndexError reports a get_node/set_node call with an out-of-range node
// index. Always a bug: storage never hands out indices it didn't create.
type IndexError struct {
	Index uint32
	Count uint32
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("rtree: index error: node %d out of range (count=%d)", e.Index, e.Count)
}

// InvariantViolation reports an attempt to serialize a node that does not
// fit in node_size bytes. Either a split was needed and wasn't performed,
// or the node's dimension disagrees with the storage's configured
// dimension.
type InvariantViolation struct {
	Msg string
}

func (e *InvariantViolation) Error() string { return "rtree: invariant violation: " + e.Msg }
