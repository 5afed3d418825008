package storage

import (
	"github.com/dustin/go-humanize"

	"rtreedb/pkg/errs"
	"rtreedb/pkg/rnode"
	"rtreedb/pkg/split"
)

// validateCreateParams checks the dimension/node-size/split-type
// combination a tree is about to be created with. Dimension below 1 and
// an undersized node_size are hard errors; there is no upper clamp on
// dimension here.
func validateCreateParams(dim, nodeSize int, st split.Kind) error {
	if dim < 1 {
		return &errs.ConfigError{Msg: "dimension must be at least 1"}
	}
	if !st.Valid() {
		return &errs.ConfigError{Msg: "unknown split type"}
	}
	min := rnode.MinNodeSize(dim)
	if nodeSize < min {
		return &errs.ConfigError{Msg: "node_size too small for this dimension: need at least " +
			humanize.Bytes(uint64(min)) + " for dimension " + humanize.Comma(int64(dim))}
	}
	return nil
}
