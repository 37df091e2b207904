// Package sizing provides safe size arithmetic for block-aligned payloads.
package sizing

import "math"

// BlockSize is the size of every TAR header and payload block.
const BlockSize = 512

// ToInt64 converts a uint64 to int64, returning overflowErr if it doesn't fit.
func ToInt64(size uint64, overflowErr error) (int64, error) {
	if size > uint64(math.MaxInt64) {
		return 0, overflowErr
	}
	return int64(size), nil
}

// AddUint64 adds two uint64 values, returning (result, false) on overflow.
func AddUint64(a, b uint64) (uint64, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// Padding returns the number of bytes needed to pad size up to the next
// block boundary, in the range [0, BlockSize).
func Padding(size uint64) uint64 {
	return -size & (BlockSize - 1)
}

// PaddedSize rounds size up to a whole number of blocks and returns it as an
// int64 suitable for io.CopyN. It returns overflowErr for negative sizes or
// when the rounded value does not fit.
func PaddedSize(size int64, overflowErr error) (int64, error) {
	if size < 0 {
		return 0, overflowErr
	}
	total, ok := AddUint64(uint64(size), Padding(uint64(size)))
	if !ok {
		return 0, overflowErr
	}
	return ToInt64(total, overflowErr)
}
