// Package file provides reader wrappers used while scanning an input stream.
package file

import (
	"errors"
	"io"
)

// ErrOverflow indicates a counter exceeded its maximum value.
var ErrOverflow = errors.New("counter overflow")

// CountingReader wraps a reader and counts bytes read.
type CountingReader struct {
	R io.Reader
	N uint64
}

// Read implements io.Reader.
func (cr *CountingReader) Read(p []byte) (int, error) {
	n, err := cr.R.Read(p)
	if n > 0 {
		//nolint:gosec // n is guaranteed non-negative by io.Reader contract
		if cr.N > ^uint64(0)-uint64(n) {
			return n, ErrOverflow
		}
		cr.N += uint64(n) //nolint:gosec // overflow checked above
	}
	return n, err
}

// ReadBlock fills block from r. It distinguishes a clean end of input
// (io.EOF, nothing read) from a partial block (io.ErrUnexpectedEOF).
func ReadBlock(r io.Reader, block []byte) error {
	_, err := io.ReadFull(r, block)
	return err
}

// Skip discards exactly n bytes from r. Running out of input before n bytes
// have been discarded is reported as io.ErrUnexpectedEOF.
func Skip(r io.Reader, n int64) error {
	if n == 0 {
		return nil
	}
	copied, err := io.CopyN(io.Discard, r, n)
	if err == io.EOF && copied < n {
		return io.ErrUnexpectedEOF
	}
	return err
}
