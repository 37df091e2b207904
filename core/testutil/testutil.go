// Package testutil builds TAR header blocks and archives for tests.
package testutil

import (
	"bytes"
	"io"
	"sync/atomic"

	"github.com/meigma/tarprobe/core/internal/octal"
)

// BlockSize is the size of a TAR block.
const BlockSize = 512

// Magic and version bytes (offset 257, eight bytes) for each header layout.
const (
	MagicV7    = ""
	MagicUSTAR = "ustar\x0000"
	MagicGNU   = "ustar  \x00"
)

// Header describes a header block to build. Zero values produce a regular
// file named "file.txt" with mode 0644 in USTAR layout.
type Header struct {
	Name     string
	Mode     int64
	UID      int64
	GID      int64
	Size     int64
	ModTime  int64
	Typeflag byte
	LinkName string
	Magic    string
	Uname    string
	Gname    string
	Prefix   string

	// Mutate, if set, edits the raw block before the checksum is computed.
	Mutate func(block []byte)
}

// Block encodes h as a 512-byte header block with a valid checksum.
func Block(h Header) []byte {
	if h.Name == "" {
		h.Name = "file.txt"
	}
	if h.Mode == 0 {
		h.Mode = 0o644
	}
	if h.Typeflag == 0 {
		h.Typeflag = '0'
	}

	b := make([]byte, BlockSize)
	copy(b[0:100], h.Name)
	octal.Format(b[100:108], h.Mode)
	octal.Format(b[108:116], h.UID)
	octal.Format(b[116:124], h.GID)
	if !octal.Format(b[124:136], h.Size) {
		octal.FormatBase256(b[124:136], h.Size)
	}
	octal.Format(b[136:148], h.ModTime)
	b[156] = h.Typeflag
	copy(b[157:257], h.LinkName)
	copy(b[257:265], h.Magic)
	if h.Magic != MagicV7 {
		copy(b[265:297], h.Uname)
		copy(b[297:329], h.Gname)
		octal.Format(b[329:337], 0)
		octal.Format(b[337:345], 0)
		copy(b[345:500], h.Prefix)
	}
	if h.Mutate != nil {
		h.Mutate(b)
	}
	SetChecksum(b)
	return b
}

// USTAR is shorthand for a USTAR header with the given name and size.
func USTAR(name string, size int64) Header {
	return Header{Name: name, Size: size, Magic: MagicUSTAR}
}

// STAR returns a USTAR-magic header whose atime and ctime fields use the
// STAR layout.
func STAR(name string) Header {
	return Header{
		Name:  name,
		Magic: MagicUSTAR,
		Mutate: func(b []byte) {
			for i := 345; i < 500; i++ {
				b[i] = 0
			}
			copy(b[476:488], "14300033160 ")
			copy(b[488:500], "14300033161 ")
		},
	}
}

// Checksum returns the unsigned sum of b with the checksum field read as spaces.
func Checksum(b []byte) int64 {
	var sum int64
	for i, c := range b {
		if 148 <= i && i < 156 {
			c = ' '
		}
		sum += int64(c)
	}
	return sum
}

// SetChecksum writes the checksum of b into its checksum field.
func SetChecksum(b []byte) {
	octal.Format(b[148:155], Checksum(b))
	b[155] = ' '
}

// ZeroBlock returns an end-of-archive block.
func ZeroBlock() []byte {
	return make([]byte, BlockSize)
}

// Archive accumulates header and payload blocks.
type Archive struct {
	buf bytes.Buffer
}

// Add appends a header for h followed by a payload of h.Size bytes, padded
// to a block boundary. The payload repeats fill.
func (a *Archive) Add(h Header, fill byte) *Archive {
	a.buf.Write(Block(h))
	if h.Size > 0 {
		padded := (h.Size + BlockSize - 1) / BlockSize * BlockSize
		payload := bytes.Repeat([]byte{fill}, int(h.Size))
		a.buf.Write(payload)
		a.buf.Write(make([]byte, padded-h.Size))
	}
	return a
}

// AddRaw appends raw bytes unchanged.
func (a *Archive) AddRaw(b []byte) *Archive {
	a.buf.Write(b)
	return a
}

// End appends n zero-filled blocks.
func (a *Archive) End(n int) *Archive {
	for range n {
		a.buf.Write(ZeroBlock())
	}
	return a
}

// Bytes returns the archive built so far.
func (a *Archive) Bytes() []byte {
	return bytes.Clone(a.buf.Bytes())
}

// CloseCounter is a reader that records how many times it was closed.
type CloseCounter struct {
	io.Reader
	closes atomic.Int32
}

// NewCloseCounter wraps data in a CloseCounter.
func NewCloseCounter(data []byte) *CloseCounter {
	return &CloseCounter{Reader: bytes.NewReader(data)}
}

// Close implements io.Closer.
func (c *CloseCounter) Close() error {
	c.closes.Add(1)
	return nil
}

// Closes returns the number of Close calls.
func (c *CloseCounter) Closes() int {
	return int(c.closes.Load())
}

// ErrReader returns data and then fails with err.
type ErrReader struct {
	R   io.Reader
	Err error
}

// Read implements io.Reader.
func (e *ErrReader) Read(p []byte) (int, error) {
	n, err := e.R.Read(p)
	if err == io.EOF {
		return n, e.Err
	}
	return n, err
}
