package sniff

import (
	"fmt"
	"io"
)

// headerReader lets the first bytes of a stream be inspected and then read
// again as part of the stream.
type headerReader struct {
	r      io.Reader
	header []byte
	unread []byte
}

func newHeaderReader(r io.Reader, size int) (*headerReader, error) {
	buf := make([]byte, size)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("read header: %w", err)
	}
	return &headerReader{r: r, header: buf[:n], unread: buf[:n]}, nil
}

func (h *headerReader) Read(p []byte) (int, error) {
	if len(h.unread) > 0 {
		n := copy(p, h.unread)
		h.unread = h.unread[n:]
		return n, nil
	}
	return h.r.Read(p)
}

// PeekHeader returns the leading bytes captured at construction, which may
// be shorter than requested for a short stream.
func (h *headerReader) PeekHeader() []byte {
	return h.header
}
