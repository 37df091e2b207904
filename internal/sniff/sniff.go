// Package sniff detects and decodes a compression layer wrapped around an
// archive stream.
package sniff

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/pierrec/lz4/v3"
	"github.com/ulikunitz/xz"
)

// ErrDecompression is returned when a detected codec cannot open the stream.
var ErrDecompression = errors.New("tarprobe: decompression failed")

// Codec identifies the compression wrapped around a stream.
type Codec uint8

const (
	CodecNone Codec = iota
	CodecGzip
	CodecZstd
	CodecXZ
	CodecLZ4
)

// String returns the codec name reported as the compression type.
func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecGzip:
		return "gzip"
	case CodecZstd:
		return "zstd"
	case CodecXZ:
		return "xz"
	case CodecLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// MediaType returns the OCI layer media type for a tar stream wrapped in c.
// It returns "" for codecs the image spec does not name.
func (c Codec) MediaType() string {
	switch c {
	case CodecNone:
		return ocispec.MediaTypeImageLayer
	case CodecGzip:
		return ocispec.MediaTypeImageLayerGzip
	case CodecZstd:
		return ocispec.MediaTypeImageLayerZstd
	default:
		return ""
	}
}

type signature struct {
	codec Codec
	magic []byte
}

var signatures = []signature{
	{CodecGzip, []byte{0x1f, 0x8b}},
	{CodecZstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{CodecXZ, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
	{CodecLZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
}

// HeaderSize is the number of leading bytes Detect needs.
var HeaderSize = maxSignatureLen()

func maxSignatureLen() int {
	n := 0
	for _, s := range signatures {
		n = max(n, len(s.magic))
	}
	return n
}

// Detect returns the codec whose magic prefixes header.
func Detect(header []byte) Codec {
	for _, s := range signatures {
		if bytes.HasPrefix(header, s.magic) {
			return s.codec
		}
	}
	return CodecNone
}

// Options tunes the decoders.
type Options struct {
	// MaxMemory caps zstd decoder memory; 0 means no limit.
	MaxMemory uint64
}

// Open sniffs the first bytes of r and returns a reader over the decoded
// stream. An unrecognized stream is returned unchanged with CodecNone.
// The caller must Close the returned reader; it does not close r.
func Open(r io.Reader, opts Options) (io.ReadCloser, Codec, error) {
	hr, err := newHeaderReader(r, HeaderSize)
	if err != nil {
		return nil, CodecNone, err
	}
	codec := Detect(hr.PeekHeader())

	rc, err := decoder(codec, hr, opts)
	if err != nil {
		return nil, codec, fmt.Errorf("%w: %s: %w", ErrDecompression, codec, err)
	}
	return rc, codec, nil
}

func decoder(codec Codec, r io.Reader, opts Options) (io.ReadCloser, error) {
	switch codec {
	case CodecGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr, nil
	case CodecZstd:
		zopts := []zstd.DOption{zstd.WithDecoderConcurrency(1)}
		if opts.MaxMemory > 0 {
			zopts = append(zopts, zstd.WithDecoderMaxMemory(opts.MaxMemory))
		}
		dec, err := zstd.NewReader(r, zopts...)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case CodecXZ:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(xr), nil
	case CodecLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}
