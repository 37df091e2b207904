package sniff

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/pierrec/lz4/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

var payload = bytes.Repeat([]byte("ustar payload "), 300)

func compress(t *testing.T, codec Codec, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	var w io.WriteCloser
	switch codec {
	case CodecGzip:
		w = gzip.NewWriter(&buf)
	case CodecZstd:
		enc, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		w = enc
	case CodecXZ:
		xw, err := xz.NewWriter(&buf)
		require.NoError(t, err)
		w = xw
	case CodecLZ4:
		w = lz4.NewWriter(&buf)
	default:
		return bytes.Clone(data)
	}
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestOpen_Codecs(t *testing.T) {
	t.Parallel()

	for _, codec := range []Codec{CodecNone, CodecGzip, CodecZstd, CodecXZ, CodecLZ4} {
		t.Run(codec.String(), func(t *testing.T) {
			t.Parallel()

			raw := compress(t, codec, payload)
			assert.Equal(t, codec, Detect(raw))

			rc, got, err := Open(bytes.NewReader(raw), Options{MaxMemory: 64 << 20})
			require.NoError(t, err)
			defer rc.Close()
			assert.Equal(t, codec, got)

			decoded, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, payload, decoded)
		})
	}
}

func TestOpen_ShortInput(t *testing.T) {
	t.Parallel()

	for _, in := range [][]byte{nil, {0x1f}, []byte("abc")} {
		rc, codec, err := Open(bytes.NewReader(in), Options{})
		require.NoError(t, err)
		assert.Equal(t, CodecNone, codec)

		out, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, len(in), len(out))
		require.NoError(t, rc.Close())
	}
}

func TestOpen_CorruptHeader(t *testing.T) {
	t.Parallel()

	raw := []byte{0x1f, 0x8b, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	_, codec, err := Open(bytes.NewReader(raw), Options{})
	require.ErrorIs(t, err, ErrDecompression)
	assert.Equal(t, CodecGzip, codec)
}

func TestOpen_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, _, err := Open(failingReader{boom}, Options{})
	require.ErrorIs(t, err, boom)
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestCodec_MediaType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ocispec.MediaTypeImageLayer, CodecNone.MediaType())
	assert.Equal(t, ocispec.MediaTypeImageLayerGzip, CodecGzip.MediaType())
	assert.Equal(t, ocispec.MediaTypeImageLayerZstd, CodecZstd.MediaType())
	assert.Empty(t, CodecXZ.MediaType())
	assert.Empty(t, CodecLZ4.MediaType())
}

func TestHeaderReader_ReplaysHeader(t *testing.T) {
	t.Parallel()

	hr, err := newHeaderReader(bytes.NewReader([]byte("abcdefgh")), 3)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), hr.PeekHeader())

	out, err := io.ReadAll(hr)
	require.NoError(t, err)
	assert.Equal(t, "abcdefgh", string(out))
	assert.Equal(t, []byte("abc"), hr.PeekHeader())
}
