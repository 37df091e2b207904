package stargz

import (
	"bytes"
	"io"
	"testing"

	"github.com/containerd/stargz-snapshotter/estargz"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbatts/tar-split/archive/tar"
)

func buildTar(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, name := range []string{"a.txt", "b.txt"} {
		body := []byte("contents of " + name)
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(body)),
		}))
		_, err := tw.Write(body)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func TestTOCDigest_EStargz(t *testing.T) {
	t.Parallel()

	tarData := buildTar(t)
	blob, err := estargz.Build(io.NewSectionReader(bytes.NewReader(tarData), 0, int64(len(tarData))))
	require.NoError(t, err)
	defer blob.Close()

	var out bytes.Buffer
	_, err = io.Copy(&out, blob)
	require.NoError(t, err)

	got, ok := TOCDigest(bytes.NewReader(out.Bytes()), int64(out.Len()))
	require.True(t, ok)
	assert.Equal(t, blob.TOCDigest(), got)
}

func TestTOCDigest_PlainGzip(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	zw := gzip.NewWriter(&out)
	_, err := zw.Write(buildTar(t))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, ok := TOCDigest(bytes.NewReader(out.Bytes()), int64(out.Len()))
	assert.False(t, ok)
}

func TestTOCDigest_TooShort(t *testing.T) {
	t.Parallel()

	_, ok := TOCDigest(bytes.NewReader([]byte{0x1f, 0x8b}), 2)
	assert.False(t, ok)
}
