package tarprobe

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/tarprobe/core/testutil"
)

func TestDigest_KnownValues(t *testing.T) {
	t.Parallel()

	got, err := Digest(strings.NewReader("hello"), AllDigestKinds()...)
	require.NoError(t, err)
	assert.Equal(t, DigestSet{
		DigestCRC32:  "3610a686",
		DigestMD5:    "5d41402abc4b2a76b9719d911017c592",
		DigestSHA1:   "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d",
		DigestSHA256: "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
	}, got)
	assert.Equal(t, AllDigestKinds(), got.Kinds())
}

func TestDigest_Subset(t *testing.T) {
	t.Parallel()

	got, err := Digest(strings.NewReader("hello"), DigestSHA1, DigestSHA1, DigestKind(0), DigestKind(99))
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, []DigestKind{DigestSHA1}, got.Kinds())
}

func TestDigest_NoKinds(t *testing.T) {
	t.Parallel()

	got, err := Digest(strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDigest_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	got, err := Digest(&testutil.ErrReader{R: strings.NewReader("partial"), Err: boom}, DigestMD5)
	require.ErrorIs(t, err, boom)
	assert.Empty(t, got)
}

func TestAccumulator_IncrementalWrites(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte("0123456789"), 1000)
	want, err := Digest(bytes.NewReader(data), AllDigestKinds()...)
	require.NoError(t, err)

	acc := NewAccumulator(AllDigestKinds()...)
	for chunk := range slices.Chunk(data, 777) {
		n, err := acc.Write(chunk)
		require.NoError(t, err)
		require.Equal(t, len(chunk), n)
	}
	assert.Equal(t, want, acc.Sum())
}

func TestDigestSet_OCIDigest(t *testing.T) {
	t.Parallel()

	got, err := Digest(strings.NewReader("hello"), DigestSHA256)
	require.NoError(t, err)

	d := got.OCIDigest()
	require.NoError(t, d.Validate())
	assert.Equal(t, digest.FromString("hello"), d)

	assert.Empty(t, DigestSet{DigestMD5: "x"}.OCIDigest())
}

func TestParseDigestKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want DigestKind
		ok   bool
	}{
		{"CRC32", DigestCRC32, true},
		{"crc32", DigestCRC32, true},
		{"MD5", DigestMD5, true},
		{"SHA-1", DigestSHA1, true},
		{"sha1", DigestSHA1, true},
		{"sha256", DigestSHA256, true},
		{"Sha-256", DigestSHA256, true},
		{"sha512", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseDigestKind(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	for _, k := range AllDigestKinds() {
		got, ok := ParseDigestKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
}
