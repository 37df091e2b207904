package file

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountingReader(t *testing.T) {
	t.Parallel()

	cr := &CountingReader{R: strings.NewReader("hello world")}
	data, err := io.ReadAll(cr)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
	assert.Equal(t, uint64(11), cr.N)
}

func TestReadBlock(t *testing.T) {
	t.Parallel()

	block := make([]byte, 4)

	err := ReadBlock(bytes.NewReader(nil), block)
	assert.ErrorIs(t, err, io.EOF)

	err = ReadBlock(bytes.NewReader([]byte{1, 2}), block)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	err = ReadBlock(bytes.NewReader([]byte{1, 2, 3, 4, 5}), block)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, block)
}

func TestSkip(t *testing.T) {
	t.Parallel()

	r := strings.NewReader("0123456789")
	require.NoError(t, Skip(r, 4))
	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "456789", string(rest))

	assert.NoError(t, Skip(strings.NewReader(""), 0))
	assert.ErrorIs(t, Skip(strings.NewReader("0123"), 10), io.ErrUnexpectedEOF)
}
