package sizing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errOverflow = errors.New("overflow")

func TestPadding(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(0), Padding(0))
	assert.Equal(t, uint64(511), Padding(1))
	assert.Equal(t, uint64(0), Padding(512))
	assert.Equal(t, uint64(1), Padding(1023))
}

func TestPaddedSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size int64
		want int64
	}{
		{0, 0},
		{1, 512},
		{512, 512},
		{513, 1024},
		{10240, 10240},
	}
	for _, tt := range tests {
		got, err := PaddedSize(tt.size, errOverflow)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "size %d", tt.size)
	}
}

func TestPaddedSize_Overflow(t *testing.T) {
	t.Parallel()

	_, err := PaddedSize(math.MaxInt64, errOverflow)
	assert.ErrorIs(t, err, errOverflow)

	_, err = PaddedSize(-1, errOverflow)
	assert.ErrorIs(t, err, errOverflow)
}

func TestAddUint64(t *testing.T) {
	t.Parallel()

	sum, ok := AddUint64(1, 2)
	assert.True(t, ok)
	assert.Equal(t, uint64(3), sum)

	_, ok = AddUint64(math.MaxUint64, 1)
	assert.False(t, ok)
}
