package octal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field string
		want  int64
	}{
		{name: "zero padded", field: "00000000644\x00", want: 0o644},
		{name: "leading spaces", field: "   1750 \x00", want: 0o1750},
		{name: "space terminated", field: "0000012 ", want: 0o12},
		{name: "all nul", field: "\x00\x00\x00\x00\x00\x00\x00\x00", want: 0},
		{name: "all spaces", field: "        ", want: 0},
		{name: "garbage after terminator", field: "17\x00zzzz", want: 0o17},
		{name: "full width without terminator", field: "77777777777", want: 0o77777777777},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse([]byte(tt.field))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_InvalidDigit(t *testing.T) {
	t.Parallel()

	for _, field := range []string{"0000008\x00", "12a4\x00", "-1\x00"} {
		_, err := Parse([]byte(field))
		assert.ErrorIs(t, err, ErrSyntax, "field %q", field)
	}
}

func TestParse_Base256(t *testing.T) {
	t.Parallel()

	field := make([]byte, 12)
	FormatBase256(field, 1<<40)
	got, err := Parse(field)
	require.NoError(t, err)
	assert.Equal(t, int64(1<<40), got)

	FormatBase256(field, -5)
	got, err = Parse(field)
	require.NoError(t, err)
	assert.Equal(t, int64(-5), got)
}

func TestParse_Base256Overflow(t *testing.T) {
	t.Parallel()

	field := []byte{0x80, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	_, err := Parse(field)
	assert.ErrorIs(t, err, ErrRange)
}

func TestParseOctal_RejectsBase256(t *testing.T) {
	t.Parallel()

	field := make([]byte, 8)
	FormatBase256(field, 4523)
	_, err := ParseOctal(field)
	require.ErrorIs(t, err, ErrSyntax)

	got, err := ParseOctal([]byte("010653\x00 "))
	require.NoError(t, err)
	assert.Equal(t, int64(4523), got)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	field := make([]byte, 8)
	require.True(t, Format(field, 0o755))
	assert.Equal(t, "0000755\x00", string(field))

	got, err := Parse(field)
	require.NoError(t, err)
	assert.Equal(t, int64(0o755), got)

	assert.False(t, Format(field, 1<<30), "value wider than seven digits")
	assert.False(t, Format(field, -1))
}
