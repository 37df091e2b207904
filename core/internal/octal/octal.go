// Package octal decodes and encodes the fixed-width numeric fields of a TAR
// header block.
//
// Fields are normally octal ASCII, optionally preceded by spaces and
// terminated by a NUL or space. GNU tar writes values that do not fit in
// octal using a big-endian base-256 encoding flagged by the high bit of the
// first byte; both forms are accepted.
package octal

import (
	"errors"
	"fmt"
)

// ErrSyntax reports a byte that is not an octal digit before the field terminator.
var ErrSyntax = errors.New("not an octal digit")

// ErrRange reports a value that does not fit in an int64.
var ErrRange = errors.New("value out of range")

// Parse decodes a numeric field. An all-NUL or all-space field decodes to 0.
func Parse(field []byte) (int64, error) {
	if len(field) > 0 && field[0]&0x80 != 0 {
		return parseBase256(field)
	}
	return ParseOctal(field)
}

// ParseOctal decodes a field that must be octal ASCII. Unlike [Parse] it
// rejects the base-256 form.
func ParseOctal(field []byte) (int64, error) {
	i := 0
	for i < len(field) && field[i] == ' ' {
		i++
	}

	var x uint64
	for ; i < len(field); i++ {
		c := field[i]
		if c == 0 || c == ' ' {
			break
		}
		if c < '0' || c > '7' {
			return 0, fmt.Errorf("%w: %q at offset %d", ErrSyntax, c, i)
		}
		if x>>60 != 0 {
			return 0, ErrRange
		}
		x = x<<3 | uint64(c-'0')
	}
	if x>>63 != 0 {
		return 0, ErrRange
	}
	return int64(x), nil //nolint:gosec // range checked above
}

// parseBase256 decodes the GNU binary form: the remaining bits form a two's
// complement big-endian integer.
func parseBase256(field []byte) (int64, error) {
	inv, sign, incr := byte(0x00), int64(1), int64(0)
	if field[0]&0x40 != 0 {
		inv, sign, incr = 0xff, -1, 1
	}

	var x uint64
	for i, c := range field {
		c ^= inv
		if i == 0 {
			c &= 0x7f
		}
		if x>>56 != 0 {
			return 0, ErrRange
		}
		x = x<<8 | uint64(c)
	}
	if x>>63 != 0 {
		return 0, ErrRange
	}
	return sign*int64(x) - incr, nil //nolint:gosec // range checked above
}

// Format writes v into field as zero-padded octal followed by a NUL
// terminator, the layout produced by USTAR writers. It reports false if v
// is negative or needs more digits than the field holds.
func Format(field []byte, v int64) bool {
	if v < 0 || len(field) == 0 {
		return false
	}
	digits := len(field) - 1
	field[digits] = 0
	for i := digits - 1; i >= 0; i-- {
		field[i] = byte('0' + v&7)
		v >>= 3
	}
	return v == 0
}

// FormatBase256 writes v into field using the GNU binary encoding.
func FormatBase256(field []byte, v int64) {
	for i := len(field) - 1; i >= 0; i-- {
		field[i] = byte(v)
		v >>= 8
	}
	field[0] |= 0x80
}
