package tartype

import "errors"

// Sentinel errors for scan operations.
var (
	// ErrChecksumMismatch is returned when a header's stored checksum does not
	// match the sum of its bytes.
	ErrChecksumMismatch = errors.New("tarprobe: header checksum mismatch")

	// ErrInvalidNumeric is returned when a numeric header field holds a
	// character that is not an octal digit.
	ErrInvalidNumeric = errors.New("tarprobe: invalid numeric field")

	// ErrTruncated is returned when the stream ends inside a header or payload.
	ErrTruncated = errors.New("tarprobe: unexpected end of stream")

	// ErrSizeOverflow is returned when a size value exceeds supported limits.
	ErrSizeOverflow = errors.New("tarprobe: size overflow")
)
