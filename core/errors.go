package tarprobe

import (
	"errors"

	"github.com/meigma/tarprobe/core/internal/tartype"
)

// Re-export sentinel errors.
var (
	// ErrChecksumMismatch is returned when a header's stored checksum does not
	// match the sum of its bytes.
	ErrChecksumMismatch = tartype.ErrChecksumMismatch

	// ErrInvalidNumeric is returned when a numeric header field is not valid octal.
	ErrInvalidNumeric = tartype.ErrInvalidNumeric

	// ErrTruncated is returned when the stream ends inside a header or payload.
	ErrTruncated = tartype.ErrTruncated

	// ErrSizeOverflow is returned when a size value exceeds supported limits.
	ErrSizeOverflow = tartype.ErrSizeOverflow
)

// HeaderError reports a header block that failed validation: a checksum
// mismatch or an undecodable numeric field.
type HeaderError struct {
	// Field names the header field at fault ("chksum", "size", ...).
	Field string
	Err   error
}

func (e *HeaderError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error()
}

func (e *HeaderError) Unwrap() error { return e.Err }

// StreamError reports any other failure while reading the archive: I/O
// errors, truncation, or a rejection from an entry callback.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string { return e.Err.Error() }

func (e *StreamError) Unwrap() error { return e.Err }

// IsHeaderError reports whether err is, or wraps, a *HeaderError.
func IsHeaderError(err error) bool {
	var he *HeaderError
	return errors.As(err, &he)
}
