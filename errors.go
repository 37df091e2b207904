package tarprobe

import (
	"errors"

	probecore "github.com/meigma/tarprobe/core"
	"github.com/meigma/tarprobe/internal/sniff"
)

// Errors re-exported from core.
var (
	// ErrChecksumMismatch is returned when a header's stored checksum does not
	// match the sum of its bytes.
	ErrChecksumMismatch = probecore.ErrChecksumMismatch

	// ErrInvalidNumeric is returned when a numeric header field cannot be decoded.
	ErrInvalidNumeric = probecore.ErrInvalidNumeric

	// ErrTruncated is returned when the stream ends inside a header or payload.
	ErrTruncated = probecore.ErrTruncated

	// ErrSizeOverflow is returned when a size value exceeds supported limits.
	ErrSizeOverflow = probecore.ErrSizeOverflow
)

// ErrDecompression is returned when a detected compression wrapper cannot be opened.
var ErrDecompression = sniff.ErrDecompression

// Sentinel errors specific to the tarprobe package.
var (
	// ErrUnknownDigest is returned when an option names an unsupported digest kind.
	ErrUnknownDigest = errors.New("tarprobe: unknown digest kind")

	// ErrNotRegular is returned by CheckFile for directories and other
	// non-regular files.
	ErrNotRegular = errors.New("tarprobe: not a regular file")
)
