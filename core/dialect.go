package tarprobe

import (
	"bytes"

	"github.com/meigma/tarprobe/core/internal/tartype"
)

// Dialect identifies the TAR header layout that produced an archive.
type Dialect = tartype.Dialect

// Dialect values. String returns the report names "v7", "ustar", "posix",
// "gnu", "star" and "unknown".
const (
	DialectUnknown = tartype.DialectUnknown
	DialectV7      = tartype.DialectV7
	DialectUSTAR   = tartype.DialectUSTAR
	DialectPOSIX   = tartype.DialectPOSIX
	DialectGNU     = tartype.DialectGNU
	DialectSTAR    = tartype.DialectSTAR
)

// ParseDialect converts a report name back to a Dialect.
func ParseDialect(s string) (Dialect, bool) {
	return tartype.ParseDialect(s)
}

// Classify determines the dialect of a decoded header.
//
// Magic and version are compared on the raw block. A block without a
// "ustar" magic is the legacy V7 layout. Headers carrying the
// POSIX "ustar\0" magic are split further by inspecting bytes that STAR
// repurposes (the tail of the prefix field and its atime/ctime fields),
// then by the PAX extended-header type flag. This follows the check in GNU
// tar's decode_header. Old and new GNU layouts cannot be told apart from a
// single header and are both reported as DialectGNU. A "ustar" magic that
// matches none of the known layouts is DialectUnknown.
func Classify(h *Header, b *Block) Dialect {
	magic := b[257:265]
	switch {
	case !bytes.HasPrefix(b.magic(), []byte("ustar")):
		return DialectV7
	case string(magic) == magicGNU:
		return DialectGNU
	case string(b.magic()) == magicUSTAR:
		if isSTAR(b) {
			return DialectSTAR
		}
		if h.Typeflag == 'x' || h.Typeflag == 'X' {
			return DialectPOSIX
		}
		return DialectUSTAR
	default:
		return DialectUnknown
	}
}

// isSTAR reports whether a ustar-magic block uses the STAR layout: the
// 131-byte prefix at offset 345 is NUL-terminated and the atime and ctime
// fields at 476 and 488 each start with an octal digit and end in a space.
func isSTAR(b *Block) bool {
	prefix := b[345 : 345+131]
	atime := b[476 : 476+12]
	ctime := b[488 : 488+12]
	return prefix[130] == 0 &&
		isOctal(atime[0]) && atime[11] == ' ' &&
		isOctal(ctime[0]) && ctime[11] == ' '
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}
