// Package tartype defines shared types used across the tarprobe core and its
// internal packages. This avoids circular imports between core and its helpers.
package tartype

// Dialect identifies the TAR header layout that produced an archive.
type Dialect uint8

const (
	DialectUnknown Dialect = iota
	DialectV7
	DialectUSTAR
	DialectPOSIX
	DialectGNU
	DialectSTAR
)

// String returns the report name of the dialect.
func (d Dialect) String() string {
	switch d {
	case DialectV7:
		return "v7"
	case DialectUSTAR:
		return "ustar"
	case DialectPOSIX:
		return "posix"
	case DialectGNU:
		return "gnu"
	case DialectSTAR:
		return "star"
	default:
		return "unknown"
	}
}

// ParseDialect is the inverse of [Dialect.String].
func ParseDialect(s string) (Dialect, bool) {
	for d := DialectUnknown; d <= DialectSTAR; d++ {
		if d.String() == s {
			return d, true
		}
	}
	return DialectUnknown, false
}
