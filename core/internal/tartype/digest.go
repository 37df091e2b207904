package tartype

import "strings"

// DigestKind identifies a checksum or hash algorithm applied to the raw input.
type DigestKind uint8

const (
	DigestCRC32 DigestKind = iota + 1
	DigestMD5
	DigestSHA1
	DigestSHA256
)

// AllDigestKinds lists every supported kind in report order.
var AllDigestKinds = []DigestKind{DigestCRC32, DigestMD5, DigestSHA1, DigestSHA256}

// String returns the human-readable name of the algorithm.
func (k DigestKind) String() string {
	switch k {
	case DigestCRC32:
		return "CRC32"
	case DigestMD5:
		return "MD5"
	case DigestSHA1:
		return "SHA-1"
	case DigestSHA256:
		return "SHA-256"
	default:
		return "unknown"
	}
}

// ParseDigestKind accepts the names produced by String as well as the
// lowercase, punctuation-free spellings used on command lines ("sha1", "crc32").
func ParseDigestKind(s string) (DigestKind, bool) {
	norm := strings.ToLower(strings.ReplaceAll(s, "-", ""))
	for _, k := range AllDigestKinds {
		if norm == strings.ToLower(strings.ReplaceAll(k.String(), "-", "")) {
			return k, true
		}
	}
	return 0, false
}
