package tarprobe

import probecore "github.com/meigma/tarprobe/core"

// --- Re-exports from core ---

// Header is a decoded TAR header block.
type Header = probecore.Header

// Result is the raw outcome of one scan.
type Result = probecore.Result

// ErrorRecord describes the failure that ended a scan.
type ErrorRecord = probecore.ErrorRecord

// Dialect identifies the TAR header layout of an archive.
type Dialect = probecore.Dialect

// DigestKind identifies a checksum or hash algorithm.
type DigestKind = probecore.DigestKind

// DigestSet maps each computed kind to its hex value.
type DigestSet = probecore.DigestSet

// HeaderError reports a header block that failed validation.
type HeaderError = probecore.HeaderError

// StreamError reports any other failure while reading the archive.
type StreamError = probecore.StreamError

// Dialect constants.
const (
	DialectUnknown = probecore.DialectUnknown
	DialectV7      = probecore.DialectV7
	DialectUSTAR   = probecore.DialectUSTAR
	DialectPOSIX   = probecore.DialectPOSIX
	DialectGNU     = probecore.DialectGNU
	DialectSTAR    = probecore.DialectSTAR
)

// Digest kind constants.
const (
	DigestCRC32  = probecore.DigestCRC32
	DigestMD5    = probecore.DigestMD5
	DigestSHA1   = probecore.DigestSHA1
	DigestSHA256 = probecore.DigestSHA256
)

// ParseDigestKind accepts names like "CRC32", "SHA-1" or "sha256".
var ParseDigestKind = probecore.ParseDigestKind

// AllDigestKinds returns every supported digest kind in report order.
var AllDigestKinds = probecore.AllDigestKinds
