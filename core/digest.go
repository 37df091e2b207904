package tarprobe

import (
	"crypto/md5"      //nolint:gosec // reported checksum, not used for security
	"crypto/sha1"     //nolint:gosec // reported checksum, not used for security
	_ "crypto/sha256" // registers digest.SHA256
	"encoding/hex"
	"hash"
	"hash/crc32"
	"io"
	"slices"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/tarprobe/core/internal/tartype"
)

// DigestKind identifies a checksum or hash algorithm applied to the raw input.
type DigestKind = tartype.DigestKind

// Digest kinds.
const (
	DigestCRC32  = tartype.DigestCRC32
	DigestMD5    = tartype.DigestMD5
	DigestSHA1   = tartype.DigestSHA1
	DigestSHA256 = tartype.DigestSHA256
)

// AllDigestKinds returns every supported kind in report order.
func AllDigestKinds() []DigestKind {
	return slices.Clone(tartype.AllDigestKinds)
}

// ParseDigestKind accepts names like "CRC32", "SHA-1" or "sha256".
func ParseDigestKind(s string) (DigestKind, bool) {
	return tartype.ParseDigestKind(s)
}

// DigestSet maps each computed kind to its lowercase hex value.
type DigestSet map[DigestKind]string

// Kinds returns the kinds present in the set in report order.
func (s DigestSet) Kinds() []DigestKind {
	kinds := make([]DigestKind, 0, len(s))
	for _, k := range tartype.AllDigestKinds {
		if _, ok := s[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// OCIDigest returns the SHA-256 value in OCI content-digest form
// ("sha256:<hex>"), or "" when it was not computed.
func (s DigestSet) OCIDigest() digest.Digest {
	v, ok := s[DigestSHA256]
	if !ok {
		return ""
	}
	return digest.NewDigestFromEncoded(digest.SHA256, v)
}

// Accumulator streams bytes through a set of digest algorithms.
// It implements io.Writer; writes never fail.
type Accumulator struct {
	kinds  []DigestKind
	hashes []hash.Hash
	w      io.Writer
}

// NewAccumulator returns an Accumulator for the given kinds. Unknown and
// duplicate kinds are ignored.
func NewAccumulator(kinds ...DigestKind) *Accumulator {
	a := &Accumulator{}
	writers := make([]io.Writer, 0, len(kinds))
	for _, k := range kinds {
		if slices.Contains(a.kinds, k) {
			continue
		}
		h := newHash(k)
		if h == nil {
			continue
		}
		a.kinds = append(a.kinds, k)
		a.hashes = append(a.hashes, h)
		writers = append(writers, h)
	}
	a.w = io.MultiWriter(writers...)
	return a
}

// newHash returns the hash for k, or nil when k is not supported.
func newHash(k DigestKind) hash.Hash {
	switch k {
	case DigestCRC32:
		return crc32.NewIEEE()
	case DigestMD5:
		return md5.New() //nolint:gosec // see import
	case DigestSHA1:
		return sha1.New() //nolint:gosec // see import
	case DigestSHA256:
		return digest.Canonical.Hash()
	default:
		return nil
	}
}

// Write implements io.Writer.
func (a *Accumulator) Write(p []byte) (int, error) {
	return a.w.Write(p)
}

// Sum returns the digests of everything written so far.
func (a *Accumulator) Sum() DigestSet {
	set := make(DigestSet, len(a.kinds))
	for i, k := range a.kinds {
		set[k] = hex.EncodeToString(a.hashes[i].Sum(nil))
	}
	return set
}

// Digest reads r to the end and returns the digests of its bytes. If reading
// fails the digests are incomplete, so an empty set is returned with the error.
func Digest(r io.Reader, kinds ...DigestKind) (DigestSet, error) {
	a := NewAccumulator(kinds...)
	if _, err := io.Copy(a, r); err != nil {
		return DigestSet{}, err
	}
	return a.Sum(), nil
}
