// Package stargz recognizes eStargz blobs, gzip-compressed tar streams that
// carry a table of contents for lazy pulling.
package stargz

import (
	"io"

	"github.com/containerd/stargz-snapshotter/estargz"
	"github.com/opencontainers/go-digest"
)

// TOCDigest returns the digest of the eStargz table of contents in the size
// bytes of ra. It reports false when ra is not an eStargz blob.
func TOCDigest(ra io.ReaderAt, size int64) (digest.Digest, bool) {
	r, err := estargz.Open(io.NewSectionReader(ra, 0, size))
	if err != nil {
		return "", false
	}
	return r.TOCDigest(), true
}
