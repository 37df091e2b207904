// Package tarprobe decides whether a byte stream is a well-formed TAR archive
// and identifies the header dialect that produced it.
//
// A scan walks the archive one 512-byte header block at a time:
//   - each header's checksum and numeric fields are verified
//   - the first header fixes the archive dialect (v7, ustar, posix, gnu, star)
//   - payload blocks are skipped using the declared size, never interpreted
//   - a zero-filled block ends the archive
//
// Scanning stops at the first malformed header or read failure; there is no
// attempt to resynchronize. Digests of the complete raw input may be computed
// in the same pass and are reported independently of the scan outcome.
package tarprobe
