// Package tarprobe checks whether a byte stream is a well-formed TAR archive
// and reports which header dialect it uses.
//
// A [Checker] runs a single forward pass over the input, validating the
// checksum of every header block and skipping payloads by their declared
// size. The outcome is a [Report]: well-formed and valid flags, the dialect
// of the first entry as the version, an entry count, optional digests of
// the complete input, and the message for the failure that ended the scan.
//
// # Quick Start
//
//	c, err := tarprobe.NewChecker(
//	    tarprobe.WithDigests(tarprobe.DigestCRC32, tarprobe.DigestSHA256),
//	)
//	if err != nil {
//	    return err
//	}
//	report, err := c.CheckFile(ctx, "layer.tar")
//	if err != nil {
//	    return err // ctx was canceled or the file could not be opened
//	}
//	if !report.WellFormed {
//	    fmt.Println(report.Message)
//	}
//
// # Compressed Inputs
//
// By default a compressed stream is simply not a well-formed TAR. Use
// [WithDecompression] to sniff gzip, zstd, xz and lz4 wrappers and scan the
// decoded archive instead. Digests always cover the raw bytes.
//
// For header-level access without report assembly, use the [core]
// subpackage directly.
package tarprobe
