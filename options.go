package tarprobe

import (
	"fmt"
	"log/slog"
	nethttp "net/http"
)

// Option configures a Checker.
type Option func(*Checker) error

// WithLogger sets the logger for check diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) error {
		c.logger = logger
		return nil
	}
}

// WithDigests computes the given digests over the complete raw input.
func WithDigests(kinds ...DigestKind) Option {
	return func(c *Checker) error {
		for _, k := range kinds {
			if k < DigestCRC32 || k > DigestSHA256 {
				return fmt.Errorf("%w: %d", ErrUnknownDigest, k)
			}
		}
		c.digests = kinds
		return nil
	}
}

// WithDigestNames is like WithDigests but takes names such as "crc32" or "SHA-1".
func WithDigestNames(names ...string) Option {
	return func(c *Checker) error {
		kinds := make([]DigestKind, 0, len(names))
		for _, name := range names {
			k, ok := ParseDigestKind(name)
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownDigest, name)
			}
			kinds = append(kinds, k)
		}
		c.digests = kinds
		return nil
	}
}

// WithProgress sets a callback for progress updates.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Checker) error {
		c.progress = fn
		return nil
	}
}

// WithEntryFunc sets a callback invoked for every decoded header.
// A non-nil return ends the check with a stream failure at that entry.
func WithEntryFunc(fn func(*Header) error) Option {
	return func(c *Checker) error {
		c.entryFn = fn
		return nil
	}
}

// WithDecompression enables detection of gzip, zstd, xz and lz4 wrappers.
// A detected wrapper is decoded before scanning and reported as the
// compression type.
func WithDecompression(enabled bool) Option {
	return func(c *Checker) error {
		c.decompress = enabled
		return nil
	}
}

// WithDecoderMaxMemory caps the memory a zstd decoder may allocate.
// Zero means no limit.
func WithDecoderMaxMemory(n uint64) Option {
	return func(c *Checker) error {
		c.maxDecoderMemory = n
		return nil
	}
}

// WithModuleInfo replaces the module identity attached to reports.
func WithModuleInfo(info ModuleInfo) Option {
	return func(c *Checker) error {
		c.module = info
		return nil
	}
}

// --- Remote Options ---

// WithHTTPClient sets the HTTP client used by CheckURL.
func WithHTTPClient(client *nethttp.Client) Option {
	return func(c *Checker) error {
		c.httpClient = client
		return nil
	}
}

// WithHTTPHeader adds a header to every request made by CheckURL.
func WithHTTPHeader(key, value string) Option {
	return func(c *Checker) error {
		if c.httpHeaders == nil {
			c.httpHeaders = make(nethttp.Header)
		}
		c.httpHeaders.Add(key, value)
		return nil
	}
}
