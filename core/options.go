package tarprobe

import (
	"io"
	"log/slog"
)

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger used for scan diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// WithDigests enables digest computation over the complete raw input.
// Passing no kinds disables digests.
func WithDigests(kinds ...DigestKind) Option {
	return func(s *Scanner) {
		s.digests = kinds
	}
}

// WithProgress sets a callback for progress updates.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Scanner) {
		s.progress = fn
	}
}

// WithEntryFunc sets a callback invoked for every decoded header, in order.
// A non-nil return stops the scan; it is reported as a stream failure at
// that entry.
func WithEntryFunc(fn func(*Header) error) Option {
	return func(s *Scanner) {
		s.entryFn = fn
	}
}

// WithStreamFilter installs a function that wraps the raw input before
// headers are read, such as a decompressor. Digests and byte counts always
// reflect the raw input. An error from the filter fails the scan at the
// first entry.
func WithStreamFilter(fn func(io.Reader) (io.Reader, error)) Option {
	return func(s *Scanner) {
		s.filter = fn
	}
}
