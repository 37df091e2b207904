package tarprobe

import (
	"errors"
	"fmt"
)

// ErrorKind distinguishes malformed headers from other stream failures.
type ErrorKind uint8

const (
	// ErrorKindHeader marks a checksum mismatch or undecodable header field.
	ErrorKindHeader ErrorKind = iota + 1

	// ErrorKindStream marks an I/O failure, truncation, or callback rejection.
	ErrorKindStream
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindHeader:
		return "header"
	case ErrorKindStream:
		return "stream"
	default:
		return "unknown"
	}
}

// ErrorRecord describes the failure that ended a scan.
type ErrorRecord struct {
	// Entry is the 1-based index of the entry being read when the scan failed.
	Entry int64

	// Kind classifies the failure.
	Kind ErrorKind

	// Err is the underlying error: a *HeaderError or *StreamError.
	Err error
}

// Detail returns the cause of the failure without the entry prefix.
func (r *ErrorRecord) Detail() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Message formats the record the way it is shown to users.
func (r *ErrorRecord) Message() string {
	if r.Kind == ErrorKindHeader {
		return fmt.Sprintf("InvalidHeaderException thrown at Entry number %d: %s", r.Entry, r.Detail())
	}
	return fmt.Sprintf("Exception thrown at Entry number %d: %s", r.Entry, r.Detail())
}

// newErrorRecord classifies err for the entry at index.
func newErrorRecord(index int64, err error) *ErrorRecord {
	var he *HeaderError
	if errors.As(err, &he) {
		return &ErrorRecord{Entry: index, Kind: ErrorKindHeader, Err: err}
	}
	var se *StreamError
	if !errors.As(err, &se) {
		err = &StreamError{Err: err}
	}
	return &ErrorRecord{Entry: index, Kind: ErrorKindStream, Err: err}
}

// Result is the outcome of scanning one stream.
type Result struct {
	// Location identifies the scanned input in logs and reports.
	Location string

	// WellFormed is true when every header decoded and the archive ended
	// cleanly. Valid always equals WellFormed: TAR has no semantic
	// validity rules beyond parseability.
	WellFormed bool
	Valid      bool

	// Aborted is true when the scan stopped because its context was done.
	// An aborted result is inconclusive: WellFormed is false and Err is nil.
	Aborted bool

	// EndMarker is true when the archive ended with a zero-filled block
	// rather than at the end of the input.
	EndMarker bool

	// Dialect is fixed by the first entry's header.
	Dialect Dialect

	// Entries counts the headers attempted, including one that failed.
	Entries int64

	// Bytes is the number of raw input bytes consumed.
	Bytes uint64

	// Err is set when the scan failed.
	Err *ErrorRecord

	// Digests holds the digests of the complete raw input, when requested.
	// A digest that could not be computed is absent.
	Digests DigestSet
}
