package tartype

// ProgressEvent represents a progress update during a scan.
type ProgressEvent struct {
	// Stage identifies the current phase of the scan.
	Stage ProgressStage

	// Name is the entry name of the most recently decoded header, if any.
	Name string

	// EntriesDone is the number of headers attempted so far.
	EntriesDone int64

	// BytesDone is the number of raw input bytes consumed so far.
	BytesDone uint64
}

// ProgressStage identifies the current phase of a scan.
type ProgressStage uint8

// Progress stages for a scan.
const (
	// StageScanning indicates headers are being read.
	StageScanning ProgressStage = iota

	// StageDraining indicates the remainder of the input is being read for digests.
	StageDraining

	// StageDone indicates the scan has finished.
	StageDone
)

// String returns the string representation of the stage.
func (s ProgressStage) String() string {
	switch s {
	case StageScanning:
		return "scanning"
	case StageDraining:
		return "draining"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// ProgressFunc receives progress updates during a scan.
// Calls happen on the scanning goroutine.
type ProgressFunc func(ProgressEvent)
