package tarprobe

import probecore "github.com/meigma/tarprobe/core"

// Re-export progress types from core package.
type (
	// ProgressEvent represents a progress update during a check.
	ProgressEvent = probecore.ProgressEvent

	// ProgressStage identifies the current phase of a check.
	ProgressStage = probecore.ProgressStage

	// ProgressFunc receives progress updates. A Checker shared between
	// goroutines calls it concurrently.
	ProgressFunc = probecore.ProgressFunc
)

// Re-export progress stage constants.
const (
	// StageScanning indicates headers are being read.
	StageScanning = probecore.StageScanning

	// StageDraining indicates the rest of the input is being read for digests.
	StageDraining = probecore.StageDraining

	// StageDone indicates the check finished.
	StageDone = probecore.StageDone
)
