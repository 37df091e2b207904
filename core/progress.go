package tarprobe

import "github.com/meigma/tarprobe/core/internal/tartype"

// ProgressEvent represents a progress update during a scan.
type ProgressEvent = tartype.ProgressEvent

// ProgressStage identifies the current phase of a scan.
type ProgressStage = tartype.ProgressStage

// ProgressFunc receives progress updates during a scan.
type ProgressFunc = tartype.ProgressFunc

// Progress stages.
const (
	StageScanning = tartype.StageScanning
	StageDraining = tartype.StageDraining
	StageDone     = tartype.StageDone
)
