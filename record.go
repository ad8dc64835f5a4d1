package soundcheck

import (
	"fmt"

	"github.com/farcloser/soundcheck/internal/types"
)

// Failure says which stage stopped the analysis of a file.
type Failure int

const (
	FailureNone Failure = iota
	FailureMetadata
	FailureDecode
	FailureAnalysis
)

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureMetadata:
		return "metadata"
	case FailureDecode:
		return "decode"
	case FailureAnalysis:
		return "analysis"
	}

	return "unknown"
}

// Record is the outcome of analyzing one file. Failures are folded into it
// rather than returned, so a broken file never stops a batch.
// Pointer fields are nil when metadata could not be read.
type Record struct {
	FileName string
	FilePath string

	BitrateKbps     *int
	SampleRateHz    *int
	Channels        *int
	DurationSeconds *float64 // rounded to 2 decimals

	Playable bool

	ContainsSilence        bool
	SilenceDurationSeconds float64
	SilenceIntervals       []types.SilenceInterval

	ContainsClipping   bool
	ClippingCount      uint64
	ClippingPercentage *float64 // rounded to 2 decimals, set only when clipping was found

	Failure Failure
	Issue   string // human-readable diagnostic, set when Playable is false
	Err     error  // wraps ErrMetadata, ErrDecode or ErrAnalysis
}

// ClippingPercentageText renders the percentage as "0.25%", or "" when there is no clipping.
func (r *Record) ClippingPercentageText() string {
	if r.ClippingPercentage == nil {
		return ""
	}

	return fmt.Sprintf("%.2f%%", *r.ClippingPercentage)
}
