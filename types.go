package soundcheck

import (
	"context"

	"github.com/farcloser/soundcheck/internal/types"
)

// Options configures per-file analysis.
type Options struct {
	// SilenceThresholdDB is the level, in dBFS, at or below which a window counts as silent (default: -40).
	SilenceThresholdDB float64

	// SilenceMinDurationMs is the shortest silent run reported (default: 500).
	// Shorter runs are ignored.
	SilenceMinDurationMs int

	// SilenceWindowMs is the analysis window (default: 10).
	SilenceWindowMs int
}

// DefaultOptions returns sensible defaults for audio analysis.
func DefaultOptions() Options {
	return Options{
		SilenceThresholdDB:   -40,
		SilenceMinDurationMs: 500,
		SilenceWindowMs:      10,
	}
}

// MetadataReader extracts container attributes without decoding the waveform.
type MetadataReader interface {
	ReadMetadata(ctx context.Context, path string) (*types.Metadata, error)
}

// Decoder turns a file into PCM. Corrupt or truncated input must produce an error.
type Decoder interface {
	Decode(ctx context.Context, path string) (*types.SampleBuffer, error)
}
