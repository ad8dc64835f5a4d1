package clipping

import (
	"fmt"

	"github.com/farcloser/soundcheck/internal/types"
)

const (
	max16 = 1<<15 - 1 // 32767
	max24 = 1<<23 - 1 // 8388607
	max32 = 1<<31 - 1 // 2147483647
)

// Ceiling returns the largest positive sample value for a bit depth, or 0 if unsupported.
func Ceiling(depth types.BitDepth) int64 {
	switch depth {
	case types.Depth16:
		return max16
	case types.Depth24:
		return max24
	case types.Depth32:
		return max32
	default:
		return 0
	}
}

// Detect counts samples sitting at or beyond the ceiling, or at or below its negation.
// The floor is -ceiling, not the two's-complement minimum: both -32767 and -32768 count
// for a 16-bit buffer.
func Detect(buf *types.SampleBuffer) (*types.ClippingStats, error) {
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("clipping: %w", err)
	}

	ceiling := Ceiling(buf.BitDepth)
	floor := -ceiling

	result := &types.ClippingStats{
		TotalSamples: uint64(len(buf.Samples)),
		Ceiling:      ceiling,
	}

	for _, sample := range buf.Samples {
		value := int64(sample)
		if value >= ceiling || value <= floor {
			result.Count++
		}
	}

	return result, nil
}
