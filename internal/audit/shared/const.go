package shared

import (
	"math"

	"github.com/farcloser/soundcheck/internal/types"
)

const (
	MaxValue16 = 32768.0      // 2^15: 16-bit signed PCM normalization divisor
	MaxValue24 = 8388608.0    // 2^23: 24-bit signed PCM normalization divisor
	MaxValue32 = 2147483648.0 // 2^31: 32-bit signed PCM normalization divisor
)

// FullScale returns the normalization divisor for a bit depth, or 0 if unsupported.
func FullScale(depth types.BitDepth) float64 {
	switch depth {
	case types.Depth16:
		return MaxValue16
	case types.Depth24:
		return MaxValue24
	case types.Depth32:
		return MaxValue32
	default:
		return 0
	}
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
