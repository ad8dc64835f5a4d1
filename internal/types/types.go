//nolint:staticcheck // too dumb on Db vs. DB
package types

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidChannels   = errors.New("invalid channel count")
	ErrInvalidSampleRate = errors.New("invalid sample rate")
	ErrInvalidBitDepth   = errors.New("unsupported bit depth")
	ErrMisalignedSamples = errors.New("sample count is not a multiple of the channel count")
)

type BitDepth uint

const (
	Depth16 BitDepth = 16
	Depth24 BitDepth = 24
	Depth32 BitDepth = 32
)

// Valid reports whether the depth is one the detectors understand.
func (b BitDepth) Valid() bool {
	return b == Depth16 || b == Depth24 || b == Depth32
}

// SampleBuffer is a fully decoded file: signed samples, interleaved by channel.
// Samples of any depth are stored unscaled in int32 (a 16-bit buffer holds values in [-32768, 32767]).
type SampleBuffer struct {
	Channels   int
	BitDepth   BitDepth
	SampleRate int
	Samples    []int32
}

// Frames returns the number of sample frames (one sample per channel).
func (b *SampleBuffer) Frames() int {
	if b.Channels <= 0 {
		return 0
	}

	return len(b.Samples) / b.Channels
}

// Duration returns the playback length of the buffer.
func (b *SampleBuffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}

	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// Validate checks the buffer invariants.
func (b *SampleBuffer) Validate() error {
	if b.Channels <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, b.Channels)
	}

	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, b.SampleRate)
	}

	if !b.BitDepth.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidBitDepth, b.BitDepth)
	}

	if len(b.Samples)%b.Channels != 0 {
		return fmt.Errorf("%w: %d samples, %d channels", ErrMisalignedSamples, len(b.Samples), b.Channels)
	}

	return nil
}

// Metadata holds container-level attributes, read without decoding the waveform.
type Metadata struct {
	Codec       string
	BitrateKbps int
	SampleRate  int
	Channels    int
	Duration    float64 // seconds
}

/*
Silence Interpretation

Intervals are reported on analysis-window boundaries, so StartMs/EndMs carry
the window granularity (default 10 ms).

| Position            | Interpretation                          |
|---------------------|-----------------------------------------|
| StartMs == 0        | Leading silence (pre-gap, padded rip)   |
| EndMs == duration   | Trailing silence (padding, long fade)   |
| In the middle       | Dropout, gap between tracks, bad splice |

A file that is one interval from start to end decoded to digital silence and
is almost certainly broken even though it is technically playable.
*/

// SilenceInterval is a half-open [StartMs, EndMs) silent stretch.
type SilenceInterval struct {
	StartMs int64
	EndMs   int64
}

// Duration returns the interval length.
func (s SilenceInterval) Duration() time.Duration {
	return time.Duration(s.EndMs-s.StartMs) * time.Millisecond
}

/*
Clipping Interpretation

| Percentage     | Interpretation                              |
|----------------|---------------------------------------------|
| 0              | Clean.                                      |
| < 0.01%        | Isolated overs. Usually inaudible.          |
| 0.01% - 0.1%   | Audible crackle on transients.              |
| > 0.1%         | Brickwalled or broken encode. Re-source it. |

The floor is clamped to -Ceiling rather than the true two's-complement
minimum, so a sample at -Ceiling counts as clipped just like one at the true
minimum does.
*/

// ClippingStats contains clipping detection results.
type ClippingStats struct {
	Count        uint64 // samples at or beyond +/-Ceiling
	TotalSamples uint64
	Ceiling      int64
}

// Percentage returns Count as a percentage of TotalSamples, not rounded.
func (c *ClippingStats) Percentage() float64 {
	if c.TotalSamples == 0 {
		return 0
	}

	return float64(c.Count) / float64(c.TotalSamples) * 100
}
