//nolint:staticcheck // too dumb
package silence

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/farcloser/soundcheck/internal/audit/shared"
	"github.com/farcloser/soundcheck/internal/types"
)

const (
	defaultThresholdDb   = -40.0
	defaultMinDurationMs = 500
	defaultWindowMs      = 10
)

type Options struct {
	ThresholdDb   float64 // at or below this = silence (default -40)
	MinDurationMs int     // minimum silence to report (default 500)
	WindowMs      int     // RMS window size (default 10)
}

func DefaultOptions() Options {
	return Options{
		ThresholdDb:   defaultThresholdDb,
		MinDurationMs: defaultMinDurationMs,
		WindowMs:      defaultWindowMs,
	}
}

// Detect returns the silent stretches of buf, in order and non-overlapping.
// The buffer is cut into fixed windows; a window is silent when its RMS over
// all channels, in dBFS, is at or below the threshold. Consecutive silent
// windows form a run, and runs whose reported span is shorter than
// MinDurationMs are dropped.
func Detect(buf *types.SampleBuffer, opts Options) ([]types.SilenceInterval, error) {
	if opts.ThresholdDb == 0 {
		opts.ThresholdDb = defaultThresholdDb
	}

	if opts.MinDurationMs <= 0 {
		opts.MinDurationMs = defaultMinDurationMs
	}

	if opts.WindowMs <= 0 {
		opts.WindowMs = defaultWindowMs
	}

	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("silence: %w", err)
	}

	numChannels := buf.Channels
	sampleRate := buf.SampleRate
	fullScale := shared.FullScale(buf.BitDepth)
	totalFrames := buf.Frames()

	// Window size in frames
	windowFrames := max(sampleRate*opts.WindowMs/1000, 1)
	minSilenceFrames := int64(sampleRate) * int64(opts.MinDurationMs) / 1000

	// Linear amplitude relative to full scale.
	threshold := math.Pow(10, opts.ThresholdDb/20)

	var (
		intervals    []types.SilenceInterval
		inSilence    bool
		silenceStart int
	)

	closeRun := func(end int) {
		if int64(end-silenceStart) < minSilenceFrames {
			return
		}

		startMs := int64(silenceStart) * 1000 / int64(sampleRate)
		endMs := int64(end) * 1000 / int64(sampleRate)

		// Both edges are floored, so the reported span can come out one ms short.
		if endMs-startMs >= int64(opts.MinDurationMs) {
			intervals = append(intervals, types.SilenceInterval{StartMs: startMs, EndMs: endMs})
		}
	}

	window := make([]float64, windowFrames*numChannels)

	for start := 0; start < totalFrames; start += windowFrames {
		end := min(start+windowFrames, totalFrames)

		normalized := window[:(end-start)*numChannels]
		for i, sample := range buf.Samples[start*numChannels : end*numChannels] {
			normalized[i] = float64(sample) / fullScale
		}

		rms := math.Sqrt(floats.Dot(normalized, normalized) / float64(len(normalized)))
		isSilent := rms <= threshold

		switch {
		case isSilent && !inSilence:
			// Entering silence
			inSilence = true
			silenceStart = start
		case !isSilent && inSilence:
			// Exiting silence
			closeRun(start)

			inSilence = false
		default:
		}
	}

	// Handle trailing silence
	if inSilence {
		closeRun(totalFrames)
	}

	return intervals, nil
}

// Total returns the summed length of intervals in seconds.
func Total(intervals []types.SilenceInterval) float64 {
	var totalMs int64
	for _, interval := range intervals {
		totalMs += interval.EndMs - interval.StartMs
	}

	return float64(totalMs) / 1000
}
