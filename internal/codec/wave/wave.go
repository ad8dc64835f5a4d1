// Package wave reads RIFF/WAVE PCM files through go-audio/wav.
package wave

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/wav"

	"github.com/farcloser/soundcheck/internal/types"
)

const (
	codecName = "pcm"

	formatPCM        = 1
	formatExtensible = 0xFFFE
)

var (
	ErrNotWAV            = errors.New("not a RIFF/WAVE file")
	ErrUnsupportedFormat = errors.New("unsupported WAVE encoding")
	ErrNoData            = errors.New("no PCM data chunk")
	ErrTruncated         = errors.New("data chunk shorter than declared")
)

// ReadMetadata reads the fmt chunk and the data chunk size.
func ReadMetadata(r io.ReadSeeker) (*types.Metadata, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, ErrNotWAV
	}

	duration, err := decoder.Duration()
	if err != nil {
		return nil, fmt.Errorf("reading data chunk: %w", err)
	}

	return &types.Metadata{
		Codec:       codecName,
		BitrateKbps: int(decoder.AvgBytesPerSec) * 8 / 1000,
		SampleRate:  int(decoder.SampleRate),
		Channels:    int(decoder.NumChans),
		Duration:    duration.Seconds(),
	}, nil
}

// Decode reads the whole data chunk. Only integer PCM at 16, 24 or 32 bits is accepted.
func Decode(r io.ReadSeeker) (*types.SampleBuffer, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, ErrNotWAV
	}

	if decoder.WavAudioFormat != formatPCM && decoder.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, decoder.WavAudioFormat)
	}

	depth := types.BitDepth(decoder.BitDepth)
	if !depth.Valid() {
		return nil, fmt.Errorf("%w: %d", types.ErrInvalidBitDepth, decoder.BitDepth)
	}

	intBuf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading samples: %w", err)
	}

	// FullPCMBuffer can fail to find the data chunk and still report no error.
	if intBuf == nil {
		return nil, ErrNoData
	}

	// A file cut on a sample boundary reads to EOF without error. Streaming
	// writers leave the size at 0 or 0xFFFFFFFF, which cannot be checked.
	if declared := decoder.PCMSize / int(decoder.BitDepth/8); decoder.PCMSize > 0 && //nolint:mnd // bits per byte
		int64(decoder.PCMSize) != math.MaxUint32 && len(intBuf.Data) < declared {
		return nil, fmt.Errorf("%w: %d of %d samples", ErrTruncated, len(intBuf.Data), declared)
	}

	samples := make([]int32, len(intBuf.Data))
	for i, sample := range intBuf.Data {
		samples[i] = int32(sample) //nolint:gosec // bounded by the source bit depth
	}

	buf := &types.SampleBuffer{
		Channels:   int(decoder.NumChans),
		BitDepth:   depth,
		SampleRate: int(decoder.SampleRate),
		Samples:    samples,
	}

	if err = buf.Validate(); err != nil {
		return nil, fmt.Errorf("truncated data chunk: %w", err)
	}

	return buf, nil
}
