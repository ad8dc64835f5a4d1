// Package pcm unpacks raw little-endian signed PCM into sample buffers.
package pcm

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/farcloser/soundcheck/internal/types"
)

var errTruncated = errors.New("truncated PCM data")

// Unpack decodes interleaved little-endian PCM at the given depth.
// Trailing bytes that do not form a whole frame are an error: a decoder that
// stops mid-frame did not finish.
func Unpack(data []byte, depth types.BitDepth, channels, sampleRate int) (*types.SampleBuffer, error) {
	if !depth.Valid() {
		return nil, fmt.Errorf("%w: %d", types.ErrInvalidBitDepth, depth)
	}

	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", types.ErrInvalidChannels, channels)
	}

	bytesPerSample := int(depth / 8) //nolint:gosec // bit depth is a small constant
	frameSize := bytesPerSample * channels

	if len(data)%frameSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes, frame size %d", errTruncated, len(data), frameSize)
	}

	samples := make([]int32, len(data)/bytesPerSample)

	switch depth {
	case types.Depth16:
		for i := range samples {
			samples[i] = int32(int16(binary.LittleEndian.Uint16(data[i*2:])))
		}
	case types.Depth24:
		for i := range samples {
			offset := i * 3

			sample := int32(data[offset]) | int32(data[offset+1])<<8 | int32(data[offset+2])<<16
			if sample&0x800000 != 0 {
				sample |= ^0xFFFFFF
			}

			samples[i] = sample
		}
	case types.Depth32:
		for i := range samples {
			samples[i] = int32(binary.LittleEndian.Uint32(data[i*4:])) //nolint:gosec // two's-complement reinterpretation
		}
	default:
	}

	return &types.SampleBuffer{
		Channels:   channels,
		BitDepth:   depth,
		SampleRate: sampleRate,
		Samples:    samples,
	}, nil
}

// Pack is the inverse of Unpack. Samples are truncated to the target depth.
func Pack(samples []int32, depth types.BitDepth) []byte {
	bytesPerSample := int(depth / 8) //nolint:gosec // bit depth is a small constant
	out := make([]byte, len(samples)*bytesPerSample)

	for i, sample := range samples {
		offset := i * bytesPerSample

		switch depth {
		case types.Depth16:
			binary.LittleEndian.PutUint16(out[offset:], uint16(int16(sample))) //nolint:gosec // truncation intended
		case types.Depth24:
			out[offset] = byte(sample)
			out[offset+1] = byte(sample >> 8)
			out[offset+2] = byte(sample >> 16)
		case types.Depth32:
			binary.LittleEndian.PutUint32(out[offset:], uint32(sample)) //nolint:gosec // two's-complement reinterpretation
		default:
		}
	}

	return out
}
