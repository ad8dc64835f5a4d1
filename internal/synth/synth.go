// Package synth builds deterministic sample buffers and WAV fixtures for tests.
package synth

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/farcloser/soundcheck/internal/audit/clipping"
	"github.com/farcloser/soundcheck/internal/types"
)

const wavFormatPCM = 1

// Builder appends segments to an interleaved buffer. All channels carry the same signal.
type Builder struct {
	buf   *types.SampleBuffer
	phase int
}

// NewBuilder starts an empty buffer.
func NewBuilder(sampleRate, channels int, depth types.BitDepth) *Builder {
	return &Builder{
		buf: &types.SampleBuffer{
			Channels:   channels,
			BitDepth:   depth,
			SampleRate: sampleRate,
		},
	}
}

func (b *Builder) frames(ms int) int {
	return b.buf.SampleRate * ms / 1000
}

func (b *Builder) push(value int32) {
	for range b.buf.Channels {
		b.buf.Samples = append(b.buf.Samples, value)
	}

	b.phase++
}

// Silence appends digital zero.
func (b *Builder) Silence(ms int) *Builder {
	return b.Constant(ms, 0)
}

// Constant appends a flat signal at value.
func (b *Builder) Constant(ms int, value int32) *Builder {
	for range b.frames(ms) {
		b.push(value)
	}

	return b
}

// Tone appends a 440 Hz sine at level (0..1 of the ceiling).
func (b *Builder) Tone(ms int, level float64) *Builder {
	ceiling := float64(clipping.Ceiling(b.buf.BitDepth))

	for range b.frames(ms) {
		t := float64(b.phase) / float64(b.buf.SampleRate)
		b.push(int32(math.Round(level * ceiling * math.Sin(2*math.Pi*440*t))))
	}

	return b
}

// Frames appends raw frames, one value per frame.
func (b *Builder) Frames(values ...int32) *Builder {
	for _, value := range values {
		b.push(value)
	}

	return b
}

// Build returns the buffer. The builder must not be reused.
func (b *Builder) Build() *types.SampleBuffer {
	return b.buf
}

// WriteWAV encodes buf as a PCM WAV file at path.
func WriteWAV(path string, buf *types.SampleBuffer) error {
	file, err := os.Create(path) //nolint:gosec // test fixture path
	if err != nil {
		return fmt.Errorf("creating fixture: %w", err)
	}
	defer file.Close()

	encoder := wav.NewEncoder(file, buf.SampleRate, int(buf.BitDepth), buf.Channels, wavFormatPCM) //nolint:gosec // small constant

	data := make([]int, len(buf.Samples))
	for i, sample := range buf.Samples {
		data[i] = int(sample)
	}

	intBuf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: buf.Channels, SampleRate: buf.SampleRate},
		Data:           data,
		SourceBitDepth: int(buf.BitDepth), //nolint:gosec // small constant
	}

	if err = encoder.Write(intBuf); err != nil {
		return fmt.Errorf("encoding fixture: %w", err)
	}

	if err = encoder.Close(); err != nil {
		return fmt.Errorf("finalizing fixture: %w", err)
	}

	return nil
}
