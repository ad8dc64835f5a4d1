// Package mpeg reads MPEG-1/2 Layer III files without leaving the process:
// frame headers through tcolgate/mp3, PCM through hajimehoshi/go-mp3.
package mpeg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/tcolgate/mp3"

	"github.com/farcloser/soundcheck/internal/pcm"
	"github.com/farcloser/soundcheck/internal/types"
)

const (
	codecName = "mp3"
	// go-mp3 always produces interleaved 16-bit stereo, whatever the source layout.
	decodedChannels = 2
)

var ErrNoFrames = errors.New("no MPEG audio frames found")

// ReadMetadata walks every audio frame header. Bitrate is the duration-weighted
// average, which equals the nominal rate for CBR files.
func ReadMetadata(r io.Reader) (*types.Metadata, error) {
	stream, err := readStream(r)
	if err != nil {
		return nil, err
	}

	decoder := mp3.NewDecoder(bytes.NewReader(stream))

	var (
		frame    mp3.Frame
		skipped  int
		frames   int
		duration time.Duration
		bits     float64
		meta     types.Metadata
	)

	for {
		err = decoder.Decode(&frame, &skipped)
		if err != nil {
			// A short last frame is common in the wild and does not make the header data wrong.
			if errors.Is(err, io.EOF) || (errors.Is(err, io.ErrUnexpectedEOF) && frames > 0) {
				break
			}

			return nil, fmt.Errorf("reading frame %d: %w", frames, err)
		}

		header := frame.Header()

		if frames == 0 {
			meta.SampleRate = int(header.SampleRate())

			meta.Channels = 2
			if header.ChannelMode() == mp3.SingleChannel {
				meta.Channels = 1
			}
		}

		frameDuration := frame.Duration()
		duration += frameDuration
		bits += float64(header.BitRate()) * frameDuration.Seconds()
		frames++
	}

	if frames == 0 {
		return nil, ErrNoFrames
	}

	meta.Codec = codecName
	meta.Duration = duration.Seconds()

	if meta.Duration > 0 {
		meta.BitrateKbps = int(math.Round(bits/meta.Duration)) / 1000
	}

	return &meta, nil
}

// Decode fully decodes r into a 16-bit stereo buffer.
func Decode(r io.Reader) (*types.SampleBuffer, error) {
	stream, err := readStream(r)
	if err != nil {
		return nil, err
	}

	decoder, err := gomp3.NewDecoder(bytes.NewReader(stream))
	if err != nil {
		return nil, fmt.Errorf("opening stream: %w", err)
	}

	data, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("decoding stream: %w", err)
	}

	if len(data) == 0 {
		return nil, ErrNoFrames
	}

	return pcm.Unpack(data, types.Depth16, decodedChannels, decoder.SampleRate())
}

func readStream(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	return audioStream(data)
}
