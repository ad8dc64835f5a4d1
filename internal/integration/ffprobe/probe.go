//nolint:tagliatelle
package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os/exec"
	"strconv"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/soundcheck/internal/integration/binary"
	"github.com/farcloser/soundcheck/internal/types"
)

var (
	ErrNoAudioStream     = errors.New("no audio streams found")
	ErrInvalidSampleRate = errors.New("invalid sample rate")
	ErrInvalidChannels   = errors.New("invalid channel count")
)

// Result contains the marshalled output of ffprobe.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream holds the stream fields we read. For lossy codecs bit_rate is the
// nominal (or average, for VBR with a Xing header) rate.
type Stream struct {
	Index         int    `json:"index"`
	CodecName     string `json:"codec_name"`            // mp3
	CodecType     string `json:"codec_type"`            // audio
	SampleRate    string `json:"sample_rate,omitempty"` // 44100
	Channels      int    `json:"channels,omitempty"`    // 2
	ChannelLayout string `json:"channel_layout,omitempty"`
	Duration      string `json:"duration,omitempty"` // 310.666667
	BitRate       string `json:"bit_rate,omitempty"` // 320000
	SampleFmt     string `json:"sample_fmt,omitempty"`
}

// Format represents container-level information.
type Format struct {
	Filename   string `json:"filename"`
	NbStreams  int    `json:"nb_streams"`
	FormatName string `json:"format_name"`        // e.g. "mp3", "mov,mp4,m4a,3gp,3g2,mj2"
	Duration   string `json:"duration,omitempty"` // seconds as float string
	BitRate    string `json:"bit_rate,omitempty"` // all streams combined, bits/sec
	ProbeScore int    `json:"probe_score"`        // 0-100, 100 = certain
	Size       string `json:"size,omitempty"`
}

// Probe runs ffprobe on the given file path and returns parsed metadata.
// It requires ffprobe to be available in the system PATH.
func Probe(ctx context.Context, filePath string) (*Result, error) {
	slog.Debug("ffprobe.Probe", "file path", filePath)

	ffprobePath, err := binary.Require(name)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // filePath is intentionally user-provided input for probing media files
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: after %v", fault.ErrTimeout, timeout)
		}

		return nil, fmt.Errorf("%w: %s: %w", fault.ErrCommandFailure, stderr.String(), err)
	}

	var result Result
	if err = json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrInvalidJSON, err)
	}

	return &result, nil
}

// AudioStream returns the first audio stream.
func (r *Result) AudioStream() (*Stream, error) {
	for i := range r.Streams {
		if r.Streams[i].CodecType == "audio" {
			return &r.Streams[i], nil
		}
	}

	return nil, ErrNoAudioStream
}

// Metadata converts the first audio stream into container attributes.
// Bitrate and duration fall back to the container values when the stream has none.
func (r *Result) Metadata() (*types.Metadata, error) {
	stream, err := r.AudioStream()
	if err != nil {
		return nil, err
	}

	sampleRate, err := strconv.Atoi(stream.SampleRate)
	if err != nil || sampleRate <= 0 {
		return nil, fmt.Errorf("%q: %w", stream.SampleRate, ErrInvalidSampleRate)
	}

	if stream.Channels <= 0 {
		return nil, fmt.Errorf("%d: %w", stream.Channels, ErrInvalidChannels)
	}

	bitRate := parseFloat(stream.BitRate)
	if bitRate == 0 {
		bitRate = parseFloat(r.Format.BitRate)
	}

	duration := parseFloat(stream.Duration)
	if duration == 0 {
		duration = parseFloat(r.Format.Duration)
	}

	return &types.Metadata{
		Codec:       stream.CodecName,
		BitrateKbps: int(math.Round(bitRate)) / 1000,
		SampleRate:  sampleRate,
		Channels:    stream.Channels,
		Duration:    duration,
	}, nil
}

func parseFloat(raw string) float64 {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || value < 0 {
		return 0
	}

	return value
}
