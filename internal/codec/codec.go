// Package codec provides the decode and metadata backends the analyzer runs against.
package codec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/farcloser/soundcheck/internal/codec/mpeg"
	"github.com/farcloser/soundcheck/internal/codec/wave"
	"github.com/farcloser/soundcheck/internal/integration/binary"
	"github.com/farcloser/soundcheck/internal/integration/ffmpeg"
	"github.com/farcloser/soundcheck/internal/integration/ffprobe"
	"github.com/farcloser/soundcheck/internal/pcm"
	"github.com/farcloser/soundcheck/internal/types"
)

const (
	NameNative = "native"
	NameFFmpeg = "ffmpeg"
)

var (
	ErrUnknownBackend    = errors.New("unknown decoder backend")
	ErrUnsupportedFormat = errors.New("unsupported file type")
)

// Backend reads container metadata and decodes files to PCM.
type Backend interface {
	ReadMetadata(ctx context.Context, path string) (*types.Metadata, error)
	Decode(ctx context.Context, path string) (*types.SampleBuffer, error)
}

// New returns the backend registered under name.
func New(name string) (Backend, error) {
	switch strings.ToLower(name) {
	case NameNative, "":
		return Native{}, nil
	case NameFFmpeg:
		return FFmpeg{}, nil
	default:
		return nil, fmt.Errorf("%w %q (valid: %s, %s)", ErrUnknownBackend, name, NameNative, NameFFmpeg)
	}
}

// Extensions lists the suffixes a backend can handle, or nil when it takes anything.
func Extensions(name string) []string {
	if strings.EqualFold(name, NameFFmpeg) {
		return nil
	}

	return []string{".mp3", ".wav", ".wave"}
}

// Native decodes MP3 and WAV in-process, with no external binaries.
type Native struct{}

func (Native) ReadMetadata(ctx context.Context, path string) (*types.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path) //nolint:gosec // CLI tool opens user-specified audio files
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch extension(path) {
	case ".mp3":
		return mpeg.ReadMetadata(file)
	case ".wav", ".wave":
		return wave.ReadMetadata(file)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func (Native) Decode(ctx context.Context, path string) (*types.SampleBuffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path) //nolint:gosec // CLI tool opens user-specified audio files
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch extension(path) {
	case ".mp3":
		return mpeg.Decode(file)
	case ".wav", ".wave":
		return wave.Decode(file)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// FFmpeg shells out to ffprobe and ffmpeg, so anything they can demux is accepted.
// PCM is extracted at 16 bits: a 16-bit source widened to 32 bits never reaches the 32-bit ceiling.
type FFmpeg struct{}

// Available reports whether both binaries are in PATH.
func (FFmpeg) Available() bool {
	return binary.Available("ffprobe", "ffmpeg")
}

func (FFmpeg) ReadMetadata(ctx context.Context, path string) (*types.Metadata, error) {
	result, err := ffprobe.Probe(ctx, path)
	if err != nil {
		return nil, err
	}

	return result.Metadata()
}

func (FFmpeg) Decode(ctx context.Context, path string) (*types.SampleBuffer, error) {
	// Metadata is read again here so Decode stands alone; the layout must match what ffmpeg emits.
	result, err := ffprobe.Probe(ctx, path)
	if err != nil {
		return nil, err
	}

	meta, err := result.Metadata()
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path) //nolint:gosec // CLI tool opens user-specified audio files
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var pcmBuf bytes.Buffer

	if err = ffmpeg.ExtractStream(ctx, file, &pcmBuf, 0, types.Depth16); err != nil {
		return nil, err
	}

	return pcm.Unpack(pcmBuf.Bytes(), types.Depth16, meta.Channels, meta.SampleRate)
}

func extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
