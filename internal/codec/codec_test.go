package codec_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/farcloser/soundcheck/internal/codec"
	"github.com/farcloser/soundcheck/internal/codec/wave"
	"github.com/farcloser/soundcheck/internal/synth"
	"github.com/farcloser/soundcheck/internal/testutil"
	"github.com/farcloser/soundcheck/internal/types"
)

func TestNativeWAV(t *testing.T) {
	t.Parallel()

	want := synth.NewBuilder(22050, 2, types.Depth16).Tone(400, 0.5).Silence(600).Build()
	path := filepath.Join(t.TempDir(), "tone.wav")

	if err := synth.WriteWAV(path, want); err != nil {
		t.Fatal(err)
	}

	backend, err := codec.New(codec.NameNative)
	if err != nil {
		t.Fatal(err)
	}

	meta, err := backend.ReadMetadata(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}

	// 22050 Hz * 2 channels * 16 bits = 705.6 kbps.
	if meta.SampleRate != 22050 || meta.Channels != 2 || meta.BitrateKbps != 705 {
		t.Errorf("unexpected metadata: %+v", meta)
	}

	if meta.Duration != 1 {
		t.Errorf("duration: got %v, want 1", meta.Duration)
	}

	got, err := backend.Decode(context.Background(), path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.Channels != 2 || got.SampleRate != 22050 || got.BitDepth != types.Depth16 {
		t.Errorf("unexpected layout: %d ch, %d Hz, %d bit", got.Channels, got.SampleRate, got.BitDepth)
	}

	if !slices.Equal(got.Samples, want.Samples) {
		t.Errorf("decoded samples differ from what was written")
	}
}

func TestNativeRejectsBrokenFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	backend := codec.Native{}

	for name, content := range map[string][]byte{
		"empty.mp3":   nil,
		"empty.wav":   nil,
		"zeros.mp3":   make([]byte, 4096),
		"garbage.wav": []byte("RIFF----WAVEnope"),
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, content, 0o600); err != nil {
			t.Fatal(err)
		}

		if _, err := backend.ReadMetadata(context.Background(), path); err == nil {
			t.Errorf("%s: expected a metadata error", name)
		}

		if _, err := backend.Decode(context.Background(), path); err == nil {
			t.Errorf("%s: expected a decode error", name)
		}
	}
}

func TestNativeTruncatedWAV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cut.wav")
	if err := synth.WriteWAV(path, synth.NewBuilder(44100, 2, types.Depth16).Tone(500, 0.5).Build()); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	// 100 whole frames go missing, so the data still ends on a frame boundary.
	if err = os.Truncate(path, info.Size()-100*4); err != nil {
		t.Fatal(err)
	}

	backend := codec.Native{}

	meta, err := backend.ReadMetadata(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}

	if meta.Duration != 0.5 {
		t.Errorf("header duration: got %v, want 0.5", meta.Duration)
	}

	if _, err = backend.Decode(context.Background(), path); !errors.Is(err, wave.ErrTruncated) {
		t.Errorf("Decode: got %v, want ErrTruncated", err)
	}
}

func TestNativeTaggedMP3(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tagged.mp3")
	testutil.TaggedMP3(t, path)

	backend := codec.Native{}

	meta, err := backend.ReadMetadata(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}

	if meta.SampleRate != synth.MP3SampleRate || meta.Channels != 2 || meta.BitrateKbps != synth.MP3BitrateKbps {
		t.Errorf("unexpected metadata: %+v", meta)
	}

	buf, err := backend.Decode(context.Background(), path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if buf.Frames() != 50*synth.MP3FrameSamples {
		t.Errorf("decoded %d frames, want %d", buf.Frames(), 50*synth.MP3FrameSamples)
	}
}

func TestNativeUnsupportedExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "track.flac")
	if err := os.WriteFile(path, []byte("fLaC"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := codec.Native{}.ReadMetadata(context.Background(), path)
	if !errors.Is(err, codec.ErrUnsupportedFormat) {
		t.Errorf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestNativeHonorsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := (codec.Native{}).Decode(ctx, "whatever.mp3"); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	if _, err := codec.New("gstreamer"); !errors.Is(err, codec.ErrUnknownBackend) {
		t.Errorf("got %v, want ErrUnknownBackend", err)
	}

	backend, err := codec.New("FFmpeg")
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := backend.(codec.FFmpeg); !ok {
		t.Errorf("got %T, want codec.FFmpeg", backend)
	}

	if codec.Extensions(codec.NameFFmpeg) != nil {
		t.Error("ffmpeg backend should not restrict extensions")
	}
}

func TestFFmpegWAV(t *testing.T) {
	t.Parallel()

	backend := codec.FFmpeg{}
	if !backend.Available() {
		t.Skip("ffmpeg/ffprobe not in PATH")
	}

	want := synth.NewBuilder(44100, 1, types.Depth16).Tone(300, 0.5).Build()
	path := filepath.Join(t.TempDir(), "tone.wav")

	if err := synth.WriteWAV(path, want); err != nil {
		t.Fatal(err)
	}

	got, err := backend.Decode(context.Background(), path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if !slices.Equal(got.Samples, want.Samples) {
		t.Errorf("ffmpeg output differs from the 16-bit source")
	}
}
