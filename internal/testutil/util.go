// Package testutil provides test infrastructure for soundcheck CLI tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/containerd/nerdctl/mod/tigron/test"
	"github.com/containerd/nerdctl/mod/tigron/tig"

	"github.com/farcloser/agar/pkg/agar"

	"github.com/farcloser/soundcheck/internal/integration/binary"
	"github.com/farcloser/soundcheck/internal/synth"
	"github.com/farcloser/soundcheck/internal/types"
)

// Setup creates a test case configured to run the soundcheck binary built into bin/.
func Setup() *test.Case {
	_, thisFile, _, _ := runtime.Caller(0) //nolint:dogsled // runtime.Caller returns 4 values, only file is needed
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
	binaryPath := filepath.Join(projectRoot, "bin", "soundcheck")

	return agar.Setup(binaryPath)
}

// RequireFFmpeg skips tests that decode through the external binaries.
func RequireFFmpeg(t *testing.T) {
	t.Helper()

	if !binary.Available("ffmpeg", "ffprobe") {
		t.Skip("ffmpeg and ffprobe are required")
	}
}

// Library writes the three-file collection used by the scan tests into a fresh
// directory: a clean tone, a zero-byte file, and a tone with a full-scale burst.
func Library(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "album"), 0o755); err != nil { //nolint:mnd // test fixture
		t.Fatal(err)
	}

	clean := synth.NewBuilder(44100, 2, types.Depth16).Tone(1500, 0.3).Build()
	if err := synth.WriteWAV(filepath.Join(dir, "clean.wav"), clean); err != nil {
		t.Fatal(err)
	}

	if err := synth.WriteWAV(filepath.Join(dir, "album", "loud.wav"), loudFixture()); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "album", "empty.wav"), nil, 0o600); err != nil { //nolint:mnd // test fixture
		t.Fatal(err)
	}

	return dir
}

func loudFixture() *types.SampleBuffer {
	return synth.NewBuilder(44100, 2, types.Depth16).
		Tone(500, 0.3).Constant(20, 32767).Silence(800).Tone(500, 0.3).Build()
}

// TaggedMP3 writes 1.2 seconds of silent MP3 (48 kHz stereo, 128 kbps) behind
// an ID3v2 tag carrying 64 KiB of cover art and a LAME Info frame.
func TaggedMP3(t *testing.T, path string) {
	t.Helper()

	data := append(synth.ID3v2(synth.Cover(1, 64<<10), false), synth.SilentMP3(50, false, true)...) //nolint:mnd // fixture

	if err := os.WriteFile(path, data, 0o600); err != nil { //nolint:mnd // test fixture
		t.Fatal(err)
	}
}

// EncodeMP3 encodes two seconds of a 1 kHz stereo sine through libmp3lame at
// 192 kbps, gained by gainDB. The test is skipped when ffmpeg or the encoder is missing.
func EncodeMP3(t *testing.T, path string, gainDB float64) {
	t.Helper()

	ffmpegPath, err := binary.Require("ffmpeg")
	if err != nil {
		t.Skip(err.Error())
	}

	//nolint:gosec // test helper
	cmd := exec.Command(ffmpegPath, "-y", "-v", "error",
		"-f", "lavfi", "-i", "sine=frequency=1000:sample_rate=44100:duration=2",
		"-af", "pan=stereo|c0=c0|c1=c0,volume="+strconv.FormatFloat(gainDB, 'f', -1, 64)+"dB",
		"-c:a", "libmp3lame", "-b:a", "192k",
		path,
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		t.Skipf("cannot encode mp3 (%v): %s", err, out)
	}
}

// ExpectContains returns a comparator verifying the output contains every substring.
func ExpectContains(substrs ...string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		for _, substr := range substrs {
			if !strings.Contains(stdout, substr) {
				testing.Log("expected substring " + substr + " not found in output:\n" + stdout)
				testing.Fail()
			}
		}
	}
}

// ExpectInSection verifies that target appears within the few lines following "section:".
func ExpectInSection(section, target string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		if sectionContains(stdout, section, target) {
			return
		}

		testing.Log("expected " + target + " under " + section + " in output:\n" + stdout)
		testing.Fail()
	}
}

func sectionContains(stdout, section, target string) bool {
	lines := strings.Split(stdout, "\n")
	header := section + ":"

	for i, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), header) {
			continue
		}

		for j := i + 1; j < min(len(lines), i+12); j++ {
			if strings.Contains(lines[j], target) {
				return true
			}
		}
	}

	return false
}
