package pcm_test

import (
	"slices"
	"testing"

	"github.com/farcloser/soundcheck/internal/pcm"
	"github.com/farcloser/soundcheck/internal/types"
)

func TestUnpackRoundTrip(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		depth   types.BitDepth
		samples []int32
	}{
		{depth: types.Depth16, samples: []int32{0, 1, -1, 32767, -32768, 1234, -4321, 7}},
		{depth: types.Depth24, samples: []int32{0, 1, -1, 8388607, -8388608, 65536, -65536, 3}},
		{depth: types.Depth32, samples: []int32{0, 1, -1, 2147483647, -2147483648, 1 << 24, -(1 << 24), 9}},
	}

	for _, tc := range testCases {
		buf, err := pcm.Unpack(pcm.Pack(tc.samples, tc.depth), tc.depth, 2, 44100)
		if err != nil {
			t.Fatalf("%d-bit: %v", tc.depth, err)
		}

		if !slices.Equal(buf.Samples, tc.samples) {
			t.Errorf("%d-bit: got %v, want %v", tc.depth, buf.Samples, tc.samples)
		}

		if buf.Frames() != len(tc.samples)/2 {
			t.Errorf("%d-bit: got %d frames", tc.depth, buf.Frames())
		}
	}
}

func TestUnpackRejectsPartialFrame(t *testing.T) {
	t.Parallel()

	if _, err := pcm.Unpack(make([]byte, 6), types.Depth16, 2, 44100); err == nil {
		t.Error("expected an error for 1.5 stereo frames")
	}

	if _, err := pcm.Unpack(make([]byte, 8), 12, 2, 44100); err == nil {
		t.Error("expected an error for 12-bit samples")
	}
}
