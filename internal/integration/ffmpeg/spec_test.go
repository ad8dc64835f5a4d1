package ffmpeg

import (
	"testing"

	"github.com/farcloser/soundcheck/internal/types"
)

func TestBitDepthToSpec(t *testing.T) {
	t.Parallel()

	for depth, want := range map[types.BitDepth]string{
		types.Depth16: "s16le",
		types.Depth24: "s24le",
		types.Depth32: "s32le",
	} {
		if got := bitDepthToSpec(depth); got != want {
			t.Errorf("%d: got %q, want %q", depth, got, want)
		}

		if got := bitDepthToCodec(depth); got != "pcm_"+want {
			t.Errorf("%d: got codec %q", depth, got)
		}
	}
}
