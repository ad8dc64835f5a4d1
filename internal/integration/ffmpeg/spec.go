package ffmpeg

import (
	"strconv"

	"github.com/farcloser/soundcheck/internal/types"
)

// bitDepthToSpec returns the raw muxer name: 16 = s16le, 24 = s24le, 32 = s32le.
func bitDepthToSpec(bitDepth types.BitDepth) string {
	//nolint:gosec // we fine, gosec
	return "s" + strconv.Itoa(int(bitDepth)) + "le"
}

// bitDepthToCodec returns the matching PCM encoder, e.g. pcm_s16le.
func bitDepthToCodec(bitDepth types.BitDepth) string {
	return "pcm_" + bitDepthToSpec(bitDepth)
}
