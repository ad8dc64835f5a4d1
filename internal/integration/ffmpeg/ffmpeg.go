package ffmpeg

import "time"

const (
	name = "ffmpeg"
	// Decoding a long file from a slow or network drive takes a while.
	timeout = 120 * time.Second
)
