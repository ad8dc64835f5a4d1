package main

import (
	"fmt"

	"github.com/farcloser/primordium/fault"
	"github.com/urfave/cli/v3"

	"github.com/farcloser/soundcheck"
	"github.com/farcloser/soundcheck/internal/codec"
)

// analysisFlags are shared by every command that decodes audio.
func analysisFlags() []cli.Flag {
	defaults := soundcheck.DefaultOptions()

	return []cli.Flag{
		&cli.StringFlag{
			Name:    "decoder",
			Aliases: []string{"d"},
			Usage:   "Decoder backend: native (mp3 and wav, no dependencies) or ffmpeg (anything ffmpeg reads)",
			Value:   codec.NameNative,
		},
		&cli.FloatFlag{
			Name:  "silence-threshold",
			Usage: "Level in dBFS at or below which audio counts as silent",
			Value: defaults.SilenceThresholdDB,
		},
		&cli.IntFlag{
			Name:  "silence-min-duration",
			Usage: "Shortest silence to report, in milliseconds",
			Value: defaults.SilenceMinDurationMs,
		},
	}
}

// analysisOptions reads the silence flags. Zero is not passed through as
// "use the default": a 0 dBFS threshold or an empty minimum is rejected.
func analysisOptions(cmd *cli.Command) (soundcheck.Options, error) {
	opts := soundcheck.DefaultOptions()
	opts.SilenceThresholdDB = cmd.Float("silence-threshold")
	opts.SilenceMinDurationMs = cmd.Int("silence-min-duration")

	if opts.SilenceThresholdDB >= 0 {
		return opts, fmt.Errorf("%w: --silence-threshold must be below 0 dBFS, got %v",
			fault.ErrInvalidArgument, opts.SilenceThresholdDB)
	}

	if opts.SilenceMinDurationMs <= 0 {
		return opts, fmt.Errorf("%w: --silence-min-duration must be a positive number of milliseconds, got %d",
			fault.ErrInvalidArgument, opts.SilenceMinDurationMs)
	}

	return opts, nil
}

// newBackend resolves the --decoder flag and checks that its requirements are met.
func newBackend(name string) (codec.Backend, error) {
	backend, err := codec.New(name)
	if err != nil {
		return nil, err
	}

	if ff, ok := backend.(codec.FFmpeg); ok && !ff.Available() {
		return nil, fmt.Errorf("%w: the ffmpeg decoder needs ffmpeg and ffprobe in PATH", fault.ErrMissingRequirements)
	}

	return backend, nil
}
