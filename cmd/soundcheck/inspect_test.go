package main_test

import (
	"path/filepath"
	"testing"

	"github.com/containerd/nerdctl/mod/tigron/expect"
	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/farcloser/agar/pkg/agar"

	"github.com/farcloser/soundcheck/internal/testutil"
)

func TestInspectCLI(t *testing.T) {
	library := testutil.Library(t)

	tagged := filepath.Join(t.TempDir(), "tagged.mp3")
	testutil.TaggedMP3(t, tagged)

	testCase := testutil.Setup()

	testCase.SubTests = []*test.Case{
		{
			Description: "inspect without arguments fails",
			Command:     test.Command("inspect"),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "inspect of a zero-byte file fails and reports the issue",
			Command:     test.Command("inspect", filepath.Join(library, "album", "empty.wav")),
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeGenericFail,
					Output:   testutil.ExpectContains("Error loading file"),
				}
			},
		},
		{
			Description: "clean file has neither silence nor clipping",
			Command:     test.Command("inspect", filepath.Join(library, "clean.wav")),
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeSuccess,
					Output: expect.All(
						testutil.ExpectInSection("clipping", "detected: false"),
						testutil.ExpectInSection("silence", "detected: false"),
					),
				}
			},
		},
		{
			Description: "full-scale burst and gap are both reported",
			Command:     test.Command("inspect", filepath.Join(library, "album", "loud.wav")),
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeSuccess,
					Output: expect.All(
						testutil.ExpectInSection("clipping", "detected: true"),
						testutil.ExpectInSection("silence", "detected: true"),
					),
				}
			},
		},
		{
			Description: "a longer minimum silence hides the gap",
			Command: test.Command(
				"inspect",
				"--silence-min-duration", "2000",
				filepath.Join(library, "album", "loud.wav"),
			),
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeSuccess,
					Output:   testutil.ExpectInSection("silence", "detected: false"),
				}
			},
		},
		{
			Description: "mp3 behind cover art reads its real frames",
			Command:     test.Command("inspect", tagged),
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeSuccess,
					Output: expect.All(
						testutil.ExpectInSection("format", "sample_rate_hz: 48000"),
						testutil.ExpectInSection("format", "bitrate_kbps: 128"),
						testutil.ExpectInSection("silence", "detected: true"),
						testutil.ExpectInSection("clipping", "detected: false"),
					),
				}
			},
		},
		{
			Description: "a 0 dBFS silence threshold is rejected",
			Command:     test.Command("inspect", "--silence-threshold", "0", filepath.Join(library, "clean.wav")),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "a negative minimum silence is rejected",
			Command:     test.Command("inspect", "--silence-min-duration", "-1", filepath.Join(library, "clean.wav")),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
	}

	testCase.Run(t)
}

func TestInspectFFmpegCLI(t *testing.T) {
	testutil.RequireFFmpeg(t)

	testCase := testutil.Setup()

	testCase.SubTests = []*test.Case{
		{
			Description: "hard clipped audio is detected",
			Setup: func(data test.Data, helpers test.Helpers) {
				data.Labels().Set("file", agar.ClippedHard(data, helpers))
			},
			Command: func(data test.Data, helpers test.Helpers) test.TestableCommand {
				return helpers.Command("inspect", "--decoder", "ffmpeg", data.Labels().Get("file"))
			},
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeSuccess,
					Output:   testutil.ExpectInSection("clipping", "detected: true"),
				}
			},
		},
		{
			Description: "clean audio has no clipping",
			Setup: func(data test.Data, helpers test.Helpers) {
				data.Labels().Set("file", agar.Genuine16bit44k(data, helpers))
			},
			Command: func(data test.Data, helpers test.Helpers) test.TestableCommand {
				return helpers.Command("inspect", "--decoder", "ffmpeg", data.Labels().Get("file"))
			},
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeSuccess,
					Output:   testutil.ExpectInSection("clipping", "detected: false"),
				}
			},
		},
		{
			Description: "long silent intro is detected",
			Setup: func(data test.Data, helpers test.Helpers) {
				data.Labels().Set("file", agar.SilenceLongIntro(data, helpers))
			},
			Command: func(data test.Data, helpers test.Helpers) test.TestableCommand {
				return helpers.Command("inspect", "--decoder", "ffmpeg", data.Labels().Get("file"))
			},
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeSuccess,
					Output:   testutil.ExpectInSection("silence", "detected: true"),
				}
			},
		},
	}

	testCase.Run(t)
}
