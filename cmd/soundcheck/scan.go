package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/soundcheck"
	"github.com/farcloser/soundcheck/internal/batch"
	"github.com/farcloser/soundcheck/internal/codec"
	"github.com/farcloser/soundcheck/internal/report"
	"github.com/farcloser/soundcheck/internal/ui"
)

const defaultOutput = "report.xlsx"

var errUnexpectedArgs = errors.New("scan takes no positional arguments, use --input")

type scanConfig struct {
	input      string
	output     string
	decoder    string
	extensions []string
	workers    int
	plain      bool
	options    soundcheck.Options
}

func scanCommand() *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "Analyze every audio file under a folder and write a spreadsheet report",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Folder to scan recursively",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Path of the .xlsx report (its folder is created when missing)",
				Value:   defaultOutput,
			},
			&cli.StringSliceFlag{
				Name:  "ext",
				Usage: "File extensions to include, repeatable (default: what the decoder supports, .mp3 for ffmpeg)",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"j"},
				Usage:   "Number of concurrent workers",
				Value:   runtime.NumCPU(),
			},
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "Print one progress line per file instead of the interactive view",
			},
		}, analysisFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 0 {
				return fmt.Errorf("%w: got %d", errUnexpectedArgs, cmd.NArg())
			}

			options, err := analysisOptions(cmd)
			if err != nil {
				return err
			}

			return runScan(ctx, scanConfig{
				input:      cmd.String("input"),
				output:     cmd.String("output"),
				decoder:    cmd.String("decoder"),
				extensions: cmd.StringSlice("ext"),
				workers:    max(cmd.Int("workers"), 1),
				plain:      cmd.Bool("plain"),
				options:    options,
			})
		},
	}
}

func runScan(ctx context.Context, cfg scanConfig) error {
	backend, err := newBackend(cfg.decoder)
	if err != nil {
		return err
	}

	extensions := cfg.extensions
	if len(extensions) == 0 {
		extensions = codec.Extensions(cfg.decoder)
	}

	// Environment checks happen before any file is touched.
	files, err := batch.Collect(cfg.input, extensions)
	if err != nil {
		return err
	}

	if err = report.CheckWritable(cfg.output); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, ui.Title(fmt.Sprintf("Total audio files: %d (%d workers)", len(files), cfg.workers)))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tracker := ui.NewTracker(os.Stderr, len(files), cfg.plain, cancel)
	analyzer := soundcheck.New(backend, backend, cfg.options)
	startTime := time.Now()

	records, err := batch.Run(ctx, analyzer, files, batch.Options{
		Workers:  cfg.workers,
		Progress: tracker.Update,
	})

	tracker.Stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Warning(fmt.Sprintf(
			"Process interrupted after %d of %d files, no report written", len(records), len(files))))

		return err
	}

	report.Sort(records)

	if err = report.WriteXLSX(cfg.output, records); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "> Report saved to: %s (%s)\n", cfg.output, time.Since(startTime).Truncate(time.Millisecond))
	fmt.Fprintln(os.Stdout)
	fmt.Fprint(os.Stdout, ui.RenderSummary(report.Summarize(records)))

	return nil
}
