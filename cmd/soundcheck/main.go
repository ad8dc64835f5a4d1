package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/soundcheck/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	appl := &cli.Command{
		Name:    version.Name(),
		Usage:   "Check a music collection for unplayable files, silence and clipping",
		Version: version.Version() + " " + version.Commit(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}

			return ctx, nil
		},
		Commands: []*cli.Command{
			scanCommand(),
			inspectCommand(),
			digestCommand(),
		},
	}

	err := appl.Run(ctx, os.Args)

	stop()

	if err != nil {
		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}
