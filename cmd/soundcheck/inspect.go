package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/soundcheck"
)

var errInvalidArgCount = errors.New("expected exactly one argument: file path")

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Analyze a single audio file and print every finding",
		ArgsUsage: "<file>",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: console, json, markdown",
				Value:   "console",
			},
		}, analysisFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
			}

			options, err := analysisOptions(cmd)
			if err != nil {
				return err
			}

			backend, err := newBackend(cmd.String("decoder"))
			if err != nil {
				return err
			}

			filePath := cmd.Args().First()
			record := soundcheck.New(backend, backend, options).Analyze(ctx, filePath)

			if err = outputRecord(filePath, &record, cmd.String("format")); err != nil {
				return err
			}

			// The record is printed either way; the exit code tells scripts whether the file plays.
			if !record.Playable {
				return fmt.Errorf("%s: %w", filePath, record.Err)
			}

			return nil
		},
	}
}
