package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/soundcheck"
	"github.com/farcloser/soundcheck/internal/report"
	"github.com/farcloser/soundcheck/internal/ui"
)

func digestCommand() *cli.Command {
	return &cli.Command{
		Name:      "digest",
		Usage:     "Print the summary of an existing soundcheck report",
		ArgsUsage: "<report.xlsx>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "details",
				Usage: "List unplayable and clipped files",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errors.New("expected exactly one argument: path to report.xlsx")
			}

			return runDigest(cmd.Args().First(), cmd.Bool("details"))
		},
	}
}

func runDigest(reportPath string, details bool) error {
	records, err := report.ReadXLSX(reportPath)
	if err != nil {
		return err
	}

	fmt.Print(ui.RenderSummary(report.Summarize(records)))

	if details {
		printIssueDetail(records)
	}

	return nil
}

func printIssueDetail(records []soundcheck.Record) {
	var unplayable, clipped []soundcheck.Record

	for _, record := range records {
		switch {
		case !record.Playable:
			unplayable = append(unplayable, record)
		case record.ContainsClipping:
			clipped = append(clipped, record)
		}
	}

	fmt.Println()

	if len(unplayable) == 0 && len(clipped) == 0 {
		fmt.Println("No tracks with issues")

		return
	}

	if len(unplayable) > 0 {
		fmt.Printf("=== unplayable: %d tracks ===\n\n", len(unplayable))

		for _, record := range unplayable {
			fmt.Printf("  %s\n", record.FilePath)
			fmt.Printf("    %s\n", record.Issue)
		}

		fmt.Println()
	}

	if len(clipped) > 0 {
		slices.SortFunc(clipped, func(a, b soundcheck.Record) int {
			return cmp.Compare(b.ClippingCount, a.ClippingCount)
		})

		fmt.Printf("=== clipping: %d tracks ===\n\n", len(clipped))

		for _, record := range clipped {
			fmt.Printf("  %s\n", record.FilePath)
			fmt.Printf("    clipped samples: %d\n", record.ClippingCount)
		}

		fmt.Println()
	}
}
