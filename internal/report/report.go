// Package report orders analysis records and exports them as a spreadsheet.
package report

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/farcloser/soundcheck"
)

var ErrOutputNotWritable = errors.New("output file is not writable")

// Sort orders records for the report: playable first, then most clipped
// first, then by path so equal records keep a stable order.
func Sort(records []soundcheck.Record) {
	slices.SortStableFunc(records, func(a, b soundcheck.Record) int {
		if a.Playable != b.Playable {
			if a.Playable {
				return -1
			}

			return 1
		}

		if c := cmp.Compare(b.ClippingCount, a.ClippingCount); c != 0 {
			return c
		}

		return cmp.Compare(a.FilePath, b.FilePath)
	})
}

// CheckWritable makes sure path can be written before any analysis starts.
// The parent directory is created when missing. An existing file is left
// untouched; a placeholder file created here is removed again.
func CheckWritable(path string) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd // standard directory permissions
		return fmt.Errorf("%q: %w: %w", dir, ErrOutputNotWritable, err)
	}

	_, statErr := os.Stat(path)
	existed := statErr == nil

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644) //nolint:gosec,mnd // user-chosen output
	if err != nil {
		return fmt.Errorf("%q: %w: %w", path, ErrOutputNotWritable, err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("%q: %w: %w", path, ErrOutputNotWritable, err)
	}

	if !existed {
		_ = os.Remove(path)
	}

	return nil
}

// Summary counts the headline numbers printed after a run.
type Summary struct {
	Total        int
	Playable     int
	Unplayable   int
	WithClipping int
}

func Summarize(records []soundcheck.Record) Summary {
	summary := Summary{Total: len(records)}

	for i := range records {
		record := &records[i]

		if !record.Playable {
			summary.Unplayable++

			continue
		}

		summary.Playable++

		if record.ContainsClipping {
			summary.WithClipping++
		}
	}

	return summary
}
