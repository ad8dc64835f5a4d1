//nolint:wrapcheck
package main

import (
	"os"

	"github.com/farcloser/primordium/format"

	"github.com/farcloser/soundcheck"
	"github.com/farcloser/soundcheck/internal/output"
)

func outputRecord(filePath string, record *soundcheck.Record, formatName string) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	data := &format.Data{
		Object: filePath,
		Meta:   output.RecordToMap(record),
	}

	return formatter.PrintAll([]*format.Data{data}, os.Stdout)
}
