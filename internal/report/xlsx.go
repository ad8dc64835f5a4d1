package report

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/farcloser/soundcheck"
)

const sheetName = "Sheet1"

var ErrNotReport = errors.New("not a soundcheck report")

// Columns is the header row, in order.
//
//nolint:gochecknoglobals // effectively const
var Columns = []string{
	"File Name",
	"File Path",
	"Bitrate (kbps)",
	"Sampling Rate (Hz)",
	"Channels",
	"Duration (s)",
	"Playable",
	"Contains Clipping",
	"Clipping Count",
	"Issues",
}

const (
	colFileName = iota
	colFilePath
	colBitrate
	colSampleRate
	colChannels
	colDuration
	colPlayable
	colContainsClipping
	colClippingCount
	colIssues
)

// WriteXLSX writes records, in the given order, to a single-sheet workbook at path.
// Values the analyzer could not determine are left as empty cells.
func WriteXLSX(path string, records []soundcheck.Record) error {
	book := excelize.NewFile()
	defer book.Close()

	header := make([]any, len(Columns))
	for i, name := range Columns {
		header[i] = name
	}

	if err := book.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	bold, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(Columns), 1)
	if err != nil {
		return err
	}

	if err = book.SetCellStyle(sheetName, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2) //nolint:mnd // row 1 is the header
		if err != nil {
			return err
		}

		row := recordToRow(&records[i])
		if err = book.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row for %q: %w", records[i].FilePath, err)
		}
	}

	if err = book.SetColWidth(sheetName, "A", "B", 40); err != nil { //nolint:mnd // readable path columns
		return err
	}

	slog.Debug("report.WriteXLSX", "path", path, "rows", len(records))

	if err = book.SaveAs(path); err != nil {
		return fmt.Errorf("%q: %w: %w", path, ErrOutputNotWritable, err)
	}

	return nil
}

func recordToRow(record *soundcheck.Record) []any {
	row := make([]any, len(Columns))

	row[colFileName] = record.FileName
	row[colFilePath] = record.FilePath
	row[colBitrate] = optional(record.BitrateKbps)
	row[colSampleRate] = optional(record.SampleRateHz)
	row[colChannels] = optional(record.Channels)
	row[colDuration] = optional(record.DurationSeconds)
	row[colPlayable] = record.Playable
	row[colContainsClipping] = record.ContainsClipping
	row[colClippingCount] = record.ClippingCount
	row[colIssues] = record.Issue

	return row
}

// optional keeps a typed nil pointer from reaching excelize, which would render it as text.
func optional[T int | float64](value *T) any {
	if value == nil {
		return nil
	}

	return *value
}

// ReadXLSX loads a report written by WriteXLSX. Only the exported columns
// are recovered; silence details and the failure kind are not in the sheet.
func ReadXLSX(path string) ([]soundcheck.Record, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening report: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%q: %w", path, ErrNotReport)
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	if len(rows) == 0 || !slices.Equal(rows[0], Columns) {
		return nil, fmt.Errorf("%q: unexpected header: %w", path, ErrNotReport)
	}

	records := make([]soundcheck.Record, 0, len(rows)-1)

	for i, row := range rows[1:] {
		record, err := rowToRecord(row)
		if err != nil {
			return nil, fmt.Errorf("%q row %d: %w", path, i+2, err) //nolint:mnd // spreadsheet row numbers
		}

		records = append(records, record)
	}

	return records, nil
}

func rowToRecord(row []string) (soundcheck.Record, error) {
	// Trailing empty cells are dropped by GetRows.
	cell := func(col int) string {
		if col < len(row) {
			return row[col]
		}

		return ""
	}

	record := soundcheck.Record{
		FileName: cell(colFileName),
		FilePath: cell(colFilePath),
		Issue:    cell(colIssues),
	}

	var err error

	if record.BitrateKbps, err = parseOptional(cell(colBitrate), strconv.Atoi); err != nil {
		return record, err
	}

	if record.SampleRateHz, err = parseOptional(cell(colSampleRate), strconv.Atoi); err != nil {
		return record, err
	}

	if record.Channels, err = parseOptional(cell(colChannels), strconv.Atoi); err != nil {
		return record, err
	}

	if record.DurationSeconds, err = parseOptional(cell(colDuration), parseFloat); err != nil {
		return record, err
	}

	if record.Playable, err = strconv.ParseBool(cell(colPlayable)); err != nil {
		return record, fmt.Errorf("playable: %w", err)
	}

	if record.ContainsClipping, err = strconv.ParseBool(cell(colContainsClipping)); err != nil {
		return record, fmt.Errorf("contains clipping: %w", err)
	}

	if record.ClippingCount, err = strconv.ParseUint(cell(colClippingCount), 10, 64); err != nil {
		return record, fmt.Errorf("clipping count: %w", err)
	}

	return record, nil
}

func parseFloat(value string) (float64, error) {
	return strconv.ParseFloat(value, 64)
}

func parseOptional[T any](value string, parse func(string) (T, error)) (*T, error) {
	if value == "" {
		return nil, nil //nolint:nilnil // empty cell
	}

	parsed, err := parse(value)
	if err != nil {
		return nil, err
	}

	return &parsed, nil
}
