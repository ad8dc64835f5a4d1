package soundcheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/farcloser/soundcheck/internal/audit/clipping"
	"github.com/farcloser/soundcheck/internal/audit/shared"
	"github.com/farcloser/soundcheck/internal/audit/silence"
	"github.com/farcloser/soundcheck/internal/types"
)

/*
Usage:

backend, _ := codec.New(codec.NameNative)
analyzer := soundcheck.New(backend, backend, soundcheck.DefaultOptions())

record := analyzer.Analyze(ctx, "album/01.mp3")
if !record.Playable {
    fmt.Println(record.Issue)
}

// Stricter silence detection
opts := soundcheck.DefaultOptions()
opts.SilenceThresholdDB = -50
opts.SilenceMinDurationMs = 2000
analyzer := soundcheck.New(backend, backend, opts)

// Why did it fail?
if errors.Is(record.Err, soundcheck.ErrMetadata) {
    // never decoded
}

*/

var (
	ErrMetadata = errors.New("metadata error")
	ErrDecode   = errors.New("decode error")
	ErrAnalysis = errors.New("analysis error")
)

// Analyzer runs the per-file checks. It holds no per-file state and is safe for concurrent use.
type Analyzer struct {
	metadata MetadataReader
	decoder  Decoder
	opts     Options
}

// New returns an Analyzer. Zero option fields take their defaults.
func New(metadata MetadataReader, decoder Decoder, opts Options) *Analyzer {
	defaults := DefaultOptions()

	if opts.SilenceThresholdDB == 0 {
		opts.SilenceThresholdDB = defaults.SilenceThresholdDB
	}

	if opts.SilenceMinDurationMs <= 0 {
		opts.SilenceMinDurationMs = defaults.SilenceMinDurationMs
	}

	if opts.SilenceWindowMs <= 0 {
		opts.SilenceWindowMs = defaults.SilenceWindowMs
	}

	return &Analyzer{metadata: metadata, decoder: decoder, opts: opts}
}

// Analyze inspects one file. It never fails: problems are reported through
// Record.Playable, Record.Failure and Record.Issue.
//
// A metadata failure skips decoding entirely. A decode or analysis failure
// keeps the metadata fields and leaves silence and clipping at their zero values.
func (a *Analyzer) Analyze(ctx context.Context, filePath string) Record {
	slog.Debug("soundcheck.Analyze", "file path", filePath, "stage", "start")

	record := Record{
		FileName: filepath.Base(filePath),
		FilePath: filePath,
	}

	meta, err := a.readMetadata(ctx, filePath)
	if err != nil {
		slog.Debug("soundcheck.Analyze", "file path", filePath, "stage", "metadata", "error", err)

		record.Failure = FailureMetadata
		record.Err = fmt.Errorf("%w: %w", ErrMetadata, err)
		record.Issue = fmt.Sprintf("Error loading file: %v", err)

		return record
	}

	bitrate, sampleRate, channels := meta.BitrateKbps, meta.SampleRate, meta.Channels
	duration := shared.Round2(meta.Duration)

	record.BitrateKbps = &bitrate
	record.SampleRateHz = &sampleRate
	record.Channels = &channels
	record.DurationSeconds = &duration

	intervals, stats, failure, err := a.inspect(ctx, filePath)
	if err != nil {
		slog.Debug("soundcheck.Analyze", "file path", filePath, "stage", failure.String(), "error", err)

		sentinel := ErrDecode
		if failure == FailureAnalysis {
			sentinel = ErrAnalysis
		}

		record.Failure = failure
		record.Err = fmt.Errorf("%w: %w", sentinel, err)
		record.Issue = fmt.Sprintf("Error analyzing file: %v", err)

		return record
	}

	record.Playable = true

	record.SilenceIntervals = intervals
	record.SilenceDurationSeconds = silence.Total(intervals)
	record.ContainsSilence = record.SilenceDurationSeconds > 0

	record.ClippingCount = stats.Count
	if stats.Count > 0 {
		percentage := shared.Round2(stats.Percentage())

		record.ContainsClipping = true
		record.ClippingPercentage = &percentage
	}

	slog.Debug("soundcheck.Analyze", "file path", filePath, "stage", "done")

	return record
}

func (a *Analyzer) readMetadata(ctx context.Context, filePath string) (meta *types.Metadata, err error) {
	defer recoverInto(&err)

	meta, err = a.metadata.ReadMetadata(ctx, filePath)
	if err == nil && meta == nil {
		err = errNilMetadata
	}

	return meta, err
}

// inspect decodes and runs both detectors. The buffer does not outlive the call.
func (a *Analyzer) inspect(
	ctx context.Context,
	filePath string,
) ([]types.SilenceInterval, *types.ClippingStats, Failure, error) {
	buf, err := a.decode(ctx, filePath)
	if err != nil {
		return nil, nil, FailureDecode, err
	}

	intervals, stats, err := a.detect(buf)
	if err != nil {
		return nil, nil, FailureAnalysis, err
	}

	return intervals, stats, FailureNone, nil
}

func (a *Analyzer) decode(ctx context.Context, filePath string) (buf *types.SampleBuffer, err error) {
	defer recoverInto(&err)

	buf, err = a.decoder.Decode(ctx, filePath)
	if err != nil {
		return nil, err
	}

	if buf == nil {
		return nil, errNilBuffer
	}

	return buf, nil
}

func (a *Analyzer) detect(buf *types.SampleBuffer) (
	intervals []types.SilenceInterval,
	stats *types.ClippingStats,
	err error,
) {
	defer recoverInto(&err)

	intervals, err = silence.Detect(buf, silence.Options{
		ThresholdDb:   a.opts.SilenceThresholdDB,
		MinDurationMs: a.opts.SilenceMinDurationMs,
		WindowMs:      a.opts.SilenceWindowMs,
	})
	if err != nil {
		return nil, nil, err
	}

	stats, err = clipping.Detect(buf)
	if err != nil {
		return nil, nil, err
	}

	return intervals, stats, nil
}

var (
	errNilBuffer   = errors.New("decoder returned no data")
	errNilMetadata = errors.New("metadata reader returned no data")
	errPanic       = errors.New("panic")
)

// recoverInto turns a panic from third-party decoding code into an error.
func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", errPanic, r)
	}
}
