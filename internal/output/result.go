// Package output provides shared record serialization for the console, JSON and markdown formatters.
package output

import (
	"github.com/farcloser/soundcheck"
	"github.com/farcloser/soundcheck/internal/audit/silence"
	"github.com/farcloser/soundcheck/internal/types"
)

// RecordToMap converts an analysis record into the canonical map structure
// handed to primordium formatters. Sections the analyzer did not reach are omitted.
func RecordToMap(record *soundcheck.Record) map[string]any {
	meta := map[string]any{
		"file_name": record.FileName,
		"playable":  record.Playable,
	}

	if record.Issue != "" {
		meta["issue"] = record.Issue
		meta["failure"] = record.Failure.String()
	}

	if record.BitrateKbps != nil {
		meta["format"] = map[string]any{
			"bitrate_kbps":   *record.BitrateKbps,
			"sample_rate_hz": *record.SampleRateHz,
			"channels":       *record.Channels,
			"duration_sec":   *record.DurationSeconds,
		}
	}

	if !record.Playable {
		return meta
	}

	meta["silence"] = SilenceToMap(record.SilenceIntervals)
	meta["clipping"] = ClippingToMap(record)

	return meta
}

// SilenceToMap converts detected silence intervals to a map.
func SilenceToMap(intervals []types.SilenceInterval) map[string]any {
	segments := make([]any, 0, len(intervals))

	for _, interval := range intervals {
		segments = append(segments, map[string]any{
			"start_ms":    interval.StartMs,
			"end_ms":      interval.EndMs,
			"duration_ms": interval.Duration().Milliseconds(),
		})
	}

	return map[string]any{
		"detected":  len(intervals) > 0,
		"total_sec": silence.Total(intervals),
		"segments":  segments,
	}
}

// ClippingToMap converts the clipping fields of a record to a map.
func ClippingToMap(record *soundcheck.Record) map[string]any {
	meta := map[string]any{
		"detected": record.ContainsClipping,
		"count":    record.ClippingCount,
	}

	if record.ClippingPercentage != nil {
		meta["percentage"] = record.ClippingPercentageText()
	}

	return meta
}
