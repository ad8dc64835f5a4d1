package batch

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/farcloser/soundcheck"
)

// Analyzer is the per-file step. *soundcheck.Analyzer satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, path string) soundcheck.Record
}

// Progress is called once per finished file, from worker goroutines.
type Progress func(done, total int, record *soundcheck.Record)

type Options struct {
	Workers  int      // concurrent analyses (default: number of CPUs)
	Progress Progress // optional
}

// Collector is an append-only, concurrency-safe record list.
type Collector struct {
	mu      sync.Mutex
	records []soundcheck.Record
}

// Add appends record and returns the new length.
func (c *Collector) Add(record soundcheck.Record) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = append(c.records, record)

	return len(c.records)
}

// Records returns a copy of what has been collected so far, in completion order.
func (c *Collector) Records() []soundcheck.Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]soundcheck.Record, len(c.records))
	copy(out, c.records)

	return out
}

// Run analyzes files with at most opts.Workers in flight. Records come back in
// completion order; ordering is the report's job.
//
// Once ctx is done no new file is started. The records produced so far are
// returned together with ctx.Err().
func Run(ctx context.Context, analyzer Analyzer, files []string, opts Options) ([]soundcheck.Record, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	slog.Debug("batch.Run", "files", len(files), "workers", workers)

	collector := &Collector{}

	var (
		group    errgroup.Group
		progress atomic.Int64
	)

	group.SetLimit(workers)

	for _, path := range files {
		if ctx.Err() != nil {
			break
		}

		// Blocks while all workers are busy.
		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			record := analyzer.Analyze(ctx, path)

			// A failure caused by the interrupt says nothing about the file.
			if ctx.Err() != nil && !record.Playable {
				slog.Debug("batch.Run", "file path", path, "stage", "dropped after cancellation")

				return nil
			}

			collector.Add(record)

			done := int(progress.Add(1))
			if opts.Progress != nil {
				opts.Progress(done, len(files), &record)
			}

			return nil
		})
	}

	// Workers never return errors; failures live in the records.
	_ = group.Wait()

	return collector.Records(), ctx.Err()
}
