// Package finder coordinates the concurrent search of an index range for a
// target address.
//
// The coordinator fans chunks out to a bounded pool of workers and adopts
// the first result it observes. Because chunks are scanned concurrently,
// "first" is observation order, not index order: if the target occurs at
// more than one index the engine guarantees a valid match, not the lowest
// one. Chunks are dispatched in ascending index order, so in practice low
// indexes are favored.
package finder

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nherb/hdifinder/internal/apperrors"
	"github.com/nherb/hdifinder/pkg/chunker"
	"github.com/nherb/hdifinder/pkg/types"
	"github.com/nherb/hdifinder/pkg/worker"
)

// Options configures a Finder.
type Options struct {
	// Workers bounds the number of chunks scanned concurrently.
	// Defaults to runtime.NumCPU().
	Workers int

	// LogInterval is how often progress is logged. Zero disables
	// progress logging.
	LogInterval time.Duration

	// Log is the logger used for progress and worker diagnostics.
	Log zerolog.Logger
}

// Finder searches an index range for a target address using a pool of
// concurrent chunk workers.
type Finder struct {
	deriver     worker.Deriver
	workers     int
	logInterval time.Duration
	log         zerolog.Logger
}

// New creates a Finder scanning with the given deriver.
func New(deriver worker.Deriver, opts Options) *Finder {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Finder{
		deriver:     deriver,
		workers:     workers,
		logInterval: opts.LogInterval,
		log:         opts.Log,
	}
}

// Search scans [rng.Start, rng.End) in chunks of chunkSize for an index
// whose derived candidates contain target. It returns the first observed
// match, or (nil, nil) when the whole range is exhausted without one.
//
// Invalid inputs (chunkSize == 0, inverted range, empty target) fail with
// a ConfigError before any scanning starts. Cancelling ctx aborts the
// search and returns the context error unless a match had already been
// adopted.
func (f *Finder) Search(ctx context.Context, rng types.SearchRange, chunkSize uint32, target string) (*types.MatchResult, error) {
	if target == "" {
		return nil, apperrors.NewConfigError("target", "must not be empty")
	}
	chunks, err := chunker.Plan(rng, chunkSize)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		f.log.Info().Msg("empty search range, nothing to scan")
		return nil, nil
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	var attempts atomic.Int64
	stopProgress := f.startProgress(ctx, &attempts, start)

	var (
		mu    sync.Mutex
		match *types.MatchResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)

	f.log.Info().
		Int("workers", f.workers).
		Int("chunks", len(chunks)).
		Uint32("start", rng.Start).
		Uint32("end", rng.End).
		Msg("search started")

	for _, chunk := range chunks {
		chunk := chunk
		g.Go(func() error {
			w := worker.New(f.deriver, &attempts, f.log)
			res, err := w.Scan(gctx, chunk, target)
			if err != nil {
				return err
			}
			if res != nil {
				mu.Lock()
				if match == nil {
					match = res
					cancel()
				}
				mu.Unlock()
			}
			return nil
		})
	}

	waitErr := g.Wait()
	stopProgress()

	elapsed := time.Since(start)
	scanned := attempts.Load()

	if match != nil {
		f.log.Info().
			Uint32("index", match.Index).
			Str("kind", match.Kind).
			Str("address", match.Value).
			Int64("attempts", scanned).
			Dur("elapsed", elapsed).
			Msg("match found")
		return match, nil
	}
	if perr := parent.Err(); perr != nil {
		return nil, perr
	}
	if waitErr != nil && !apperrors.IsContextError(waitErr) {
		return nil, waitErr
	}

	f.log.Info().
		Int64("attempts", scanned).
		Dur("elapsed", elapsed).
		Msg("range exhausted, no match")
	return nil, nil
}

// startProgress launches the periodic progress logger and returns a stop
// function. No goroutine is started when progress logging is disabled.
func (f *Finder) startProgress(ctx context.Context, attempts *atomic.Int64, start time.Time) func() {
	if f.logInterval <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(f.logInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				scanned := attempts.Load()
				elapsed := time.Since(start)
				rate := 0.0
				if elapsed.Seconds() > 0 {
					rate = float64(scanned) / elapsed.Seconds()
				}
				f.log.Info().
					Int64("attempts", scanned).
					Float64("rate", rate).
					Msg("search progress")
			case <-ctx.Done():
				return
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}
