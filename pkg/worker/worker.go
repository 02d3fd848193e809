// Package worker scans a single chunk of the index space for the target
// address.
package worker

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/nherb/hdifinder/pkg/types"
)

// Deriver produces the ordered candidate addresses for a derivation index.
// Implementations must be pure and safe for concurrent use; a failure at
// one index must not affect any other index.
type Deriver interface {
	DeriveCandidates(index uint32) ([]types.Candidate, error)
}

// Worker scans one chunk in ascending index order.
type Worker struct {
	deriver  Deriver
	attempts *atomic.Int64
	log      zerolog.Logger
}

// New creates a worker. attempts is a counter shared with the coordinator,
// incremented once per scanned index.
func New(deriver Deriver, attempts *atomic.Int64, log zerolog.Logger) *Worker {
	return &Worker{deriver: deriver, attempts: attempts, log: log}
}

// Scan walks chunk from Start to End, comparing every candidate at every
// index against target, and returns the first exact match. Candidates are
// checked in the order the deriver emits them. Once a match is found no
// further candidates or indexes are evaluated.
//
// An index whose derivation fails is logged and skipped; the scan
// continues with the next index. Cancellation is checked once per index;
// a cancelled scan returns ctx.Err(). An exhausted chunk returns
// (nil, nil).
func (w *Worker) Scan(ctx context.Context, chunk types.ChunkSpec, target string) (*types.MatchResult, error) {
	for i := chunk.Start; i < chunk.End; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidates, err := w.deriver.DeriveCandidates(i)
		w.attempts.Add(1)
		if err != nil {
			w.log.Warn().Uint32("index", i).Err(err).Msg("derivation failed, skipping index")
			continue
		}

		for _, c := range candidates {
			if c.Value == target {
				return &types.MatchResult{Index: i, Value: c.Value, Kind: c.Kind}, nil
			}
		}
	}
	return nil, nil
}
