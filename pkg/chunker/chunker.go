// Package chunker partitions a search range into bounded, contiguous
// chunks for parallel scanning.
package chunker

import (
	"github.com/nherb/hdifinder/internal/apperrors"
	"github.com/nherb/hdifinder/pkg/types"
)

// Plan splits rng into consecutive chunks of at most chunkSize indexes.
// The returned chunks cover rng exactly, in ascending order, with no gaps
// and no overlaps; only the last chunk may be shorter than chunkSize.
//
// An empty range (Start == End) yields an empty plan. A chunkSize of zero
// or an inverted range is a configuration error.
func Plan(rng types.SearchRange, chunkSize uint32) ([]types.ChunkSpec, error) {
	if chunkSize == 0 {
		return nil, apperrors.NewConfigError("chunk_size", "must be greater than zero")
	}
	if rng.Start > rng.End {
		return nil, apperrors.NewConfigError("range", "start %d is beyond end %d", rng.Start, rng.End)
	}

	n := (uint64(rng.Size()) + uint64(chunkSize) - 1) / uint64(chunkSize)
	chunks := make([]types.ChunkSpec, 0, n)
	for cur := rng.Start; cur < rng.End; {
		end := cur + chunkSize
		// clamp the tail chunk, guarding uint32 wraparound
		if end < cur || end > rng.End {
			end = rng.End
		}
		chunks = append(chunks, types.ChunkSpec{Start: cur, End: end})
		cur = end
	}
	return chunks, nil
}
