package types

// SearchRange is the half-open index interval [Start, End) to be searched.
type SearchRange struct {
	Start uint32
	End   uint32
}

// Size returns the number of indexes in the range.
func (r SearchRange) Size() uint32 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// ChunkSpec is one half-open sub-range [Start, End) assigned to a single worker.
type ChunkSpec struct {
	Start uint32
	End   uint32
}

// Candidate is one encoded address produced at a derivation index, tagged
// with its encoding kind (e.g. "p2pkh", "p2wpkh", "p2shwpkh").
type Candidate struct {
	Kind  string
	Value string
}

// MatchResult describes the first candidate found equal to the target.
type MatchResult struct {
	Index uint32 // derivation index the match was found at
	Value string // the matching address
	Kind  string // encoding kind of the matching address
}
