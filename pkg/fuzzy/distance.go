package fuzzy

// DLDistState incrementally computes the Damerau-Levenshtein (optimal string
// alignment) distance between a fixed reference word and a byte sequence that
// grows and shrinks as a trie is traversed.
//
// The DP matrix is kept flattened row-major: row i holds the distances between
// the first i bytes of the current sequence and every prefix of the
// reference. Take appends one row; Truncate drops rows. A row is never
// recomputed once written.
//
// A DLDistState belongs to a single query and is not safe for concurrent use.
type DLDistState struct {
	reference   []byte
	current     []byte
	table       []int
	cols        int
	maxDistance int
}

// NewDLDistState seeds the state with the zero row 0, 1, ..., len(reference).
func NewDLDistState(reference []byte, maxDistance int) *DLDistState {
	cols := len(reference) + 1
	s := &DLDistState{
		reference:   reference,
		current:     make([]byte, 0, 32),
		table:       make([]int, cols, cols*32),
		cols:        cols,
		maxDistance: maxDistance,
	}
	for j := range s.table {
		s.table[j] = j
	}
	return s
}

// Take appends b to the current sequence and computes its DP row.
//
// shouldStop is true when every cell of the new row exceeds the maximum
// distance: appending more bytes can only keep or raise those values, so no
// extension of the current sequence can match. accept is true when the full
// distance to the reference is within the maximum.
func (s *DLDistState) Take(b byte) (shouldStop, accept bool) {
	s.current = append(s.current, b)
	i := len(s.current)
	ref := s.reference

	prev := s.table[(i-1)*s.cols : i*s.cols]
	s.table = append(s.table, make([]int, s.cols)...)
	row := s.table[i*s.cols : (i+1)*s.cols]

	row[0] = i
	shouldStop = row[0] > s.maxDistance
	for j := 1; j < s.cols; j++ {
		cost := 1
		if b == ref[j-1] {
			cost = 0
		}
		d := min(row[j-1]+1, prev[j]+1, prev[j-1]+cost)

		// Adjacent transposition is only a candidate once two bytes are
		// consumed on both sides.
		if i >= 2 && j >= 2 && b == ref[j-2] && s.current[i-2] == ref[j-1] {
			d = min(d, s.table[(i-2)*s.cols+j-2]+1)
		}

		row[j] = d
		if d <= s.maxDistance {
			shouldStop = false
		}
	}
	return shouldStop, row[s.cols-1] <= s.maxDistance
}

// Truncate restores the state to what it was after the first n bytes of the
// current sequence were taken. Truncating to a length >= Len is a no-op.
func (s *DLDistState) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(s.current) {
		return
	}
	s.current = s.current[:n]
	s.table = s.table[:(n+1)*s.cols]
}

// Distance returns the distance between the current sequence and the reference.
func (s *DLDistState) Distance() int {
	return s.table[len(s.table)-1]
}

// Accepts reports whether Distance is within the maximum.
func (s *DLDistState) Accepts() bool {
	return s.Distance() <= s.maxDistance
}

// Len returns the number of bytes taken.
func (s *DLDistState) Len() int {
	return len(s.current)
}

// Current returns the bytes taken so far. The slice is only valid until the
// next Take or Truncate.
func (s *DLDistState) Current() []byte {
	return s.current
}

// Row returns a copy of DP row i, where row 0 is the seed row.
func (s *DLDistState) Row(i int) []int {
	return append([]int(nil), s.table[i*s.cols:(i+1)*s.cols]...)
}

// MaxDistance returns the pruning threshold.
func (s *DLDistState) MaxDistance() int {
	return s.maxDistance
}
