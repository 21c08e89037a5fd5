package fuzzy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// osaDistance is the textbook optimal string alignment distance, used as the
// oracle for the incremental state.
func osaDistance(a, b []byte) int {
	d := make([][]int, len(a)+1)
	for i := range d {
		d[i] = make([]int, len(b)+1)
		d[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		d[0][j] = j
	}
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			d[i][j] = min(d[i-1][j]+1, d[i][j-1]+1, d[i-1][j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				d[i][j] = min(d[i][j], d[i-2][j-2]+1)
			}
		}
	}
	return d[len(a)][len(b)]
}

func takeAll(s *DLDistState, word string) (stop, accept bool) {
	for i := 0; i < len(word); i++ {
		stop, accept = s.Take(word[i])
	}
	return stop, accept
}

func TestDistanceExamples(t *testing.T) {
	testCases := []struct {
		reference string
		candidate string
		expected  int
	}{
		{"hellow", "hlelow", 1},
		{"hellow", "helpow", 1},
		{"hellow", "hellow", 0},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"ab", "ba", 1},
		{"ca", "abc", 3},
		{"", "abc", 3},
		{"abc", "", 3},
		{"book", "back", 2},
	}

	for _, tc := range testCases {
		t.Run(tc.reference+"→"+tc.candidate, func(t *testing.T) {
			s := NewDLDistState([]byte(tc.reference), 10)
			takeAll(s, tc.candidate)
			assert.Equal(t, tc.expected, s.Distance())
			assert.Equal(t, tc.expected, osaDistance([]byte(tc.candidate), []byte(tc.reference)))
		})
	}
}

func TestSeedRow(t *testing.T) {
	s := NewDLDistState([]byte("abcd"), 1)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, s.Row(0))
	assert.Equal(t, 4, s.Distance())
	assert.False(t, s.Accepts())
	assert.Zero(t, s.Len())
}

func TestTakeFlags(t *testing.T) {
	s := NewDLDistState([]byte("cat"), 1)

	stop, accept := s.Take('c')
	assert.False(t, stop)
	assert.False(t, accept) // "c" vs "cat" = 2

	stop, accept = s.Take('a')
	assert.False(t, stop)
	assert.True(t, accept) // "ca" vs "cat" = 1

	s.Truncate(0)
	stop, _ = s.Take('x')
	assert.False(t, stop) // row [1 1 2 3]
	stop, accept = s.Take('y')
	assert.True(t, stop, "row %v should exceed the bound everywhere", s.Row(2))
	assert.False(t, accept)
}

func TestTransposeNotEligibleOnFirstByte(t *testing.T) {
	// A single byte can never be an adjacent transposition.
	s := NewDLDistState([]byte("ab"), 0)
	_, accept := s.Take('b')
	assert.False(t, accept)
	assert.Equal(t, []int{1, 1, 1}, s.Row(1))
}

func TestTruncateReplay(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 200; trial++ {
		ref := randomWord(rng, 8)
		seq := randomWord(rng, 10)
		max := rng.Intn(4)

		straight := NewDLDistState(ref, max)
		takeAll(straight, string(seq))

		replayed := NewDLDistState(ref, max)
		takeAll(replayed, string(seq))
		n := rng.Intn(len(seq) + 1)
		replayed.Truncate(n)
		require.Equal(t, n, replayed.Len())
		require.Equal(t, seq[:n], replayed.Current())
		takeAll(replayed, string(seq[n:]))

		require.Equal(t, straight.table, replayed.table, "ref=%q seq=%q n=%d", ref, seq, n)
		require.Equal(t, osaDistance(seq, ref), straight.Distance())
	}
}

func TestTruncatePastEndIsNoop(t *testing.T) {
	s := NewDLDistState([]byte("abc"), 2)
	takeAll(s, "ab")
	before := s.Row(2)
	s.Truncate(5)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, before, s.Row(2))
}

func randomWord(rng *rand.Rand, maxLen int) []byte {
	w := make([]byte, rng.Intn(maxLen+1))
	for i := range w {
		w[i] = "abcd"[rng.Intn(4)]
	}
	return w
}
