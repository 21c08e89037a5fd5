package ptrie

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, words map[string]uint32) *Node {
	t.Helper()
	root := New()
	for w, f := range words {
		require.NoError(t, root.Insert([]byte(w), f), "insert %q", w)
	}
	return root
}

func collect(t *testing.T, root *Node) map[string]uint32 {
	t.Helper()
	got := make(map[string]uint32)
	require.NoError(t, root.Walk(func(word []byte, f uint32) error {
		got[string(word)] = f
		return nil
	}))
	return got
}

func TestInsertCases(t *testing.T) {
	testCases := []struct {
		description string
		words       []string
		wantKeys    []string // keys of the root's children, in order
	}{
		{"single word becomes a leaf", []string{"hello"}, []string{"hello"}},
		{"key exhausted, word remains", []string{"he", "hello"}, []string{"he"}},
		{"word exhausted, key remains", []string{"hello", "he"}, []string{"he"}},
		{"diverging words split", []string{"hello", "help"}, []string{"hel"}},
		{"disjoint first bytes", []string{"b", "a", "c"}, []string{"a", "b", "c"}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			root := New()
			for i, w := range tc.words {
				require.NoError(t, root.Insert([]byte(w), uint32(i+1)))
			}
			var keys []string
			for _, c := range root.Children() {
				keys = append(keys, string(c.Key))
			}
			assert.Equal(t, tc.wantKeys, keys)
			require.NoError(t, root.Validate())

			for i, w := range tc.words {
				f, ok := root.Lookup([]byte(w))
				assert.True(t, ok, "word %q missing", w)
				assert.Equal(t, uint32(i+1), f)
			}
		})
	}
}

func TestSplitKeepsSubtree(t *testing.T) {
	root := build(t, map[string]uint32{"hello": 5, "helloworld": 7})
	require.NoError(t, root.Insert([]byte("help"), 3))

	hel, ok := root.Child('h')
	require.True(t, ok)
	assert.Equal(t, "hel", string(hel.Key))
	assert.Zero(t, hel.Frequency)
	require.Equal(t, 2, hel.ChildCount())

	lo, ok := hel.Child('l')
	require.True(t, ok)
	assert.Equal(t, "lo", string(lo.Key))
	assert.Equal(t, uint32(5), lo.Frequency)
	require.Equal(t, 1, lo.ChildCount())

	assert.Equal(t, map[string]uint32{"hello": 5, "helloworld": 7, "help": 3}, collect(t, root))
}

func TestWordExhaustedSplitInheritsFrequency(t *testing.T) {
	root := build(t, map[string]uint32{"abcd": 4})
	require.NoError(t, root.Insert([]byte("ab"), 2))

	ab, _ := root.Child('a')
	assert.Equal(t, "ab", string(ab.Key))
	assert.Equal(t, uint32(2), ab.Frequency)
	cd, ok := ab.Child('c')
	require.True(t, ok)
	assert.Equal(t, "cd", string(cd.Key))
	assert.Equal(t, uint32(4), cd.Frequency)
}

func TestInsertErrors(t *testing.T) {
	root := build(t, map[string]uint32{"hello": 1})

	err := root.Insert(nil, 1)
	assert.ErrorIs(t, err, ErrEmptyWord)

	err = root.Insert([]byte("x"), 0)
	assert.ErrorIs(t, err, ErrZeroFrequency)

	err = root.Insert([]byte("hello"), 9)
	require.ErrorIs(t, err, ErrDuplicateWord)
	var werr *WordError
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, "hello", werr.Word)

	f, _ := root.Lookup([]byte("hello"))
	assert.Equal(t, uint32(1), f, "duplicate insert must not overwrite")
}

func TestInsertIntoSplitPrefix(t *testing.T) {
	// "he" exists only as an internal split point until inserted.
	root := build(t, map[string]uint32{"hello": 1, "help": 2})
	_, ok := root.Lookup([]byte("hel"))
	assert.False(t, ok)
	require.NoError(t, root.Insert([]byte("hel"), 3))
	f, ok := root.Lookup([]byte("hel"))
	assert.True(t, ok)
	assert.Equal(t, uint32(3), f)
}

func TestLookupMisses(t *testing.T) {
	root := build(t, map[string]uint32{"car": 1, "cart": 2})
	for _, w := range []string{"", "c", "ca", "cars", "carts", "dog"} {
		_, ok := root.Lookup([]byte(w))
		assert.False(t, ok, "unexpected hit for %q", w)
	}
}

func TestRandomInsertInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	want := make(map[string]uint32)
	root := New()
	for len(want) < 2000 {
		n := 1 + rng.Intn(8)
		var sb strings.Builder
		for i := 0; i < n; i++ {
			sb.WriteByte("abcde"[rng.Intn(5)])
		}
		w := sb.String()
		if _, dup := want[w]; dup {
			continue
		}
		f := uint32(1 + rng.Intn(1000))
		require.NoError(t, root.Insert([]byte(w), f))
		want[w] = f
	}

	require.NoError(t, root.Validate())
	assert.Equal(t, want, collect(t, root))

	stats := root.Stats()
	assert.Equal(t, len(want), stats.Words)
	assert.LessOrEqual(t, stats.MaxDepth, 8)

	// Walk order is ascending byte order.
	var prev []byte
	require.NoError(t, root.Walk(func(word []byte, _ uint32) error {
		if prev != nil && bytes.Compare(prev, word) >= 0 {
			return fmt.Errorf("out of order: %q then %q", prev, word)
		}
		prev = append(prev[:0], word...)
		return nil
	}))
}

func TestWriteDot(t *testing.T) {
	root := build(t, map[string]uint32{"he": 1, "hello": 2, "a\"b": 3})
	var buf bytes.Buffer
	require.NoError(t, root.WriteDot(&buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph ptrie {"))
	assert.Contains(t, out, `label="he\n1", peripheries=2`)
	assert.Contains(t, out, `label="llo\n2", peripheries=2`)
	assert.Contains(t, out, `a\"b`)
	assert.Equal(t, 3, strings.Count(out, "->"))
}
