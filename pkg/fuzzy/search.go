// Package fuzzy finds dictionary words within a Damerau-Levenshtein distance
// of a query by walking a compact trie depth-first while extending one DP row
// per trie byte. Subtrees whose rows exceed the distance bound are skipped.
package fuzzy

import (
	"context"
	"errors"
	"fmt"

	"github.com/bastiangx/wordfuzz/pkg/compact"
)

var ErrNegativeDistance = errors.New("max distance must be >= 0")

// Search returns every word of t within maxDistance of reference, ranked.
func Search(t *compact.Trie, reference []byte, maxDistance int) ([]Word, error) {
	return SearchContext(context.Background(), t, reference, maxDistance)
}

// SearchContext is Search with cancellation checked before each node visit.
func SearchContext(ctx context.Context, t *compact.Trie, reference []byte, maxDistance int) ([]Word, error) {
	if maxDistance < 0 {
		return nil, fmt.Errorf("search %q: %w", reference, ErrNegativeDistance)
	}
	words := []Word{}
	if t.Empty() {
		return words, nil
	}

	state := NewDLDistState(reference, maxDistance)

	type frame struct {
		offset   uint32
		baseline int
	}
	stack := []frame{{offset: 0, baseline: 0}}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		state.Truncate(f.baseline)
		v, err := t.Navigate(f.offset)
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", reference, err)
		}

		accept := state.Accepts()
		stopped := false
		for _, b := range v.Key {
			var stop bool
			stop, accept = state.Take(b)
			if stop {
				stopped = true
				break
			}
		}
		if stopped {
			continue
		}

		if v.IsTerminal() && accept {
			words = append(words, Word{
				Text:      string(state.Current()),
				Frequency: v.Frequency,
				Distance:  state.Distance(),
			})
		}

		// Children are pushed in reverse so they are visited in stored order.
		baseline := state.Len()
		for i := int(v.ChildCount) - 1; i >= 0; i-- {
			off, err := v.ChildOffset(i)
			if err != nil {
				return nil, err
			}
			stack = append(stack, frame{offset: off, baseline: baseline})
		}
	}

	SortWords(words)
	return words, nil
}

// Searcher runs searches against one shared trie. It holds no per-query state
// and is safe for concurrent use.
type Searcher struct {
	trie        *compact.Trie
	maxDistance int
	limit       int
}

// NewSearcher returns a Searcher over t. Queries asking for more than
// maxDistance are clamped to it when maxDistance > 0; limit > 0 caps the
// number of results returned.
func NewSearcher(t *compact.Trie, maxDistance, limit int) *Searcher {
	return &Searcher{trie: t, maxDistance: maxDistance, limit: limit}
}

// Search runs one query.
func (s *Searcher) Search(ctx context.Context, reference []byte, maxDistance int) ([]Word, error) {
	if s.maxDistance > 0 && maxDistance > s.maxDistance {
		maxDistance = s.maxDistance
	}
	words, err := SearchContext(ctx, s.trie, reference, maxDistance)
	if err != nil {
		return nil, err
	}
	if s.limit > 0 && len(words) > s.limit {
		words = words[:s.limit]
	}
	return words, nil
}

// Trie returns the trie being searched.
func (s *Searcher) Trie() *compact.Trie {
	return s.trie
}
