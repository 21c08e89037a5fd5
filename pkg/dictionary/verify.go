package dictionary

import (
	"errors"
	"fmt"

	"github.com/bastiangx/wordfuzz/pkg/compact"
	"github.com/tchap/go-patricia/v2/patricia"
)

// ErrVerify is wrapped by every Verify failure that is not a format error.
var ErrVerify = errors.New("compiled dictionary does not match its input")

var errStopVisit = errors.New("stop")

// Verify checks that t holds exactly entries. The expected set is kept in an
// independent patricia trie; every word walked out of t must be found there
// with the same frequency and is removed, so leftovers are missing words.
// The compiled structure is also rebuilt and its invariants validated.
func Verify(t *compact.Trie, entries []Entry) error {
	expected := patricia.NewTrie()
	for _, e := range entries {
		if !expected.Insert(patricia.Prefix(e.Word), e.Frequency) {
			return fmt.Errorf("duplicate input word %q: %w", e.Word, ErrVerify)
		}
	}

	seen := 0
	err := t.Walk(func(word []byte, frequency uint32) error {
		item := expected.Get(patricia.Prefix(word))
		if item == nil {
			return fmt.Errorf("unexpected word %q: %w", word, ErrVerify)
		}
		if want := item.(uint32); want != frequency {
			return fmt.Errorf("word %q has frequency %d, want %d: %w", word, frequency, want, ErrVerify)
		}
		expected.Delete(patricia.Prefix(word))
		seen++
		return nil
	})
	if err != nil {
		return err
	}

	if seen != len(entries) {
		var missing string
		expected.Visit(func(prefix patricia.Prefix, _ patricia.Item) error {
			missing = string(prefix)
			return errStopVisit
		})
		return fmt.Errorf("%d of %d words missing, e.g. %q: %w", len(entries)-seen, len(entries), missing, ErrVerify)
	}

	root, err := t.Rebuild()
	if err != nil {
		return err
	}
	if err := root.Validate(); err != nil {
		return fmt.Errorf("%v: %w", err, ErrVerify)
	}
	return nil
}
