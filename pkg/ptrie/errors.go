package ptrie

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyWord     = errors.New("empty word")
	ErrZeroFrequency = errors.New("frequency must be nonzero")
	ErrDuplicateWord = errors.New("word already present")
)

// WordError reports which word an Insert rejected.
type WordError struct {
	Word string
	Err  error
}

func (e *WordError) Error() string {
	if e.Word == "" {
		return fmt.Sprintf("insert: %v", e.Err)
	}
	return fmt.Sprintf("insert %q: %v", e.Word, e.Err)
}

func (e *WordError) Unwrap() error {
	return e.Err
}

// InvariantError is returned by Validate when the sibling invariant is broken.
type InvariantError struct {
	Path   []byte
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("trie invariant violated at %q: %s", e.Path, e.Reason)
}
