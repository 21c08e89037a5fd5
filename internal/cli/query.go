// Package cli implements the line-oriented query protocol and an interactive
// prompt over a compiled dictionary.
package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bastiangx/wordfuzz/pkg/fuzzy"
)

// ErrQueryLine is returned for a line that is not "<ignored> <max_distance> <word>".
var ErrQueryLine = errors.New("malformed query line")

// Query is one parsed request line.
type Query struct {
	MaxDistance int
	Word        []byte
}

// ParseQueryLine splits a request line into its distance and word. The first
// token is accepted and discarded.
func ParseQueryLine(line string) (Query, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Query{}, fmt.Errorf("%d tokens, want 3: %w", len(fields), ErrQueryLine)
	}
	d, err := strconv.Atoi(fields[1])
	if err != nil {
		return Query{}, fmt.Errorf("max distance %q: %w", fields[1], ErrQueryLine)
	}
	if d < 0 {
		return Query{}, fmt.Errorf("negative max distance %d: %w", d, ErrQueryLine)
	}
	return Query{MaxDistance: d, Word: []byte(fields[2])}, nil
}

// Result is the JSON shape of one match.
type Result struct {
	Word     string `json:"word"`
	Freq     uint32 `json:"freq"`
	Distance int    `json:"distance"`
}

// NewResults converts ranked words to their output form. The result is never
// nil so an empty match set encodes as [].
func NewResults(words []fuzzy.Word) []Result {
	out := make([]Result, 0, len(words))
	for _, w := range words {
		out = append(out, Result{Word: w.Text, Freq: w.Frequency, Distance: w.Distance})
	}
	return out
}
