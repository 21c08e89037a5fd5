package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bastiangx/wordfuzz/pkg/ptrie"
)

// ErrFieldCount is returned for a word list line without exactly two tokens.
var ErrFieldCount = errors.New("expected <word> <frequency>")

// maxLineSize bounds a single word list line.
const maxLineSize = 1 << 20

// Entry is one word and its frequency from a word list.
type Entry struct {
	Word      string
	Frequency uint32
}

// ParseError reports the first bad line of a word list.
type ParseError struct {
	Line  int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseWordList reads "<word> <frequency>" lines. Blank lines are skipped;
// any other malformed line stops parsing with a *ParseError.
func ParseWordList(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var entries []Entry
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, &ParseError{Line: lineNum, Token: strings.TrimSpace(line), Err: ErrFieldCount}
		}

		freq, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return nil, &ParseError{Line: lineNum, Token: fields[1], Err: err}
		}
		if freq == 0 {
			return nil, &ParseError{Line: lineNum, Token: fields[1], Err: ptrie.ErrZeroFrequency}
		}
		entries = append(entries, Entry{Word: fields[0], Frequency: uint32(freq)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list at line %d: %w", lineNum+1, err)
	}
	return entries, nil
}

// Build inserts entries into a fresh builder tree. The first rejected entry
// aborts the build.
func Build(entries []Entry) (*ptrie.Node, error) {
	root := ptrie.New()
	for _, e := range entries {
		if err := root.Insert([]byte(e.Word), e.Frequency); err != nil {
			return nil, err
		}
	}
	return root, nil
}
