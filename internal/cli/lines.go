package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/bastiangx/wordfuzz/internal/logger"
	"github.com/bastiangx/wordfuzz/pkg/compact"
	"github.com/bastiangx/wordfuzz/pkg/fuzzy"
	"github.com/charmbracelet/log"
	"github.com/oarkflow/json"
)

// maxQueryLine bounds a request line. Longer lines are discarded unread.
const maxQueryLine = 1 << 20

// LineHandler answers one JSON array per valid request line.
type LineHandler struct {
	searcher *fuzzy.Searcher
	logger   *log.Logger
	served   int
	skipped  int
}

// NewLineHandler returns a handler querying s.
func NewLineHandler(s *fuzzy.Searcher) *LineHandler {
	return &LineHandler{
		searcher: s,
		logger:   logger.New("lines"),
	}
}

// Run reads request lines from r until EOF or ctx is done. Malformed lines
// are skipped; a corrupt dictionary region fails only the line that hit it.
func (h *LineHandler) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	in := bufio.NewReader(r)
	out := bufio.NewWriter(w)

	for {
		line, tooLong, err := readLine(in, maxQueryLine)
		if err != nil {
			if errors.Is(err, io.EOF) {
				h.logger.Debugf("Input closed: %d served, %d skipped", h.served, h.skipped)
				return nil
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if tooLong {
			h.skipped++
			h.logger.Debugf("Skipping line longer than %d bytes", maxQueryLine)
			continue
		}
		if err := h.handleLine(ctx, string(line), out); err != nil {
			return err
		}
	}
}

// readLine returns the next line without its terminator. A line over max
// bytes is consumed in full and reported as tooLong instead.
func readLine(br *bufio.Reader, max int) (line []byte, tooLong bool, err error) {
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			return nil, false, err
		}
		if !tooLong {
			if len(line)+len(chunk) > max {
				tooLong, line = true, nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !isPrefix {
			return line, tooLong, nil
		}
	}
}

// handleLine returns an error only when the loop must stop.
func (h *LineHandler) handleLine(ctx context.Context, line string, out *bufio.Writer) error {
	q, err := ParseQueryLine(line)
	if err != nil {
		h.skipped++
		h.logger.Debugf("Skipping line %q: %v", line, err)
		return nil
	}

	start := time.Now()
	words, err := h.searcher.Search(ctx, q.Word, q.MaxDistance)
	switch {
	case err == nil:
	case errors.Is(err, compact.ErrFormat):
		h.skipped++
		h.logger.Errorf("Query %q: %v", q.Word, err)
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		h.skipped++
		h.logger.Warnf("Query %q: %v", q.Word, err)
		return nil
	}
	h.logger.Debugf("Took [ %v ] for %q within %d: %d matches", time.Since(start), q.Word, q.MaxDistance, len(words))

	data, err := json.Marshal(NewResults(words))
	if err != nil {
		return err
	}
	if _, err := out.Write(append(data, '\n')); err != nil {
		return err
	}
	h.served++
	return out.Flush()
}
