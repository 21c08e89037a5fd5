package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/wordfuzz/internal/logger"
	"github.com/bastiangx/wordfuzz/pkg/compact"
	"github.com/bastiangx/wordfuzz/pkg/fuzzy"
	"github.com/charmbracelet/log"
	"github.com/oarkflow/xid"
	"github.com/vmihailenco/msgpack/v5"
)

// Options tunes request handling.
type Options struct {
	// DefaultDistance is used when a request omits "d".
	DefaultDistance int
	// MaxWordLen rejects longer query words. 0 disables the check.
	MaxWordLen int
}

// Server handles the IPC for fuzzy lookups
type Server struct {
	searcher     *fuzzy.Searcher
	opts         Options
	decoder      *msgpack.Decoder
	encoder      *msgpack.Encoder
	logger       *log.Logger
	requestCount int
}

// NewServer creates a lookup server reading requests from r and writing
// responses to w.
func NewServer(s *fuzzy.Searcher, r io.Reader, w io.Writer, opts Options) *Server {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	return &Server{
		searcher: s,
		opts:     opts,
		decoder:  msgpack.NewDecoder(r),
		encoder:  enc,
		logger:   logger.New("ipc"),
	}
}

// Start serves requests until the input ends or ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Debug("Starting Server.")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var raw msgpack.RawMessage
		if err := s.decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			s.logger.Errorf("Reading request: %v", err)
			return err
		}

		if err := s.handleRequest(ctx, raw); err != nil {
			return err
		}
	}
}

// handleRequest answers one raw request. It returns an error only when the
// response could not be written.
func (s *Server) handleRequest(ctx context.Context, raw msgpack.RawMessage) error {
	s.requestCount++

	var req LookupRequest
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		s.logger.Errorf("Unmarshaling request: %v", err)
		return s.sendError("", "invalid request", CodeBadRequest)
	}
	if req.ID == "" {
		req.ID = xid.New().String()
	}

	if req.Word == "" {
		s.logger.Debug("Word is empty in request", "id", req.ID)
		return s.sendError(req.ID, "missing 'w' parameter", CodeBadRequest)
	}
	if s.opts.MaxWordLen > 0 && len(req.Word) > s.opts.MaxWordLen {
		s.logger.Debug("Word is too long in request", "id", req.ID)
		return s.sendError(req.ID, fmt.Sprintf("word exceeds maximum length of %d bytes", s.opts.MaxWordLen), CodeBadRequest)
	}

	distance := s.opts.DefaultDistance
	if req.MaxDistance != nil {
		distance = *req.MaxDistance
	}
	if distance < 0 {
		return s.sendError(req.ID, "'d' must be >= 0", CodeBadRequest)
	}

	start := time.Now()
	words, err := s.searcher.Search(ctx, []byte(req.Word), distance)
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, compact.ErrFormat) {
			s.logger.Errorf("Dictionary format error on %q: %v", req.Word, err)
		} else {
			s.logger.Warnf("Lookup %q: %v", req.Word, err)
		}
		return s.sendError(req.ID, "lookup failed", CodeInternal)
	}
	if req.Limit > 0 && len(words) > req.Limit {
		words = words[:req.Limit]
	}

	results := make([]LookupMatch, len(words))
	for i, w := range words {
		results[i] = LookupMatch{Word: w.Text, Frequency: w.Frequency, Distance: w.Distance}
	}
	s.logger.Debugf("Took [ %v ] for '%s' within %d", elapsed, req.Word, distance)

	return s.sendResponse(LookupResponse{
		ID:        req.ID,
		Results:   results,
		Count:     len(results),
		TimeTaken: elapsed.Microseconds(),
	})
}

// sendResponse encodes the response onto the output stream.
func (s *Server) sendResponse(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return err
	}
	return nil
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) error {
	return s.sendResponse(LookupError{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
