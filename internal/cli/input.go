package cli

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/wordfuzz/pkg/fuzzy"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

var wordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

// InputHandler is an interactive prompt for trying queries by hand. Each
// line is a word, optionally followed by a max distance.
type InputHandler struct {
	searcher        *fuzzy.Searcher
	defaultDistance int
	maxWordLen      int
	requestCount    int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(s *fuzzy.Searcher, defaultDistance, maxWordLen int) *InputHandler {
	return &InputHandler{
		searcher:        s,
		defaultDistance: defaultDistance,
		maxWordLen:      maxWordLen,
	}
}

// Start begins the interface loop.
// It prompts for input, reads a line from r and hands it to handleInput.
// The loop ends at EOF or on a read error.
func (h *InputHandler) Start(ctx context.Context, r io.Reader) error {
	log.Print("wordfuzz interactive")
	reader := bufio.NewReader(r)
	log.Print("type a word and optional distance, then Enter (Ctrl+C to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		h.handleInput(ctx, line)
	}
}

// handleInput runs one query and prints the ranked matches to the log.
func (h *InputHandler) handleInput(ctx context.Context, line string) {
	h.requestCount++
	fields := strings.Fields(line)
	word := fields[0]
	distance := h.defaultDistance
	if len(fields) > 1 {
		d, err := strconv.Atoi(fields[1])
		if err != nil || d < 0 {
			log.Errorf("Invalid distance: %s", fields[1])
			return
		}
		distance = d
	}
	if h.maxWordLen > 0 && len(word) > h.maxWordLen {
		log.Errorf("Word too long: %s", word)
		return
	}

	start := time.Now()
	words, err := h.searcher.Search(ctx, []byte(word), distance)
	if err != nil {
		log.Errorf("Query %q failed: %v", word, err)
		return
	}
	log.Debugf("Took [ %v ] for '%s'", time.Since(start), word)

	if len(words) == 0 {
		log.Warnf("No words within %d of '%s'", distance, word)
		return
	}
	log.Printf("Found %d words within %d of '%s':", len(words), distance, word)
	for i, w := range words {
		log.Printf("%2d. %-40s (freq: %8s, dist: %d)", i+1, wordStyle.Render(w.Text), humanize.Comma(int64(w.Frequency)), w.Distance)
	}
}
