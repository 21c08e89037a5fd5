package dictionary

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/bastiangx/wordfuzz/internal/logger"
	"github.com/bastiangx/wordfuzz/internal/utils"
	"github.com/bastiangx/wordfuzz/pkg/compact"
	"github.com/dustin/go-humanize"
)

// CompileOptions controls Compile.
type CompileOptions struct {
	// Verify re-reads the encoded bytes and checks them against the input
	// before anything is written.
	Verify bool
	// WriteManifest stores a Manifest next to the output.
	WriteManifest bool
	// DotPath, if set, receives a Graphviz rendering of the builder tree.
	DotPath string
}

// CompileResult summarizes a finished compile.
type CompileResult struct {
	Output   string
	Words    int
	Nodes    int
	MaxDepth int
	Bytes    int
	Checksum string
	Duration time.Duration
}

// String renders the result for logs.
func (r *CompileResult) String() string {
	return fmt.Sprintf("%s words, %s nodes, %s (%s) in %s",
		humanize.Comma(int64(r.Words)),
		humanize.Comma(int64(r.Nodes)),
		humanize.Bytes(uint64(r.Bytes)),
		r.Checksum,
		r.Duration.Round(time.Millisecond))
}

// Compile turns the word list at input into a compiled dictionary at output.
// Either the whole file is written or nothing is: a parse, build, encode or
// verify failure leaves output untouched.
func Compile(input, output string, opts CompileOptions) (*CompileResult, error) {
	lg := logger.New("compile")
	start := time.Now()

	if err := ValidateFileFormat(input, FormatWordList); err != nil {
		return nil, err
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	entries, err := ParseWordList(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", input, err)
	}
	lg.Debugf("Parsed %s entries from %s", humanize.Comma(int64(len(entries))), input)

	root, err := Build(entries)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", input, err)
	}
	stats := root.Stats()

	data, err := compact.Encode(root)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", input, err)
	}

	if opts.Verify {
		if err := Verify(compact.New(data), entries); err != nil {
			return nil, fmt.Errorf("verify %s: %w", input, err)
		}
		lg.Debug("Verified compiled bytes against input")
	}

	// The graph is rendered up front but written only once the output is in place.
	var dot bytes.Buffer
	if opts.DotPath != "" {
		if err := root.WriteDot(&dot); err != nil {
			return nil, fmt.Errorf("render dot: %w", err)
		}
	}

	if err := utils.AtomicWriteFile(output, data); err != nil {
		return nil, err
	}

	res := &CompileResult{
		Output:   output,
		Words:    stats.Words,
		Nodes:    stats.Nodes,
		MaxDepth: stats.MaxDepth,
		Bytes:    len(data),
		Checksum: Checksum(data),
	}

	manifestPath := ManifestPath(output)
	if opts.WriteManifest {
		if err := WriteManifest(newManifest(data, stats.Words, stats.Nodes), manifestPath); err != nil {
			return nil, err
		}
	} else if utils.FileExists(manifestPath) {
		// A stale manifest would make the new file fail its checksum on open.
		if err := os.Remove(manifestPath); err != nil {
			return nil, fmt.Errorf("remove stale manifest: %w", err)
		}
	}

	if opts.DotPath != "" {
		if err := utils.AtomicWriteFile(opts.DotPath, dot.Bytes()); err != nil {
			return nil, err
		}
		lg.Debugf("Wrote graph to %s", opts.DotPath)
	}

	res.Duration = time.Since(start)
	lg.Infof("Compiled %s: %s", output, res)
	return res, nil
}
