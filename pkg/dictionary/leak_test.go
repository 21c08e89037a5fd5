//go:build test

package dictionary

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var testQueries = []string{
	"a", "ab", "abc", "abcd",
	"helo", "hlelo", "hello", "yellow",
	"wrold", "world", "prgoram", "program",
	"ther", "there", "computr", "computer",
}

// openGenerated compiles a random word list and maps it.
func openGenerated(t *testing.T, words int) *Dictionary {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	seen := make(map[string]bool, words)
	var sb strings.Builder
	for len(seen) < words {
		w := make([]byte, 2+rng.Intn(9))
		for i := range w {
			w[i] = byte('a' + rng.Intn(26))
		}
		if seen[string(w)] {
			continue
		}
		seen[string(w)] = true
		fmt.Fprintf(&sb, "%s %d\n", w, 1+rng.Intn(100000))
	}

	dir := t.TempDir()
	input := filepath.Join(dir, "words.txt")
	output := filepath.Join(dir, "words.bin")
	if err := os.WriteFile(input, []byte(sb.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Compile(input, output, CompileOptions{WriteManifest: true}); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	d, err := Open(output, OpenOptions{VerifyChecksum: true})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func memSnapshot() (uint64, int) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	return m.Alloc, runtime.NumGoroutine()
}

func TestMemoryLeakBasic(t *testing.T) {
	d := openGenerated(t, 50000)
	s := d.Searcher(0, 10)
	ctx := context.Background()

	for _, iterations := range []int{100, 500, 1000} {
		t.Run(fmt.Sprintf("iterations_%d", iterations), func(t *testing.T) {
			baseAlloc, baseGoroutines := memSnapshot()
			for i := 0; i < iterations; i++ {
				for _, q := range testQueries {
					if _, err := s.Search(ctx, []byte(q), 2); err != nil {
						t.Fatal(err)
					}
				}
			}
			finalAlloc, finalGoroutines := memSnapshot()

			memDelta := int64(finalAlloc) - int64(baseAlloc)
			totalOps := iterations * len(testQueries)
			memPerOp := float64(memDelta) / float64(totalOps)
			t.Logf("iterations=%d ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
				iterations, totalOps, memDelta, memPerOp, finalGoroutines-baseGoroutines)

			if memPerOp > 1000 {
				t.Errorf("excessive retained memory per operation: %.2f bytes", memPerOp)
			}
			if finalGoroutines-baseGoroutines > 2 {
				t.Errorf("goroutine leak detected: %d goroutines leaked", finalGoroutines-baseGoroutines)
			}
		})
	}
}

func TestMemoryLeakConcurrent(t *testing.T) {
	d := openGenerated(t, 50000)
	s := d.Searcher(0, 10)

	for _, workers := range []int{1, 2, 4, 8} {
		t.Run(fmt.Sprintf("workers_%d", workers), func(t *testing.T) {
			baseAlloc, baseGoroutines := memSnapshot()

			g, ctx := errgroup.WithContext(context.Background())
			for w := 0; w < workers; w++ {
				g.Go(func() error {
					for i := 0; i < 1000/workers; i++ {
						for _, q := range testQueries {
							if _, err := s.Search(ctx, []byte(q), 2); err != nil {
								return err
							}
						}
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				t.Fatal(err)
			}

			finalAlloc, finalGoroutines := memSnapshot()
			memDelta := int64(finalAlloc) - int64(baseAlloc)
			t.Logf("workers=%d mem_delta=%d bytes goroutine_delta=%d", workers, memDelta, finalGoroutines-baseGoroutines)

			if memDelta > 10*1024*1024 {
				t.Errorf("excessive retained memory: %d bytes", memDelta)
			}
			if finalGoroutines-baseGoroutines > 3 {
				t.Errorf("goroutine leak detected: %d goroutines leaked", finalGoroutines-baseGoroutines)
			}
		})
	}
}

func TestMemoryOpenCloseCycles(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping open/close cycles in short mode")
	}
	d := openGenerated(t, 10000)
	path := d.Path()

	baseAlloc, baseGoroutines := memSnapshot()
	for cycle := 0; cycle < 200; cycle++ {
		d, err := Open(path, OpenOptions{VerifyChecksum: true})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := d.Searcher(0, 0).Search(context.Background(), []byte("hello"), 1); err != nil {
			t.Fatal(err)
		}
		if err := d.Close(); err != nil {
			t.Fatal(err)
		}
	}
	finalAlloc, finalGoroutines := memSnapshot()

	memDelta := int64(finalAlloc) - int64(baseAlloc)
	t.Logf("cycles=200 mem_delta=%d bytes goroutine_delta=%d", memDelta, finalGoroutines-baseGoroutines)
	if memDelta > 1024*1024 {
		t.Errorf("open/close retained %d bytes", memDelta)
	}
	if finalGoroutines-baseGoroutines > 2 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", finalGoroutines-baseGoroutines)
	}
}
