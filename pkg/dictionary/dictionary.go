/*
Package dictionary compiles word lists into compact tries and opens compiled
files for searching.
*/
package dictionary

import (
	"fmt"
	"os"

	"github.com/bastiangx/wordfuzz/internal/mmap"
	"github.com/bastiangx/wordfuzz/internal/utils"
	"github.com/bastiangx/wordfuzz/pkg/compact"
	"github.com/bastiangx/wordfuzz/pkg/fuzzy"
	"github.com/charmbracelet/log"
)

// OpenOptions controls Open.
type OpenOptions struct {
	// VerifyChecksum checks the file against its manifest when one exists.
	VerifyChecksum bool
	// RequireManifest fails the open when no manifest is present.
	RequireManifest bool
}

// Dictionary is a compiled dictionary mapped into memory. It is read-only
// and safe for concurrent searches until Close.
type Dictionary struct {
	path     string
	region   *mmap.Region
	trie     *compact.Trie
	manifest *Manifest
}

// Open maps the compiled dictionary at path.
func Open(path string, opts OpenOptions) (*Dictionary, error) {
	if err := ValidateFileFormat(path, FormatCompiled); err != nil {
		return nil, err
	}

	var manifest *Manifest
	manifestPath := ManifestPath(path)
	if utils.FileExists(manifestPath) {
		m, err := ReadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		manifest = m
	} else if opts.RequireManifest {
		return nil, fmt.Errorf("open %s: manifest %s: %w", path, manifestPath, os.ErrNotExist)
	} else {
		log.Debugf("No manifest for %s", path)
	}

	region, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	d := &Dictionary{
		path:     path,
		region:   region,
		trie:     compact.New(region.Bytes()),
		manifest: manifest,
	}

	if manifest != nil && opts.VerifyChecksum {
		if err := manifest.Check(region.Bytes()); err != nil {
			region.Close()
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
	}
	if !d.trie.Empty() {
		if _, err := d.trie.Root(); err != nil {
			region.Close()
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
	}

	log.Debugf("Opened dictionary %s (%d bytes)", path, region.Len())
	return d, nil
}

// Trie returns the compiled trie backed by the mapping.
func (d *Dictionary) Trie() *compact.Trie {
	return d.trie
}

// Manifest returns the manifest read at open, or nil.
func (d *Dictionary) Manifest() *Manifest {
	return d.manifest
}

// Path returns the file the dictionary was opened from.
func (d *Dictionary) Path() string {
	return d.path
}

// Searcher returns a fuzzy searcher over the dictionary.
func (d *Dictionary) Searcher(maxDistance, limit int) *fuzzy.Searcher {
	return fuzzy.NewSearcher(d.trie, maxDistance, limit)
}

// Close unmaps the file. The trie must not be used afterwards.
func (d *Dictionary) Close() error {
	return d.region.Close()
}
