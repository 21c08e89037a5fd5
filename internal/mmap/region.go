// Package mmap maps compiled dictionaries into memory read-only.
package mmap

import (
	"errors"
	"fmt"
	"os"
)

var ErrClosed = errors.New("region already closed")

// Region is a read-only view of a whole file.
type Region struct {
	path   string
	data   []byte
	unmap  func() error
	closed bool
}

// Open maps the file at path. An empty file yields an empty region.
func Open(path string) (*Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open region %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat region %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("open region %s: not a regular file", path)
	}

	size := info.Size()
	if size == 0 {
		return &Region{path: path, unmap: func() error { return nil }}, nil
	}
	if int64(int(size)) != size {
		return nil, fmt.Errorf("open region %s: %d bytes exceeds address space", path, size)
	}

	data, unmap, err := mapFile(f, int(size))
	if err != nil {
		return nil, fmt.Errorf("map region %s: %w", path, err)
	}
	return &Region{path: path, data: data, unmap: unmap}, nil
}

// Bytes returns the mapped contents. The slice must not be written to and
// must not be used after Close.
func (r *Region) Bytes() []byte {
	return r.data
}

// Len returns the file size.
func (r *Region) Len() int {
	return len(r.data)
}

// Path returns the mapped file's path.
func (r *Region) Path() string {
	return r.path
}

// Close releases the mapping.
func (r *Region) Close() error {
	if r.closed {
		return ErrClosed
	}
	r.closed = true
	r.data = nil
	return r.unmap()
}
