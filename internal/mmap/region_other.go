//go:build !unix

package mmap

import (
	"fmt"
	"os"

	"golang.org/x/exp/mmap"
)

// mapFile maps through x/exp/mmap, which only exposes ReadAt, so the
// contents are copied once into a heap slice.
func mapFile(f *os.File, size int) ([]byte, func() error, error) {
	r, err := mmap.Open(f.Name())
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()

	data := make([]byte, size)
	n, err := r.ReadAt(data, 0)
	if err != nil {
		return nil, nil, err
	}
	if n != size {
		return nil, nil, fmt.Errorf("short read: %d of %d bytes", n, size)
	}
	return data, func() error { return nil }, nil
}
