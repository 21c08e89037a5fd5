package dictionary

import (
	"errors"
	"fmt"

	"github.com/bastiangx/wordfuzz/internal/utils"
	"github.com/bastiangx/wordfuzz/pkg/compact"
	"github.com/cespare/xxhash/v2"
)

// ErrChecksumMismatch means a compiled file does not match its manifest.
var ErrChecksumMismatch = errors.New("dictionary checksum mismatch")

// Manifest describes a compiled dictionary. It is stored next to the
// compiled file as <file>.toml.
type Manifest struct {
	FormatVersion int    `toml:"format_version"`
	FieldWidth    int    `toml:"field_width"`
	Words         int    `toml:"words"`
	Nodes         int    `toml:"nodes"`
	Bytes         int    `toml:"bytes"`
	Checksum      string `toml:"checksum"`
}

// ManifestPath returns where the manifest for a compiled file lives.
func ManifestPath(dictPath string) string {
	return dictPath + ".toml"
}

// Checksum returns the xxh64 digest of a compiled region.
func Checksum(data []byte) string {
	return fmt.Sprintf("xxh64:%016x", xxhash.Sum64(data))
}

func newManifest(data []byte, words, nodes int) *Manifest {
	return &Manifest{
		FormatVersion: compact.FormatVersion,
		FieldWidth:    compact.FieldWidth,
		Words:         words,
		Nodes:         nodes,
		Bytes:         len(data),
		Checksum:      Checksum(data),
	}
}

// ReadManifest loads a manifest from path.
func ReadManifest(path string) (*Manifest, error) {
	var m Manifest
	if err := utils.LoadTOMLFile(path, &m); err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return &m, nil
}

// WriteManifest atomically stores m at path.
func WriteManifest(m *Manifest, path string) error {
	if err := utils.SaveTOMLFile(m, path); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}

// Check compares data against the manifest.
func (m *Manifest) Check(data []byte) error {
	if m.FormatVersion != compact.FormatVersion || m.FieldWidth != compact.FieldWidth {
		return fmt.Errorf("manifest format v%d width %d, want v%d width %d: %w",
			m.FormatVersion, m.FieldWidth, compact.FormatVersion, compact.FieldWidth, compact.ErrFormat)
	}
	if m.Bytes != len(data) {
		return fmt.Errorf("size %d, manifest says %d: %w", len(data), m.Bytes, ErrChecksumMismatch)
	}
	if sum := Checksum(data); sum != m.Checksum {
		return fmt.Errorf("checksum %s, manifest says %s: %w", sum, m.Checksum, ErrChecksumMismatch)
	}
	return nil
}
