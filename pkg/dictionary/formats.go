package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bastiangx/wordfuzz/pkg/compact"
	"github.com/charmbracelet/log"
)

// FileFormat represents the dictionary file kinds the tools handle
type FileFormat int

const (
	FormatUnknown  FileFormat = iota
	FormatCompiled            // compact trie
	FormatWordList            // "<word> <frequency>" text
	FormatManifest            // TOML manifest of a compiled file
)

// FormatInfo contains metadata about a dictionary file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatCompiled: {
		Format:      FormatCompiled,
		Description: "Compiled Trie Dictionary",
		Extensions:  []string{".bin"},
		MinSize:     0, // empty file is an empty dictionary
	},
	FormatWordList: {
		Format:      FormatWordList,
		Description: "Word Frequency List",
		Extensions:  []string{".txt"},
		MinSize:     0,
	},
	FormatManifest: {
		Format:      FormatManifest,
		Description: "Dictionary Manifest",
		Extensions:  []string{".toml"},
		MinSize:     1,
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// ValidateFileFormat checks that a file can be read as the expected format.
// Extensions are only consulted by DetectFileFormat.
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if !fileInfo.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", filename)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}
	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	switch expectedFormat {
	case FormatCompiled:
		return validateCompiledFormat(filename, fileInfo.Size())
	case FormatWordList:
		return validateWordListFormat(filename)
	}
	return nil
}

// validateCompiledFormat rejects files too short to hold a root record
func validateCompiledFormat(filename string, size int64) error {
	if size > 0 && size < compact.HeaderSize {
		return fmt.Errorf("file %s is %d bytes, shorter than a node header: %w", filename, size, compact.ErrFormat)
	}
	log.Debugf("Compiled file %s validated: %d bytes", filename, size)
	return nil
}

// validateWordListFormat only checks the file can be opened. Words are
// opaque bytes, so content is left to ParseWordList.
func validateWordListFormat(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	file.Close()
	log.Debugf("Word list %s validated", filename)
	return nil
}

// DetectFileFormat guesses the format of a file from its extension and
// validates it.
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range []FileFormat{FormatCompiled, FormatWordList, FormatManifest} {
		for _, e := range supportedFormats[f].Extensions {
			if e == ext {
				if err := ValidateFileFormat(filename, f); err != nil {
					return FormatUnknown, err
				}
				return f, nil
			}
		}
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}
