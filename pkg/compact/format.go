/*
Package compact encodes a ptrie into a flat byte buffer and reads it back in
place, without building an owned tree.

# Format

The buffer is a sequence of node records written in pre-order. The root
record starts at offset 0. Each record is:

	child_count  uint32
	key_length   uint32
	frequency    uint32   0 for a non-terminal node
	key          [key_length]byte
	offsets      [child_count]uint32

Every integer is FieldWidth bytes, little-endian. Offsets are absolute from
the start of the buffer and list children in ascending first-byte order.
Because records are written in pre-order, a child always starts after its
parent; the decoder relies on this to reject cyclic input.

An empty buffer is a valid, empty dictionary.
*/
package compact

import "encoding/binary"

const (
	// FieldWidth is the size in bytes of every header field and offset.
	FieldWidth = 4
	// HeaderSize is the size of the fixed part of a record.
	HeaderSize = 3 * FieldWidth
	// FormatVersion identifies this layout in dictionary manifests.
	FormatVersion = 1
)

var order = binary.LittleEndian
