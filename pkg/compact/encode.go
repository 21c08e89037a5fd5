package compact

import (
	"fmt"
	"io"
	"math"

	"github.com/bastiangx/wordfuzz/pkg/ptrie"
)

// Encode serializes the trie rooted at root.
func Encode(root *ptrie.Node) ([]byte, error) {
	st := root.Stats()
	size := st.Nodes*HeaderSize + st.KeyBytes + (st.Nodes-1)*FieldWidth
	if uint64(size) > math.MaxUint32 {
		return nil, fmt.Errorf("encode %d bytes: %w", size, ErrTooLarge)
	}

	buf := make([]byte, 0, size)
	return encodeNode(buf, root), nil
}

// EncodeTo writes the encoding of root to w and returns the bytes written.
func EncodeTo(w io.Writer, root *ptrie.Node) (int, error) {
	buf, err := Encode(root)
	if err != nil {
		return 0, err
	}
	return w.Write(buf)
}

// encodeNode appends n and its subtree to buf. Child offset slots are
// reserved after the key and patched once each child's start is known.
func encodeNode(buf []byte, n *ptrie.Node) []byte {
	children := n.Children()

	buf = order.AppendUint32(buf, uint32(len(children)))
	buf = order.AppendUint32(buf, uint32(len(n.Key)))
	buf = order.AppendUint32(buf, n.Frequency)
	buf = append(buf, n.Key...)

	slots := len(buf)
	for range children {
		buf = order.AppendUint32(buf, 0)
	}

	for i, c := range children {
		order.PutUint32(buf[slots+i*FieldWidth:], uint32(len(buf)))
		buf = encodeNode(buf, c)
	}
	return buf
}
