package compact

import "bytes"

// Trie is a read-only view over an encoded buffer. It never copies or
// mutates the buffer, so one Trie may be shared by any number of goroutines.
type Trie struct {
	data []byte
}

// New wraps data. The caller keeps data alive and unmodified for as long as
// the Trie or any NodeView obtained from it is in use.
func New(data []byte) *Trie {
	return &Trie{data: data}
}

// Len returns the size of the underlying buffer.
func (t *Trie) Len() int {
	return len(t.data)
}

// Empty reports whether the buffer holds no root record.
func (t *Trie) Empty() bool {
	return len(t.data) == 0
}

// NodeView is a decoded record header. Key aliases the underlying buffer.
type NodeView struct {
	Offset     uint32
	ChildCount uint32
	Frequency  uint32
	Key        []byte

	offsets []byte
}

// IsTerminal reports whether the record ends a word.
func (v NodeView) IsTerminal() bool {
	return v.Frequency != 0
}

// ChildOffset returns the absolute offset of the i-th child.
func (v NodeView) ChildOffset(i int) (uint32, error) {
	if i < 0 || uint32(i) >= v.ChildCount {
		return 0, formatErr(uint64(v.Offset), "child index %d out of range [0,%d)", i, v.ChildCount)
	}
	return order.Uint32(v.offsets[i*FieldWidth:]), nil
}

// Root returns the record at offset 0.
func (t *Trie) Root() (NodeView, error) {
	return t.Navigate(0)
}

// Navigate decodes the record starting at offset. Every field is checked
// against the buffer length, and every child offset must point past this
// record and inside the buffer.
func (t *Trie) Navigate(offset uint32) (NodeView, error) {
	size := uint64(len(t.data))
	off := uint64(offset)

	if off+HeaderSize > size {
		return NodeView{}, formatErr(off, "header runs past end of %d-byte region", size)
	}
	hdr := t.data[off : off+HeaderSize]
	v := NodeView{
		Offset:     offset,
		ChildCount: order.Uint32(hdr[0:]),
		Frequency:  order.Uint32(hdr[2*FieldWidth:]),
	}
	keyLen := uint64(order.Uint32(hdr[FieldWidth:]))

	keyStart := off + HeaderSize
	keyEnd := keyStart + keyLen
	if keyEnd > size {
		return NodeView{}, formatErr(off, "key of %d bytes runs past end of region", keyLen)
	}
	offEnd := keyEnd + uint64(v.ChildCount)*FieldWidth
	if offEnd > size {
		return NodeView{}, formatErr(off, "%d child offsets run past end of region", v.ChildCount)
	}

	v.Key = t.data[keyStart:keyEnd:keyEnd]
	v.offsets = t.data[keyEnd:offEnd:offEnd]

	for i := uint32(0); i < v.ChildCount; i++ {
		c := uint64(order.Uint32(v.offsets[i*FieldWidth:]))
		if c < offEnd || c >= size {
			return NodeView{}, formatErr(off, "child %d offset %d outside (%d,%d)", i, c, offEnd, size)
		}
	}
	return v, nil
}

// Lookup returns the frequency of word, following one child per key byte.
func (t *Trie) Lookup(word []byte) (uint32, bool, error) {
	if t.Empty() {
		return 0, false, nil
	}
	v, err := t.Root()
	if err != nil {
		return 0, false, err
	}
	for {
		if !bytes.HasPrefix(word, v.Key) {
			return 0, false, nil
		}
		word = word[len(v.Key):]
		if len(word) == 0 {
			return v.Frequency, v.IsTerminal(), nil
		}

		found := false
		for i := 0; i < int(v.ChildCount); i++ {
			off, err := v.ChildOffset(i)
			if err != nil {
				return 0, false, err
			}
			c, err := t.Navigate(off)
			if err != nil {
				return 0, false, err
			}
			if len(c.Key) > 0 && c.Key[0] == word[0] {
				v, found = c, true
				break
			}
		}
		if !found {
			return 0, false, nil
		}
	}
}

// Walk visits every terminal word in stored order. The word slice passed to
// fn is reused between calls.
func (t *Trie) Walk(fn func(word []byte, frequency uint32) error) error {
	if t.Empty() {
		return nil
	}

	type frame struct {
		offset uint32
		depth  int
	}
	stack := []frame{{offset: 0}}
	word := make([]byte, 0, 64)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		v, err := t.Navigate(f.offset)
		if err != nil {
			return err
		}
		word = append(word[:f.depth], v.Key...)
		if v.IsTerminal() {
			if err := fn(word, v.Frequency); err != nil {
				return err
			}
		}
		for i := int(v.ChildCount) - 1; i >= 0; i-- {
			off, _ := v.ChildOffset(i)
			stack = append(stack, frame{offset: off, depth: len(word)})
		}
	}
	return nil
}
