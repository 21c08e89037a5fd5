package compact

import (
	"github.com/bastiangx/wordfuzz/pkg/ptrie"
)

// Rebuild decodes the whole buffer into an owned trie. It is the inverse of
// Encode and exists for diagnostics and round-trip checks; searches never
// need it.
func (t *Trie) Rebuild() (*ptrie.Node, error) {
	if t.Empty() {
		return ptrie.New(), nil
	}
	return t.rebuild(0)
}

func (t *Trie) rebuild(offset uint32) (*ptrie.Node, error) {
	v, err := t.Navigate(offset)
	if err != nil {
		return nil, err
	}
	n := ptrie.NewNode(v.Key, v.Frequency)

	for i := 0; i < int(v.ChildCount); i++ {
		off, err := v.ChildOffset(i)
		if err != nil {
			return nil, err
		}
		c, err := t.rebuild(off)
		if err != nil {
			return nil, err
		}
		if len(c.Key) == 0 {
			return nil, formatErr(uint64(off), "child record with empty key")
		}
		if _, dup := n.Child(c.Key[0]); dup {
			return nil, formatErr(uint64(off), "sibling with duplicate first byte %q", c.Key[0])
		}
		n.AddChild(c)
	}
	return n, nil
}
