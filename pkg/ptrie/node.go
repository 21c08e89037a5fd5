// Package ptrie is the mutable patricia trie used while compiling a dictionary.
//
// Each node stores a multi-byte key segment; concatenating the keys on a
// root-to-node path spells one dictionary entry. A node with a nonzero
// Frequency terminates a word. Children are dispatched on the first byte of
// their key, so no two siblings ever share a first byte.
package ptrie

import (
	"bytes"
	"sort"
)

// Node is one segment of the trie. The zero value is an empty root.
type Node struct {
	Key       []byte
	Frequency uint32
	children  map[byte]*Node
}

// New returns an empty root node.
func New() *Node {
	return &Node{}
}

// NewNode returns a detached node holding a copy of key.
func NewNode(key []byte, frequency uint32) *Node {
	return &Node{Key: bytes.Clone(key), Frequency: frequency}
}

// IsTerminal reports whether the path to n spells a dictionary word.
func (n *Node) IsTerminal() bool {
	return n.Frequency != 0
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns the child whose key starts with b.
func (n *Node) Child(b byte) (*Node, bool) {
	c, ok := n.children[b]
	return c, ok
}

// Children returns the children in ascending first-byte order.
func (n *Node) Children() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	firsts := make([]int, 0, len(n.children))
	for b := range n.children {
		firsts = append(firsts, int(b))
	}
	sort.Ints(firsts)

	out := make([]*Node, len(firsts))
	for i, b := range firsts {
		out[i] = n.children[byte(b)]
	}
	return out
}

// AddChild attaches c under n. It panics if c has an empty key or if n
// already has a child starting with the same byte.
func (n *Node) AddChild(c *Node) {
	if len(c.Key) == 0 {
		panic("ptrie: child with empty key")
	}
	if n.children == nil {
		n.children = make(map[byte]*Node)
	}
	if _, dup := n.children[c.Key[0]]; dup {
		panic("ptrie: duplicate first byte among siblings")
	}
	n.children[c.Key[0]] = c
}

// Lookup returns the frequency stored for word.
func (n *Node) Lookup(word []byte) (uint32, bool) {
	cur := n
	for {
		if !bytes.HasPrefix(word, cur.Key) {
			return 0, false
		}
		word = word[len(cur.Key):]
		if len(word) == 0 {
			return cur.Frequency, cur.IsTerminal()
		}
		next, ok := cur.children[word[0]]
		if !ok {
			return 0, false
		}
		cur = next
	}
}

// WalkFn is called for every terminal word. Returning a non-nil error stops
// the walk and is returned by Walk.
type WalkFn func(word []byte, frequency uint32) error

// Walk visits every word below n in ascending byte order. The word slice is
// reused between calls.
func (n *Node) Walk(fn WalkFn) error {
	return n.walk(make([]byte, 0, 64), fn)
}

func (n *Node) walk(prefix []byte, fn WalkFn) error {
	prefix = append(prefix, n.Key...)
	if n.IsTerminal() {
		if err := fn(prefix, n.Frequency); err != nil {
			return err
		}
	}
	for _, c := range n.Children() {
		if err := c.walk(prefix, fn); err != nil {
			return err
		}
	}
	return nil
}

// Stats summarises the shape of a trie.
type Stats struct {
	Nodes    int
	Words    int
	KeyBytes int
	MaxDepth int // longest word, in bytes
}

// Stats computes node, word and depth counts for the trie rooted at n.
func (n *Node) Stats() Stats {
	var s Stats
	n.stats(0, &s)
	return s
}

func (n *Node) stats(depth int, s *Stats) {
	depth += len(n.Key)
	s.Nodes++
	s.KeyBytes += len(n.Key)
	if n.IsTerminal() {
		s.Words++
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
	}
	for _, c := range n.children {
		c.stats(depth, s)
	}
}

// Validate checks the sibling invariant over the whole trie: every child
// has a non-empty key and is filed under its own first byte.
func (n *Node) Validate() error {
	for b, c := range n.children {
		if len(c.Key) == 0 {
			return &InvariantError{Path: n.Key, Reason: "child with empty key"}
		}
		if c.Key[0] != b {
			return &InvariantError{Path: c.Key, Reason: "child filed under the wrong byte"}
		}
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}
