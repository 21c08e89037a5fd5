package ptrie

// Insert adds word with the given frequency.
//
// Inserting an empty word, a zero frequency, or a word that is already
// terminal fails and leaves the trie unchanged.
func (n *Node) Insert(word []byte, frequency uint32) error {
	if len(word) == 0 {
		return &WordError{Err: ErrEmptyWord}
	}
	if frequency == 0 {
		return &WordError{Word: string(word), Err: ErrZeroFrequency}
	}

	cur := n
	rest := word
	for {
		k := commonPrefixLen(cur.Key, rest)

		switch {
		case k == len(cur.Key) && k == len(rest):
			if cur.IsTerminal() {
				return &WordError{Word: string(word), Err: ErrDuplicateWord}
			}
			cur.Frequency = frequency
			return nil

		case k == len(cur.Key):
			rest = rest[k:]
			next, ok := cur.children[rest[0]]
			if !ok {
				cur.AddChild(NewNode(rest, frequency))
				return nil
			}
			cur = next

		case k == len(rest):
			cur.splitAt(k)
			cur.Frequency = frequency
			return nil

		default:
			cur.splitAt(k)
			cur.AddChild(NewNode(rest[k:], frequency))
			return nil
		}
	}
}

// splitAt moves everything past the first k key bytes of n into a single new
// child, leaving n as a zero-frequency node keyed by the shared prefix.
func (n *Node) splitAt(k int) {
	tail := &Node{
		Key:       n.Key[k:len(n.Key):len(n.Key)],
		Frequency: n.Frequency,
		children:  n.children,
	}
	n.Key = n.Key[:k:k]
	n.Frequency = 0
	n.children = map[byte]*Node{tail.Key[0]: tail}
}

func commonPrefixLen(a, b []byte) int {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return i
}
