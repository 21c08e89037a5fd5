package ptrie

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteDot writes the trie as a Graphviz digraph. Terminal nodes are drawn
// with a double border and labelled with their frequency.
func (n *Node) WriteDot(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph ptrie {")
	fmt.Fprintln(bw, "\tnode [shape=box, fontname=\"monospace\"];")

	next := 0
	var emit func(node *Node) int
	emit = func(node *Node) int {
		id := next
		next++

		label := strconv.Quote(string(node.Key))
		label = label[1 : len(label)-1]
		if node.IsTerminal() {
			fmt.Fprintf(bw, "\tn%d [label=\"%s\\n%d\", peripheries=2];\n", id, label, node.Frequency)
		} else {
			fmt.Fprintf(bw, "\tn%d [label=\"%s\"];\n", id, label)
		}
		for _, c := range node.Children() {
			cid := emit(c)
			fmt.Fprintf(bw, "\tn%d -> n%d;\n", id, cid)
		}
		return id
	}
	emit(n)

	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
