package newick

import (
	"strconv"
	"strings"

	"github.com/matzehuels/smartview/pkg/tree"
)

// Write returns the Newick representation of the tree rooted at n,
// terminated by ";".
func Write(n *tree.Node) string {
	var b strings.Builder
	write(&b, n)
	b.WriteByte(';')
	return b.String()
}

func write(b *strings.Builder, n *tree.Node) {
	if len(n.Children) > 0 {
		b.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				b.WriteByte(',')
			}
			write(b, c)
		}
		b.WriteByte(')')
	}
	b.WriteString(Content(n))
}

// Content returns the label of a single node: name, length and NHX block.
func Content(n *tree.Node) string {
	var b strings.Builder
	b.WriteString(n.Name)
	if n.HasLength {
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(n.Length, 'f', -1, 64))
	}
	if len(n.Properties) > 0 {
		b.WriteString(nhxOpening)
		for i, kv := range n.Properties {
			if i > 0 {
				b.WriteByte(':')
			}
			b.WriteString(kv.Key + "=" + kv.Value)
		}
		b.WriteByte(']')
	}
	return b.String()
}
