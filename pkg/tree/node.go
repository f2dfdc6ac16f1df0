package tree

import (
	"iter"
	"strings"
)

// Node is a node of a tree together with the subtree hanging from it.
type Node struct {
	Name       string
	Length     float64 // branch length to the parent, meaningful only if HasLength
	HasLength  bool
	Properties Properties
	Children   []*Node
}

// New returns a leaf with the given name and no branch length.
func New(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

// WithLength sets the branch length and returns n, for building trees in code.
func (n *Node) WithLength(length float64) *Node {
	n.Length, n.HasLength = length, true
	return n
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// BranchLength returns the length and whether the node has one.
func (n *Node) BranchLength() (float64, bool) { return n.Length, n.HasLength }

// Walk yields every node of the subtree rooted at n in pre-order.
func (n *Node) Walk() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(yield)
	}
}

func (n *Node) walk(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.walk(yield) {
			return false
		}
	}
	return true
}

// Leaves yields the leaves of the subtree rooted at n, top to bottom.
func (n *Node) Leaves() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for node := range n.Walk() {
			if node.IsLeaf() && !yield(node) {
				return
			}
		}
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	for range n.Walk() {
		count++
	}
	return count
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	c := &Node{
		Name:       n.Name,
		Length:     n.Length,
		HasLength:  n.HasLength,
		Properties: n.Properties.Clone(),
	}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// String renders the subtree as indented ASCII branches, one node per line.
func (n *Node) String() string {
	var b strings.Builder
	n.format(&b, nil)
	return strings.TrimSuffix(b.String(), "\n")
}

func (n *Node) format(b *strings.Builder, areLast []bool) {
	b.WriteString(branchesPrefix(areLast))
	if n.Name != "" {
		b.WriteString(n.Name)
	} else {
		b.WriteString("<empty>")
	}
	b.WriteByte('\n')
	for i, c := range n.Children {
		c.format(b, append(areLast[:len(areLast):len(areLast)], i == len(n.Children)-1))
	}
}

// branchesPrefix draws the open branches for a node at the given depth.
// areLast tells, for every level, whether the node there is the last child.
func branchesPrefix(areLast []bool) string {
	if len(areLast) == 0 {
		return ""
	}
	var b strings.Builder
	for _, last := range areLast[:len(areLast)-1] {
		if last {
			b.WriteString("   ")
		} else {
			b.WriteString("|  ")
		}
	}
	if areLast[len(areLast)-1] {
		b.WriteString("`- ")
	} else {
		b.WriteString("|- ")
	}
	return b.String()
}
