package draw

import (
	"math"

	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/tree"
)

// Metrics is the layout policy used to size nodes.
type Metrics struct {
	// LeafHeight is the minimum height of a node's children box, so every
	// leaf contributes this much height to the tree.
	LeafHeight float64

	// DefaultLength is the content width of nodes without a branch length.
	DefaultLength float64
}

// DefaultMetrics gives every leaf a height of 8 and nodes with no length a
// width of 1.
var DefaultMetrics = Metrics{LeafHeight: 8, DefaultLength: 1}

type nodeSizes struct {
	content  Size
	children Size
}

// Sizes is the size cache of a tree. It is written once by [StoreSizes]
// and only read afterwards, so a single Sizes can serve concurrent draws of
// the same (unmodified) tree.
type Sizes struct {
	metrics Metrics
	nodes   map[*tree.Node]nodeSizes
}

// StoreSizes computes the sizes of every node of the tree rooted at root
// with the default metrics.
func StoreSizes(root *tree.Node) *Sizes {
	return StoreSizesWith(root, DefaultMetrics)
}

// StoreSizesWith computes the sizes of every node of the tree with the
// given metrics. Children are sized before their parents.
func StoreSizesWith(root *tree.Node, m Metrics) *Sizes {
	s := &Sizes{metrics: m, nodes: make(map[*tree.Node]nodeSizes)}
	s.store(root)
	return s
}

func (s *Sizes) store(n *tree.Node) Size {
	var children Size
	for _, c := range n.Children {
		children = StackVerticalSize(children, s.store(c))
	}
	children.H = max(children.H, s.metrics.LeafHeight)

	content := Size{W: s.width(n), H: children.H}
	s.nodes[n] = nodeSizes{content: content, children: children}
	return StackHorizontalSize(content, children)
}

func (s *Sizes) width(n *tree.Node) float64 {
	if length, ok := n.BranchLength(); ok {
		return math.Abs(length)
	}
	return s.metrics.DefaultLength
}

// Metrics returns the policy the sizes were computed with.
func (s *Sizes) Metrics() Metrics { return s.metrics }

// Has reports whether n was sized.
func (s *Sizes) Has(n *tree.Node) bool {
	_, ok := s.nodes[n]
	return ok
}

// Len returns the number of sized nodes.
func (s *Sizes) Len() int { return len(s.nodes) }

// Content returns the size of the node's own content (its branch).
func (s *Sizes) Content(n *tree.Node) Size { return s.get(n).content }

// Children returns the size of the box holding all of n's children.
func (s *Sizes) Children(n *tree.Node) Size { return s.get(n).children }

// Node returns the size of n's content and children side by side.
func (s *Sizes) Node(n *tree.Node) Size {
	ns := s.get(n)
	return StackHorizontalSize(ns.content, ns.children)
}

// get panics for nodes missing from the cache: drawing a tree whose sizes
// were not stored (or are stale after an edit) is a programming error.
func (s *Sizes) get(n *tree.Node) nodeSizes {
	ns, ok := s.nodes[n]
	if !ok {
		panic(errors.New(errors.ErrCodeUnsizedNode, "node %q has no stored size (run StoreSizes after building or editing the tree)", n.Name))
	}
	return ns
}
