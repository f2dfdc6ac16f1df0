package tree

import (
	"cmp"
	"errors"
	"slices"
	"strconv"
)

// SupportProperty is where Standardize moves numeric internal-node names.
const SupportProperty = "support"

// Compare orders two nodes. It is used by Sort.
type Compare func(a, b *Node) int

// ByLeafCount orders nodes by their number of leaves, then by name.
func ByLeafCount(a, b *Node) int {
	return cmp.Or(cmp.Compare(leafCount(a), leafCount(b)), cmp.Compare(a.Name, b.Name))
}

// ByName orders nodes by name.
func ByName(a, b *Node) int { return cmp.Compare(a.Name, b.Name) }

func leafCount(n *Node) int {
	count := 0
	for range n.Leaves() {
		count++
	}
	return count
}

// Sort reorders the children of every node of the tree in place.
// A nil compare sorts by leaf count.
func Sort(root *Node, compare Compare, reverse bool) {
	if compare == nil {
		compare = ByLeafCount
	}
	for n := range root.Walk() {
		slices.SortStableFunc(n.Children, func(a, b *Node) int {
			if reverse {
				return compare(b, a)
			}
			return compare(a, b)
		})
	}
}

// ErrRemoveRoot is returned when Remove is asked to remove the root.
var ErrRemoveRoot = errors.New("cannot remove the root")

// Remove prunes the node at p from the tree and returns it.
func Remove(root *Node, p Path) (*Node, error) {
	if len(p) == 0 {
		return nil, ErrRemoveRoot
	}
	parent, err := root.At(p[:len(p)-1])
	if err != nil {
		return nil, err
	}
	i := p[len(p)-1]
	if i >= len(parent.Children) {
		return nil, errors.New("path " + p.String() + ": no such node")
	}
	removed := parent.Children[i]
	parent.Children = slices.Delete(parent.Children, i, i+1)
	return removed, nil
}

// Move shifts the node at p among its siblings by shift positions,
// wrapping around.
func Move(root *Node, p Path, shift int) error {
	if len(p) == 0 {
		return errors.New("cannot move the root")
	}
	parent, err := root.At(p[:len(p)-1])
	if err != nil {
		return err
	}
	n := len(parent.Children)
	from := p[len(p)-1]
	if from >= n {
		return errors.New("path " + p.String() + ": no such node")
	}
	to := ((from+shift)%n + n) % n
	parent.Children[from], parent.Children[to] = parent.Children[to], parent.Children[from]
	return nil
}

// Standardize fixes trees that do not follow strict Newick conventions:
// a root length of -1 becomes 0, and numeric names of internal nodes are
// taken to be support values and moved to the support property.
func Standardize(root *Node) {
	if root.HasLength && root.Length == -1 {
		root.Length = 0
	}
	for n := range root.Walk() {
		if n.IsLeaf() || n.Name == "" {
			continue
		}
		if _, err := strconv.ParseFloat(n.Name, 64); err == nil {
			n.Properties.Set(SupportProperty, n.Name)
			n.Name = ""
		}
	}
}
