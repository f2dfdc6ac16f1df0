package tree

import "errors"

// ErrRootAtRoot is returned when RootAt is asked to root at the current root.
var ErrRootAtRoot = errors.New("node is already the root")

// RootAt reroots the tree on the branch above the node at p and returns
// the new root. A new unnamed node is inserted halfway along that branch
// and becomes the root. Branch lengths and support values travel with
// the edges they belong to. If the old root is left with a single child
// it is collapsed into that child.
func RootAt(root *Node, p Path) (*Node, error) {
	if len(p) == 0 {
		return nil, ErrRootAtRoot
	}
	parent, err := root.At(p[:len(p)-1])
	if err != nil {
		return nil, err
	}
	i := p[len(p)-1]
	if i >= len(parent.Children) {
		return nil, errors.New("path " + p.String() + ": no such node")
	}
	target := parent.Children[i]
	mid := &Node{Children: []*Node{target}}
	if target.HasLength && target.Length >= 0 {
		target.Length /= 2
		mid.Length, mid.HasLength = target.Length, true
	}
	parent.Children[i] = mid

	// Flip each edge along p so that parents become children.
	var oldRootParent *Node
	cur := root
	for _, idx := range p {
		next := cur.Children[idx]
		cur.Children = append(cur.Children[:idx:idx], cur.Children[idx+1:]...)
		cur.Length, cur.HasLength = next.Length, next.HasLength
		next.Length, next.HasLength = 0, false
		switchProperty(cur, next, SupportProperty)
		next.Children = append(next.Children, cur)
		if oldRootParent == nil {
			oldRootParent = next
		}
		cur = next
	}

	if len(root.Children) == 1 {
		child := root.Children[0]
		if root.HasLength && root.Length > 0 {
			child.Length += root.Length
			child.HasLength = true
		}
		last := len(oldRootParent.Children) - 1
		oldRootParent.Children[last] = child
	}
	return mid, nil
}

// Unroot turns a bifurcating root into a multifurcation by merging one
// internal child into the root. Its branch length is added to the other
// child, which also inherits its support when it has none. Unroot reports
// whether the tree changed.
func Unroot(root *Node) bool {
	if len(root.Children) != 2 {
		return false
	}
	i := 0
	if root.Children[0].IsLeaf() {
		i = 1
	}
	merged, other := root.Children[i], root.Children[1-i]
	if merged.IsLeaf() {
		return false
	}
	if merged.HasLength {
		other.Length += merged.Length
		other.HasLength = true
	}
	if v, ok := merged.Properties.Get(SupportProperty); ok {
		if _, has := other.Properties.Get(SupportProperty); !has {
			other.Properties.Set(SupportProperty, v)
		}
	}
	children := make([]*Node, 0, len(merged.Children)+1)
	if i == 0 {
		children = append(append(children, merged.Children...), other)
	} else {
		children = append(append(children, other), merged.Children...)
	}
	root.Children = children
	return true
}

// switchProperty exchanges the value of key between a and b.
func switchProperty(a, b *Node, key string) {
	va, okA := a.Properties.Get(key)
	vb, okB := b.Properties.Get(key)
	a.Properties.Delete(key)
	b.Properties.Delete(key)
	if okB {
		a.Properties.Set(key, vb)
	}
	if okA {
		b.Properties.Set(key, va)
	}
}
