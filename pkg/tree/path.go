package tree

import (
	"fmt"
	"strconv"
	"strings"
)

// Path addresses a node by the child indices followed from the root.
// The empty path is the root itself.
type Path []int

// ParsePath reads a path written as comma-separated indices ("0,1,0").
// The empty string is the root.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Path{}, nil
	}
	fields := strings.Split(s, ",")
	p := make(Path, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid path element %q", f)
		}
		p[i] = v
	}
	return p, nil
}

// String formats the path the way ParsePath reads it.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// At returns the node found by following p from n.
func (n *Node) At(p Path) (*Node, error) {
	cur := n
	for depth, i := range p {
		if i >= len(cur.Children) {
			return nil, fmt.Errorf("path %s: node at depth %d has %d children", p, depth, len(cur.Children))
		}
		cur = cur.Children[i]
	}
	return cur, nil
}
