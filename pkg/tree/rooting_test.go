package tree

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

// shape renders n as a compact Newick-like string without properties.
func shape(n *Node) string {
	var b strings.Builder
	if len(n.Children) > 0 {
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = shape(c)
		}
		b.WriteString("(" + strings.Join(parts, ",") + ")")
	}
	b.WriteString(n.Name)
	if n.HasLength {
		b.WriteString(":" + strconv.FormatFloat(n.Length, 'g', -1, 64))
	}
	return b.String()
}

func withSupport(n *Node, v string) *Node {
	n.Properties.Set(SupportProperty, v)
	return n
}

func TestRootAt(t *testing.T) {
	tests := []struct {
		name string
		root func() *Node
		path Path
		want string
	}{
		{
			name: "halves the target branch",
			root: sample,
			path: Path{0, 1},
			want: "((C:2.5,D:3)E:1.75,(B:2,F:1)A:1.75)",
		},
		{
			name: "collapses a single-child old root",
			root: func() *Node {
				return New("R", New("A", New("a"), New("b")).WithLength(1), New("c").WithLength(2))
			},
			path: Path{1},
			want: "(c:1,(a,b)A:2)",
		},
		{
			name: "target without length",
			root: func() *Node {
				return New("R",
					New("X", New("a"), New("b")).WithLength(1),
					New("c").WithLength(1),
					New("d").WithLength(1),
				)
			},
			path: Path{0, 0},
			want: "(a,(b,(c:1,d:1)R:1)X)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RootAt(tt.root(), tt.path)
			if err != nil {
				t.Fatalf("RootAt error: %v", err)
			}
			if s := shape(got); s != tt.want {
				t.Errorf("RootAt = %s, want %s", s, tt.want)
			}
		})
	}
}

func TestRootAtSupport(t *testing.T) {
	root := New("R",
		withSupport(New("X", New("a"), New("b")).WithLength(1), "90"),
		New("c"),
		New("d"),
	)
	got, err := RootAt(root, Path{0, 0})
	if err != nil {
		t.Fatalf("RootAt error: %v", err)
	}
	x := got.Children[1]
	if _, ok := x.Properties.Get(SupportProperty); ok {
		t.Error("X should have given its support to the old root")
	}
	r := x.Children[1]
	if v, ok := r.Properties.Get(SupportProperty); !ok || v != "90" {
		t.Errorf("old root support = %q, %v, want 90", v, ok)
	}
}

func TestRootAtErrors(t *testing.T) {
	if _, err := RootAt(sample(), Path{}); !errors.Is(err, ErrRootAtRoot) {
		t.Errorf("RootAt(root) error = %v, want ErrRootAtRoot", err)
	}
	if _, err := RootAt(sample(), Path{0, 7}); err == nil {
		t.Error("RootAt of a missing node should fail")
	}
	if _, err := RootAt(sample(), Path{3, 0}); err == nil {
		t.Error("RootAt through a missing node should fail")
	}
}

func TestUnroot(t *testing.T) {
	tests := []struct {
		name    string
		root    func() *Node
		changed bool
		want    string
	}{
		{
			name: "internal child first",
			root: func() *Node {
				return New("R", New("X", New("a"), New("b")).WithLength(1), New("c").WithLength(2))
			},
			changed: true,
			want:    "(a,b,c:3)R",
		},
		{
			name: "internal child second",
			root: func() *Node {
				return New("R", New("c"), New("X", New("a"), New("b")).WithLength(1))
			},
			changed: true,
			want:    "(c:1,a,b)R",
		},
		{
			name: "already multifurcating",
			root: func() *Node {
				return New("R", New("a"), New("b"), New("c"))
			},
			want: "(a,b,c)R",
		},
		{
			name: "two leaves",
			root: func() *Node {
				return New("R", New("a"), New("b"))
			},
			want: "(a,b)R",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := tt.root()
			if got := Unroot(root); got != tt.changed {
				t.Errorf("Unroot = %v, want %v", got, tt.changed)
			}
			if s := shape(root); s != tt.want {
				t.Errorf("tree = %s, want %s", s, tt.want)
			}
		})
	}
}

func TestUnrootSupport(t *testing.T) {
	root := New("R", withSupport(New("X", New("a"), New("b")), "80"), New("c"))
	Unroot(root)
	if v, ok := root.Children[2].Properties.Get(SupportProperty); !ok || v != "80" {
		t.Errorf("support = %q, %v, want 80", v, ok)
	}
}
