package draw

import (
	"testing"

	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/newick"
	"github.com/matzehuels/smartview/pkg/tree"
)

func mustRead(t testing.TB, text string) *tree.Node {
	t.Helper()
	root, err := newick.Read(text)
	if err != nil {
		t.Fatalf("newick.Read(%q): %v", text, err)
	}
	return root
}

func TestStoreSizes(t *testing.T) {
	root := mustRead(t, "((B:2,(C:2.5,D:3)E:3.5)A:1)F;")
	s := StoreSizes(root)

	if got := s.Len(); got != root.Count() {
		t.Errorf("Len() = %d, want %d", got, root.Count())
	}
	if got := s.Content(root); got != (Size{1, 24}) {
		t.Errorf("Content(root) = %v, want {1 24}", got)
	}
	if got := s.Children(root); got != (Size{7.5, 24}) {
		t.Errorf("Children(root) = %v, want {7.5 24}", got)
	}
	if got := s.Node(root); got != (Size{8.5, 24}) {
		t.Errorf("Node(root) = %v, want {8.5 24}", got)
	}

	e, _ := root.At(tree.Path{0, 1})
	if got := s.Node(e); got != (Size{6.5, 16}) {
		t.Errorf("Node(E) = %v, want {6.5 16}", got)
	}
}

func TestSizeInvariants(t *testing.T) {
	root := mustRead(t, "((a:1,b:-2,c)d:0,(e:3,(f:1,g:1)h:0.5)i)j:4;")
	s := StoreSizes(root)

	for n := range root.Walk() {
		content, children, node := s.Content(n), s.Children(n), s.Node(n)
		if node != (Size{content.W + children.W, children.H}) {
			t.Errorf("%s: node %v != content %v + children %v", n.Name, node, content, children)
		}
		if content.H != children.H {
			t.Errorf("%s: content height %g != children height %g", n.Name, content.H, children.H)
		}

		var w, h float64
		for _, c := range n.Children {
			w = max(w, s.Node(c).W)
			h += s.Node(c).H
		}
		if want := (Size{w, max(h, DefaultMetrics.LeafHeight)}); children != want {
			t.Errorf("%s: children %v, want %v", n.Name, children, want)
		}
	}
}

func TestContentWidth(t *testing.T) {
	tests := []struct {
		newick string
		want   float64
	}{
		{"a:2.5;", 2.5},
		{"a:-3;", 3},
		{"a:0;", 0},
		{"a;", DefaultMetrics.DefaultLength},
	}
	for _, tt := range tests {
		t.Run(tt.newick, func(t *testing.T) {
			root := mustRead(t, tt.newick)
			if got := StoreSizes(root).Content(root).W; got != tt.want {
				t.Errorf("width = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestStoreSizesWith(t *testing.T) {
	root := mustRead(t, "(a,b);")
	s := StoreSizesWith(root, Metrics{LeafHeight: 10, DefaultLength: 2})
	if got := s.Node(root); got != (Size{4, 20}) {
		t.Errorf("Node(root) = %v, want {4 20}", got)
	}
}

func TestUnsizedNode(t *testing.T) {
	root := mustRead(t, "(a,b);")
	s := StoreSizes(root)
	root.Children = append(root.Children, tree.New("c"))

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, errors.ErrCodeUnsizedNode) {
			t.Errorf("recovered %v, want UNSIZED_NODE error", r)
		}
	}()
	for range Draw(root, s, Simple, Options{}) {
	}
	t.Error("drawing an unsized node did not panic")
}
