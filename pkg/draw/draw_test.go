package draw

import (
	"encoding/json"
	"iter"
	"reflect"
	"slices"
	"testing"
)

func collect(t testing.TB, text string, d Drawer, opts Options) []Primitive {
	t.Helper()
	root := mustRead(t, text)
	return slices.Collect(Draw(root, StoreSizes(root), d, opts))
}

func assertPrimitives(t *testing.T, got, want []Primitive) {
	t.Helper()
	if reflect.DeepEqual(got, want) {
		return
	}
	t.Errorf("got %d primitives, want %d", len(got), len(want))
	for i := range max(len(got), len(want)) {
		var g, w Primitive
		if i < len(got) {
			g = got[i]
		}
		if i < len(want) {
			w = want[i]
		}
		if !reflect.DeepEqual(g, w) {
			t.Errorf("  [%d] got %#v, want %#v", i, g, w)
		}
	}
}

func TestDrawGolden(t *testing.T) {
	got := collect(t, "((B:200,(C:250,D:300)E:350)A:100)F;", Lengths, Options{Zoom: Zoom{1, 1}})

	want := []Primitive{
		Line{0, 12, 1, 12},
		Line{1, 12, 1, 12},
		Line{1, 12, 101, 12},
		Text{KindLabel, 1, 12, 100, 12, "1e+02"},
		Line{101, 12, 101, 4},
		Line{101, 4, 301, 4},
		Text{KindLabel, 101, 4, 200, 4, "2e+02"},
		Line{101, 12, 101, 16},
		Line{101, 16, 451, 16},
		Text{KindLabel, 101, 16, 350, 8, "3.5e+02"},
		Line{451, 16, 451, 12},
		Line{451, 12, 701, 12},
		Text{KindLabel, 451, 12, 250, 4, "2.5e+02"},
		Line{451, 16, 451, 20},
		Line{451, 20, 751, 20},
		Text{KindLabel, 451, 20, 300, 4, "3e+02"},
	}
	assertPrimitives(t, got, want)

	data, err := json.Marshal(got[:4])
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	wantJSON := `[["l",0,12,1,12],["l",1,12,1,12],["l",1,12,101,12],["tl",1,12,100,12,"1e+02"]]`
	if string(data) != wantJSON {
		t.Errorf("json = %s\nwant   %s", data, wantJSON)
	}
}

func TestDrawDefaultZoom(t *testing.T) {
	const text = "((B:200,(C:250,D:300)E:350)A:100)F;"
	got := collect(t, text, Lengths, Options{})
	want := collect(t, text, Lengths, Options{Zoom: Zoom{1, 1}})
	assertPrimitives(t, got, want)
}

func TestDrawIdempotent(t *testing.T) {
	root := mustRead(t, "((B:200,(C:250,D:300)E:350)A:100)F;")
	s := StoreSizes(root)
	seq := Draw(root, s, Full, Options{Zoom: Zoom{1, 0.7}})

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	third := slices.Collect(Draw(root, s, Full, Options{Zoom: Zoom{1, 0.7}}))
	assertPrimitives(t, second, first)
	assertPrimitives(t, third, first)
}

func TestDrawDisjointViewport(t *testing.T) {
	got := collect(t, "((B:200,(C:250,D:300)E:350)A:100)F;", Full, Options{
		Viewport: &Rect{X: 1000, Y: 1000, W: 10, H: 10},
		Zoom:     Zoom{1, 1},
	})
	if len(got) != 0 {
		t.Errorf("got %v, want nothing", got)
	}
}

func TestDrawCollapsedTree(t *testing.T) {
	got := collect(t, "(a:1,b:1,c:1,d:1)r:1;", Full, Options{Zoom: Zoom{1, 0.1}})
	assertPrimitives(t, got, []Primitive{Rectangle{0, 0, 2, 32}})
}

func TestDrawMergesOutlines(t *testing.T) {
	got := collect(t, "(a:1,b:1,c:1,d:1)r;", Simple, Options{Zoom: Zoom{1, 0.5}})
	want := []Primitive{
		Line{0, 16, 1, 16},
		Line{1, 16, 1, 4},
		Line{1, 16, 1, 12},
		Line{1, 16, 1, 20},
		Line{1, 16, 1, 28},
		Rectangle{1, 0, 1, 32},
	}
	assertPrimitives(t, got, want)
}

func TestDrawPartialViewport(t *testing.T) {
	got := collect(t, "(a:1,b:1,c:1,d:1)r;", Simple, Options{
		Viewport: &Rect{X: 0, Y: 0, W: 10, H: 12},
		Zoom:     Zoom{1, 0.5},
	})
	want := []Primitive{
		Line{0, 16, 1, 16},
		Line{1, 16, 1, 4},
		Line{1, 16, 1, 12},
		Line{1, 16, 1, 20},
		Line{1, 16, 1, 28},
		Rectangle{1, 0, 1, 16},
	}
	assertPrimitives(t, got, want)
}

func TestDrawFlushesBeforeDrawing(t *testing.T) {
	got := collect(t, "(a:1,(b:1,c:1,d:1)e:1)r;", Simple, Options{Zoom: Zoom{1, 0.5}})
	want := []Primitive{
		Line{0, 16, 1, 16},
		Line{1, 16, 1, 4},
		Line{1, 16, 1, 20},
		Rectangle{1, 0, 1, 8},
		Line{1, 20, 2, 20},
		Line{2, 20, 2, 12},
		Line{2, 20, 2, 20},
		Line{2, 20, 2, 28},
		Rectangle{2, 8, 1, 24},
	}
	assertPrimitives(t, got, want)
}

func TestDrawOrigin(t *testing.T) {
	got := collect(t, "(a:1,b:2)r;", Simple, Options{Origin: Point{10, 100}})
	want := []Primitive{
		Line{10, 108, 11, 108},
		Line{11, 108, 11, 104},
		Line{11, 104, 12, 104},
		Line{11, 108, 11, 112},
		Line{11, 112, 13, 112},
	}
	assertPrimitives(t, got, want)
}

func TestDrawEarlyStop(t *testing.T) {
	root := mustRead(t, "((B:200,(C:250,D:300)E:350)A:100)F;")
	s := StoreSizes(root)
	all := slices.Collect(Draw(root, s, Lengths, Options{}))

	for _, n := range []int{1, 3, 7, len(all) - 1} {
		var got []Primitive
		for p := range Draw(root, s, Lengths, Options{}) {
			got = append(got, p)
			if len(got) == n {
				break
			}
		}
		assertPrimitives(t, got, all[:n])
	}
}

func TestDrawAnnotationsNotCulled(t *testing.T) {
	marker := Capability{Name: "marker", Emit: func(c Content) iter.Seq[Primitive] {
		return func(yield func(Primitive) bool) {
			yield(Text{Kind: KindName, X: c.Point.X, Y: c.Point.Y, Text: c.Node.Name})
		}
	}}
	d := Drawer{Name: "test", Inline: Hook{BranchLength}, Float: Hook{marker}}

	// The root's content lies left of the viewport, only its children show.
	got := collect(t, "(a:1,b:1)r:10;", d, Options{Viewport: &Rect{X: 10.5, Y: 0, W: 5, H: 16}})

	var names, labels []string
	for _, p := range got {
		if text, ok := p.(Text); ok {
			switch text.Kind {
			case KindName:
				names = append(names, text.Text)
			case KindLabel:
				labels = append(labels, text.Text)
			}
		}
	}
	if !slices.Equal(names, []string{"r", "a", "b"}) {
		t.Errorf("names = %v, want [r a b]", names)
	}
	if !slices.Equal(labels, []string{"1", "1"}) {
		t.Errorf("labels = %v, want [1 1]", labels)
	}
}

func TestDrawAnnotationLimit(t *testing.T) {
	got := collect(t, "(a,b,c,d,e)r;", Align, Options{AnnotationLimit: 3})
	var annotations int
	for _, p := range got {
		switch p := p.(type) {
		case Aligned:
			annotations++
		case Text:
			if p.Kind == KindName {
				annotations++
			}
		}
	}
	if annotations != 3 {
		t.Errorf("annotations = %d, want 3", annotations)
	}
}

func BenchmarkDraw(b *testing.B) {
	root := mustRead(b, "((B:200,(C:250,D:300)E:350)A:100,((G:1,H:2)I:3,(J:4,K:5)L:6)M:7)F;")
	s := StoreSizes(root)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for range Draw(root, s, Full, Options{Zoom: Zoom{2, 2}}) {
		}
	}
}
