package draw

import (
	"iter"

	"github.com/matzehuels/smartview/pkg/tree"
)

// Options controls a single drawing pass.
type Options struct {
	// Viewport is the visible area in tree units. Nil means everything.
	Viewport *Rect

	// Zoom scales tree units to device units. The zero value means (1, 1).
	Zoom Zoom

	// Origin is where the root's top-left corner is placed.
	Origin Point

	// AnnotationLimit caps the number of float and align primitives of one
	// pass. Zero means no limit.
	AnnotationLimit int
}

// Draw returns the primitives that represent the tree rooted at root. Sizes
// must have been computed for this tree with [StoreSizes]. Viewport and
// zoom are assumed valid; see errors.ValidateViewport and
// errors.ValidateZoom.
//
// The sequence is produced lazily and may be iterated more than once, each
// iteration being a fresh traversal.
func Draw(root *tree.Node, sizes *Sizes, d Drawer, opts Options) iter.Seq[Primitive] {
	if opts.Zoom == (Zoom{}) {
		opts.Zoom = Zoom{X: 1, Y: 1}
	}
	return func(yield func(Primitive) bool) {
		c := &compiler{sizes: sizes, drawer: d, opts: opts, yield: yield}
		var o outline
		r := MakeRect(opts.Origin, sizes.Node(root))
		ok := c.drawOrOutline(&o, r, func() bool {
			return c.node(root, opts.Origin)
		})
		if ok {
			o.flush(yield)
		}
	}
}

// compiler holds the state of one traversal. Its methods return false once
// the consumer has stopped, and every caller returns immediately then.
type compiler struct {
	sizes       *Sizes
	drawer      Drawer
	opts        Options
	yield       func(Primitive) bool
	annotations int
}

// drawOrOutline draws what f emits when r is visible and tall enough on
// screen, offers r to the outline when it is visible but small, and does
// nothing otherwise.
func (c *compiler) drawOrOutline(o *outline, r Rect, f func() bool) bool {
	if !Intersects(&r, c.opts.Viewport) {
		return true
	}
	if r.H*c.opts.Zoom.Y > MinHeight {
		return o.flush(c.yield) && f()
	}
	return o.offer(r, c.yield)
}

func (c *compiler) node(n *tree.Node, p Point) bool {
	var o outline

	h := c.sizes.Node(n).H
	cw := c.sizes.Content(n).W
	content := Content{Node: n, Point: p, Size: Size{W: cw, H: h}, Zoom: c.opts.Zoom}

	if !c.yield(Line{X1: p.X, Y1: p.Y + h/2, X2: p.X + cw, Y2: p.Y + h/2}) {
		return false
	}

	ok := c.drawOrOutline(&o, MakeRect(p, content.Size), func() bool {
		return c.emit(c.drawer.Inline.Seq(content))
	})
	if !ok {
		return false
	}

	if !c.annotate(c.drawer.Float.Seq(content)) || !c.annotate(c.drawer.Align.Seq(content)) {
		return false
	}

	if !n.IsLeaf() {
		pc := Point{X: p.X + cw, Y: p.Y}
		ok := c.drawOrOutline(&o, MakeRect(pc, c.sizes.Children(n)), func() bool {
			return c.children(n, pc, &o)
		})
		if !ok {
			return false
		}
	}

	return o.flush(c.yield)
}

// children draws the children of n stacked from pc downwards, each joined
// to the middle of the children box by a vertical connector.
func (c *compiler) children(n *tree.Node, pc Point, o *outline) bool {
	x, y := pc.X, pc.Y
	mid := y + c.sizes.Children(n).H/2
	for _, child := range n.Children {
		size := c.sizes.Node(child)
		if !c.yield(Line{X1: x, Y1: mid, X2: x, Y2: y + size.H/2}) {
			return false
		}
		p := Point{X: x, Y: y}
		ok := c.drawOrOutline(o, MakeRect(p, size), func() bool {
			return c.node(child, p)
		})
		if !ok {
			return false
		}
		y += size.H
	}
	return true
}

func (c *compiler) emit(seq iter.Seq[Primitive]) bool {
	for p := range seq {
		if !c.yield(p) {
			return false
		}
	}
	return true
}

func (c *compiler) annotate(seq iter.Seq[Primitive]) bool {
	for p := range seq {
		if c.opts.AnnotationLimit > 0 && c.annotations >= c.opts.AnnotationLimit {
			return true
		}
		c.annotations++
		if !c.yield(p) {
			return false
		}
	}
	return true
}
