package draw

// Point is a position on the plane.
type Point struct {
	X, Y float64
}

// Size is a width and a height.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X, Y, W, H float64
}

// Zoom holds the horizontal and vertical scale factors from tree units to
// device units.
type Zoom struct {
	X, Y float64
}

// MakeRect returns the rectangle of size s with its top-left corner at p.
func MakeRect(p Point, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, W: s.W, H: s.H}
}

// Intersects reports whether r1 and r2 overlap, excluding rectangles that
// only touch at an edge. A nil rectangle stands for the whole plane and
// intersects everything.
func Intersects(r1, r2 *Rect) bool {
	if r1 == nil || r2 == nil {
		return true
	}
	x1min, y1min := r1.X, r1.Y
	x1max, y1max := r1.X+r1.W, r1.Y+r1.H
	x2min, y2min := r2.X, r2.Y
	x2max, y2max := r2.X+r2.W, r2.Y+r2.H
	return x1min < x2max && x2min < x1max &&
		y1min < y2max && y2min < y1max
}

// StackVertical returns the rectangle covering r1 and r2 when r2 sits
// immediately below r1 with the same left edge:
//
//	[ r1 ]       [      ]
//	[  r2  ] ->  |      |
//	             [      ]
//
// The test is exact and ordered: StackVertical(r2, r1) fails for the same
// pair.
func StackVertical(r1, r2 Rect) (Rect, bool) {
	if r1.X != r2.X || r1.Y+r1.H != r2.Y {
		return Rect{}, false
	}
	return Rect{X: r1.X, Y: r1.Y, W: max(r1.W, r2.W), H: r1.H + r2.H}, true
}

// StackVerticalSize returns the size of a box holding all sizes stacked
// on top of each other.
func StackVerticalSize(sizes ...Size) Size {
	var s Size
	for _, size := range sizes {
		s.W = max(s.W, size.W)
		s.H += size.H
	}
	return s
}

// StackHorizontalSize returns the size of a box holding all sizes placed
// side by side.
func StackHorizontalSize(sizes ...Size) Size {
	var s Size
	for _, size := range sizes {
		s.W += size.W
		s.H = max(s.H, size.H)
	}
	return s
}
