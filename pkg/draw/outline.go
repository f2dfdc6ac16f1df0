package draw

// MinHeight is the on-screen height, in device units, below which a
// region is collapsed into an outline instead of being drawn.
const MinHeight = 6

// outline merges runs of collapsed regions that stack exactly on top of
// each other into a single rectangle. Each recursive draw call owns one and
// flushes it before returning, so nothing pending ever leaks into a
// sibling's output.
type outline struct {
	pending Rect
	open    bool
}

// offer adds r to the pending outline, emitting the previous one first
// when r does not continue it. It returns false if the consumer stopped.
func (o *outline) offer(r Rect, yield func(Primitive) bool) bool {
	if !o.open {
		o.pending, o.open = r, true
		return true
	}
	if stacked, ok := StackVertical(o.pending, r); ok {
		o.pending = stacked
		return true
	}
	prev := o.pending
	o.pending = r
	return yield(Rectangle(prev))
}

// flush emits the pending outline, if any.
func (o *outline) flush(yield func(Primitive) bool) bool {
	if !o.open {
		return true
	}
	o.open = false
	return yield(Rectangle(o.pending))
}
