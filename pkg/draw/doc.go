// Package draw turns a tree into an ordered sequence of abstract drawing
// primitives (lines, rectangles and text), adapting the amount of detail to
// a viewport and a zoom level so that arbitrarily large trees produce
// bounded output.
//
// # Coordinates
//
// x grows to the right and y grows downwards. A [Rect] is given by its
// top-left corner and its size:
//
//	        w
//	x,y +-------+
//	    |       | h
//	    +-------+
//
// # Layout
//
// Every node occupies a rectangle split in two parts: its content (the
// branch, as wide as the branch length) and, to its right, the stacked
// rectangles of its children:
//
//	p0....p2.....    p0: top-left point of the node (and of its content)
//	  .    [ ]  .    p2: top-left point of the children
//	  [   ][]   .
//	  [   ][    ]
//	  .....[  ]..
//
// Sizes are computed once per tree with [StoreSizes] and must be recomputed
// after any structural edit.
//
// # Drawing
//
// [Draw] walks the tree top-down. Anything outside the viewport is culled.
// Anything smaller than [MinHeight] device units on screen is not drawn but
// collapsed into outline rectangles, and runs of adjacent outlines are
// merged into one. What a node shows besides its branch is decided by a
// [Drawer], a set of hooks composed from [Capability] values.
//
// The returned sequence is lazy: a consumer may stop pulling at any time
// and nothing needs to be cleaned up.
package draw
