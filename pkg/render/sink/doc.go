// Package sink writes sequences of drawing primitives.
//
// [WriteJSON] streams primitives as a JSON array of tagged arrays, one per
// line, without holding the whole drawing in memory:
//
//	[
//	["l",0,12,1,12],
//	["tl",1,12,100,12,"1e+02"]
//	]
//
// [RenderSVG] lays the primitives out in a self-contained SVG document.
// Aligned primitives are placed in a column to the right of the tree.
package sink
