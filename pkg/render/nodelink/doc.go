// Package nodelink renders the topology of a tree with Graphviz.
//
// Unlike the draw package, which scales to huge trees by collapsing
// detail, nodelink draws every node as a box connected to its parent by an
// arrow. It is meant for small trees:
//
//	dot := nodelink.ToDOT(root, nodelink.Options{Lengths: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Graphviz runs in-process (compiled to WebAssembly), so no external
// binary is needed.
package nodelink
