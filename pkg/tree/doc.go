// Package tree defines the in-memory phylogenetic tree that smartview draws.
//
// A [Node] exclusively owns its children; there are no parent pointers. Code
// that needs to address a node from the root uses a [Path] (the sequence of
// child indices leading to it), which is also how the API identifies nodes.
//
// Nodes are built by package newick and are treated as read-only while they
// are being drawn. The editing helpers in this package ([Sort], [Remove], [RootAt],
// [Standardize]) change the structure in place, so any size cache computed
// by package draw must be rebuilt afterwards.
package tree
