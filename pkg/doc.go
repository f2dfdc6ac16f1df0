// Package pkg provides the core libraries for smartview tree drawing.
//
// # Overview
//
// smartview turns phylogenetic trees into flat lists of drawing primitives
// (lines, rectangles, texts) for a given viewport and zoom. Subtrees too
// small to see are merged into outline rectangles, so a client can browse
// trees with millions of nodes while only ever receiving what fits on
// screen.
//
// # Architecture
//
//	Newick / JSON tree
//	         ↓
//	    [newick], [io] (parse)
//	         ↓
//	    [tree] (nodes, paths, gardening)
//	         ↓
//	    [draw] (sizes + primitive compiler)
//	         ↓
//	    [render] (JSON, SVG, Graphviz)
//
// [pipeline] ties the stages together with caching, and is shared by the
// CLI and [api].
//
// # Quick Start
//
//	root, _ := newick.Read("((A:1,B:2)C:1,D:3)E;")
//	sizes := draw.StoreSizes(root)
//	for p := range draw.Draw(root, sizes, draw.Full, draw.Options{}) {
//	    fmt.Println(p)
//	}
//
// # Main Packages
//
// [tree] - The node model, child paths, sorting and pruning.
//
// [newick] - Reading and writing Newick text with NHX properties.
//
// [io] - The nested JSON tree format.
//
// [draw] - Node sizes, drawers, and the viewport-aware primitive compiler.
//
// [render] - Output formats: JSON and SVG sinks, and a Graphviz node-link
// view of the topology.
//
// [pipeline] - Parse and render with validation, caching and hooks.
//
// [api] - HTTP and websocket API over stored trees.
//
// ## Infrastructure
//
// [cache] - File, Redis and no-op caches keyed by content hashes.
//
// [store] - Tree records in memory or MongoDB.
//
// [config] - TOML configuration with environment overrides.
//
// [errors] - Coded errors shared by all layers.
//
// [httputil] - Fetching remote trees with retries.
//
// [observability] - Hooks for logging and metrics.
//
// [tree]: https://pkg.go.dev/github.com/matzehuels/smartview/pkg/tree
// [newick]: https://pkg.go.dev/github.com/matzehuels/smartview/pkg/newick
// [io]: https://pkg.go.dev/github.com/matzehuels/smartview/pkg/io
// [draw]: https://pkg.go.dev/github.com/matzehuels/smartview/pkg/draw
// [render]: https://pkg.go.dev/github.com/matzehuels/smartview/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/smartview/pkg/pipeline
// [api]: https://pkg.go.dev/github.com/matzehuels/smartview/pkg/api
// [cache]: https://pkg.go.dev/github.com/matzehuels/smartview/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/smartview/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/smartview/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/smartview/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/smartview/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/smartview/pkg/observability
package pkg
