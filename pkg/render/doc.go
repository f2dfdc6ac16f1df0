// Package render turns drawings and trees into files.
//
//   - [sink] serializes the primitives produced by the draw package, as the
//     tagged-array JSON clients consume or as a standalone SVG.
//   - [nodelink] renders the bare topology of a tree with Graphviz, useful
//     to eyeball small trees or debug a parse.
//
//	prims := draw.Draw(root, draw.StoreSizes(root), draw.Full, draw.Options{})
//	svg, n, err := sink.RenderSVG(prims)
//
// [sink]: github.com/matzehuels/smartview/pkg/render/sink
// [nodelink]: github.com/matzehuels/smartview/pkg/render/nodelink
package render

// Output formats.
const (
	FormatJSON     = "json"     // primitives as tagged arrays
	FormatSVG      = "svg"      // primitives drawn as SVG
	FormatDOT      = "dot"      // topology as Graphviz source
	FormatNodelink = "nodelink" // topology rendered by Graphviz as SVG
)

// Formats lists the supported output formats.
var Formats = []string{FormatJSON, FormatSVG, FormatDOT, FormatNodelink}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatNodelink:
		return "image/svg+xml"
	case FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/json"
	}
}
