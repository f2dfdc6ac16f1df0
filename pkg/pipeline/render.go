package pipeline

import (
	"context"
	"iter"

	"github.com/matzehuels/smartview/pkg/draw"
	"github.com/matzehuels/smartview/pkg/render"
	"github.com/matzehuels/smartview/pkg/render/nodelink"
	"github.com/matzehuels/smartview/pkg/render/sink"
	"github.com/matzehuels/smartview/pkg/tree"
)

// Primitives returns the lazy primitive sequence for the drawing options,
// sizing the tree unless opts.Sizes is set. Call after ValidateForDraw.
func Primitives(root *tree.Node, opts Options) (iter.Seq[draw.Primitive], error) {
	d, err := draw.Lookup(opts.Drawer)
	if err != nil {
		return nil, err
	}
	sizes := opts.Sizes
	if sizes == nil {
		sizes = draw.StoreSizes(root)
	}
	return draw.Draw(root, sizes, d, opts.DrawOptions()), nil
}

// Render produces the artifact for opts.Format and the number of primitives
// it holds. Topology formats hold no primitives. Call after
// ValidateForRender.
func Render(ctx context.Context, root *tree.Node, opts Options) ([]byte, int, error) {
	switch opts.Format {
	case render.FormatDOT:
		return []byte(topology(root)), 0, nil
	case render.FormatNodelink:
		data, err := nodelink.RenderSVG(ctx, topology(root))
		return data, 0, err
	}

	seq, err := Primitives(root, opts)
	if err != nil {
		return nil, 0, err
	}
	if opts.Format == render.FormatSVG {
		return sink.RenderSVG(seq,
			sink.WithZoom(draw.Zoom{X: opts.ZoomX, Y: opts.ZoomY}),
			sink.WithTitle(opts.Title))
	}
	return sink.RenderJSON(seq)
}

func topology(root *tree.Node) string {
	return nodelink.ToDOT(root, nodelink.Options{Detailed: true, Lengths: true, LeftToRight: true})
}
