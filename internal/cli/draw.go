package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/pipeline"
	"github.com/matzehuels/smartview/pkg/render"
)

// viewFlags holds the flags shared by draw and render.
type viewFlags struct {
	newick   string    // inline Newick text instead of a source argument
	drawer   string    // drawer name (config default if empty)
	viewport []float64 // x,y,w,h; whole tree if empty
	zx, zy   float64   // zoom factors
	limit    int       // annotation limit, -1 for the config default
	noCache  bool      // disable caching
	refresh  bool      // bypass cached results
	output   string    // output file path (stdout if empty)
	format   string    // output format
	title    string    // SVG document title
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.newick, "newick", "", "inline Newick text instead of a file or URL")
	cmd.Flags().StringVarP(&f.drawer, "drawer", "d", "", "drawer (see 'smartview drawers')")
	cmd.Flags().Float64SliceVar(&f.viewport, "viewport", nil, "viewport x,y,w,h in tree units (default: whole tree)")
	cmd.Flags().Float64Var(&f.zx, "zx", 1, "horizontal zoom")
	cmd.Flags().Float64Var(&f.zy, "zy", 1, "vertical zoom")
	cmd.Flags().IntVar(&f.limit, "limit", -1, "maximum annotations (0 = unlimited, default from config)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass cached results")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (stdout if empty)")
	cmd.RegisterFlagCompletionFunc("drawer", completeDrawers)
}

// options converts the flags into pipeline options.
func (c *CLI) options(f *viewFlags, args []string) (pipeline.Options, error) {
	opts := pipeline.Options{
		Newick:          f.newick,
		Refresh:         f.refresh,
		Drawer:          f.drawer,
		Viewport:        f.viewport,
		ZoomX:           f.zx,
		ZoomY:           f.zy,
		AnnotationLimit: f.limit,
		Format:          f.format,
		Title:           f.title,
		Logger:          c.Logger,
	}
	if len(args) > 0 {
		opts.Source = args[0]
	}
	if opts.Drawer == "" {
		opts.Drawer = c.Config.Draw.Drawer
	}
	if opts.AnnotationLimit < 0 {
		opts.AnnotationLimit = c.Config.Draw.AnnotationLimit
	}
	if opts.Title == "" && opts.Source != "" && opts.Source != "-" {
		opts.Title = opts.Source
	}
	return opts, opts.ValidateAndSetDefaults()
}

// drawCommand creates the draw command.
func (c *CLI) drawCommand() *cobra.Command {
	flags := viewFlags{format: render.FormatJSON}

	cmd := &cobra.Command{
		Use:   "draw [file|url|-]",
		Short: "Print the drawing primitives of a tree",
		Long: `Print the drawing primitives of a tree as a JSON list of tagged arrays.

Nodes too small to draw at the given zoom are merged into outline rectangles,
and nothing outside the viewport is drawn.

Examples:
  smartview draw tree.nw
  smartview draw tree.nw --viewport 0,0,100,400 --zy 0.5
  smartview draw --newick "((A:1,B:2)C:1,D:3);" -d Align`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), &flags, args)
		},
	}
	flags.register(cmd)
	return cmd
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	flags := viewFlags{format: render.FormatSVG}

	cmd := &cobra.Command{
		Use:   "render [file|url|-]",
		Short: "Render a tree to SVG, JSON, or a Graphviz topology view",
		Long: `Render a tree's drawing as SVG or JSON, or its topology as Graphviz DOT
source (dot) or a Graphviz-rendered SVG (nodelink).

Examples:
  smartview render tree.nw -o tree.svg
  smartview render tree.nw -f nodelink -o topology.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), &flags, args)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.format, "format", "f", flags.format, "output format: svg, json, dot, nodelink")
	cmd.Flags().StringVar(&flags.title, "title", "", "SVG document title (default: source name)")
	cmd.RegisterFlagCompletionFunc("format", completeFormats)
	return cmd
}

func (c *CLI) runView(ctx context.Context, flags *viewFlags, args []string) error {
	logger := loggerFromContext(ctx)
	opts, err := c.options(flags, args)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if errors.IsURL(opts.Source) {
		spinner = newSpinnerWithContext(ctx, "Fetching "+opts.Source+"...")
		spinner.Start()
	}
	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if flags.output == "" {
		_, err := os.Stdout.Write(result.Artifact)
		return err
	}
	if err := os.WriteFile(flags.output, result.Artifact, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}
	prog.done(fmt.Sprintf("Rendered %s", opts.Format))
	printSuccess("Wrote %s", opts.Format)
	printFile(flags.output)
	printStats(result.Stats, result.CacheInfo.RenderHit)
	return nil
}
