// Package pipeline provides the parse → draw → render pipeline shared by
// the CLI and the API.
//
// # Stages
//
//  1. Parse: read a tree from Newick text, a Newick or JSON file, or a URL
//  2. Draw: compute sizes and produce the primitives for a viewport and zoom
//  3. Render: serialize the primitives (JSON, SVG) or the topology (DOT)
//
// Each stage can be run on its own, and the [Runner] caches the outputs of
// all stages keyed by everything that affects them.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source: "tree.nw",
//	    Drawer: "Full",
//	    Format: "svg",
//	})
//	os.Stdout.Write(result.Artifact)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/smartview/pkg/cache"
	"github.com/matzehuels/smartview/pkg/draw"
	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/render"
	"github.com/matzehuels/smartview/pkg/tree"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultDrawer is the drawer used when none is named.
	DefaultDrawer = draw.DefaultDrawer

	// DefaultFormat is the output format used when none is named.
	DefaultFormat = render.FormatJSON

	// DefaultZoom is the zoom used when none is given.
	DefaultZoom = 1.0
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options: exactly one of Source and Newick.
	Source  string `json:"source,omitempty"` // file path, http(s) URL, or "-" for stdin
	Newick  string `json:"newick,omitempty"` // inline Newick text
	Refresh bool   `json:"refresh,omitempty"`

	// Draw options
	Drawer          string    `json:"drawer,omitempty"`
	Viewport        []float64 `json:"viewport,omitempty"` // x, y, w, h in tree units
	ZoomX           float64   `json:"zx,omitempty"`
	ZoomY           float64   `json:"zy,omitempty"`
	AnnotationLimit int       `json:"annotation_limit,omitempty"`

	// Render options
	Format string `json:"format,omitempty"`
	Title  string `json:"title,omitempty"`

	// Runtime options (not serialized)
	Sizes  *draw.Sizes `json:"-"` // precomputed sizes of the tree to draw; computed if nil
	Logger *log.Logger `json:"-"`
	Stdin  io.Reader   `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the parsed tree.
	Tree *tree.Node

	// TreeHash is the content hash of the tree.
	TreeHash string

	// Artifact is the rendered output in Format.
	Artifact []byte
	Format   string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LeafCount  int
	Primitives int
	Width      float64
	Height     float64
	ParseTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // Whether a fetched tree came from cache
	RenderHit bool // Whether the artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(render.Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(render.Formats, ", "))
	}
	return nil
}

// ValidateDrawer checks that a drawer exists.
func ValidateDrawer(name string) error {
	_, err := draw.Lookup(name)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateForParse checks that a single tree source is given.
func (o *Options) ValidateForParse() error {
	switch {
	case o.Source == "" && o.Newick == "":
		return errors.New(errors.ErrCodeInvalidInput, "a tree source or newick text is required")
	case o.Source != "" && o.Newick != "":
		return errors.New(errors.ErrCodeInvalidInput, "give either a tree source or newick text, not both")
	case o.Source != "" && o.Source != "-" && !errors.IsURL(o.Source):
		if err := errors.ValidatePath(o.Source); err != nil {
			return err
		}
	}
	o.setLogger()
	return nil
}

// SetDrawDefaults sets default values for drawing.
func (o *Options) SetDrawDefaults() {
	if o.Drawer == "" {
		o.Drawer = DefaultDrawer
	}
	if o.ZoomX == 0 {
		o.ZoomX = DefaultZoom
	}
	if o.ZoomY == 0 {
		o.ZoomY = DefaultZoom
	}
	o.setLogger()
}

// ValidateForDraw sets defaults and validates the drawing options.
func (o *Options) ValidateForDraw() error {
	o.SetDrawDefaults()
	if err := ValidateDrawer(o.Drawer); err != nil {
		return err
	}
	if err := errors.ValidateZoom(o.ZoomX, o.ZoomY); err != nil {
		return err
	}
	if o.Viewport != nil {
		if len(o.Viewport) != 4 {
			return errors.New(errors.ErrCodeInvalidViewport, "viewport needs x, y, w and h (got %d values)", len(o.Viewport))
		}
		v := o.Viewport
		if err := errors.ValidateViewport(v[0], v[1], v[2], v[3]); err != nil {
			return err
		}
	}
	if o.AnnotationLimit < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "annotation limit must be >= 0")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for drawing and rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForDraw(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	return ValidateFormat(o.Format)
}

// ValidateAndSetDefaults checks all fields and applies defaults for the
// full pipeline.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// DrawOptions converts the options for the draw package. Call after
// ValidateForDraw.
func (o *Options) DrawOptions() draw.Options {
	opts := draw.Options{
		Zoom:            draw.Zoom{X: o.ZoomX, Y: o.ZoomY},
		AnnotationLimit: o.AnnotationLimit,
	}
	if len(o.Viewport) == 4 {
		opts.Viewport = &draw.Rect{X: o.Viewport[0], Y: o.Viewport[1], W: o.Viewport[2], H: o.Viewport[3]}
	}
	return opts
}

// DrawKeyOpts returns cache key options for drawing.
func (o *Options) DrawKeyOpts() cache.DrawKeyOpts {
	return cache.DrawKeyOpts{
		Drawer:          o.Drawer,
		Viewport:        o.Viewport,
		Zoom:            [2]float64{o.ZoomX, o.ZoomY},
		AnnotationLimit: o.AnnotationLimit,
	}
}

// ArtifactKeyOpts returns cache key options for rendering.
// Only SVG documents carry the title.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: o.Format, Draw: o.DrawKeyOpts()}
	if o.Format == render.FormatSVG {
		k.Title = o.Title
	}
	return k
}

// IsTopology reports whether the format renders the tree's topology
// rather than its drawing.
func (o *Options) IsTopology() bool {
	return o.Format == render.FormatDOT || o.Format == render.FormatNodelink
}

func (o *Options) String() string {
	return fmt.Sprintf("drawer=%s zoom=%gx%g viewport=%v format=%s", o.Drawer, o.ZoomX, o.ZoomY, o.Viewport, o.Format)
}
