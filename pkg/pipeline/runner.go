package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/smartview/pkg/cache"
	"github.com/matzehuels/smartview/pkg/draw"
	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/httputil"
	"github.com/matzehuels/smartview/pkg/newick"
	"github.com/matzehuels/smartview/pkg/observability"
	"github.com/matzehuels/smartview/pkg/render"
	"github.com/matzehuels/smartview/pkg/tree"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, client and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Client *httputil.Client
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Client: httputil.NewClient(),
		Logger: logger,
	}
}

// TreeHash returns the content hash of a tree, used in cache keys.
func TreeHash(root *tree.Node) string {
	return cache.HashString(newick.Write(root))
}

// Execute runs the complete parse → draw → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Format: opts.Format}

	// Stage 1: Parse
	parseStart := time.Now()
	root, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Tree = root
	result.TreeHash = TreeHash(root)
	result.Stats.ParseTime = time.Since(parseStart)
	result.CacheInfo.ParseHit = parseHit

	sizes := draw.StoreSizes(root)
	opts.Sizes = sizes
	whole := sizes.Node(root)
	result.Stats.NodeCount = sizes.Len()
	result.Stats.Width, result.Stats.Height = whole.W, whole.H
	for range root.Leaves() {
		result.Stats.LeafCount++
	}

	opts.Logger.Info("parsed tree",
		"nodes", result.Stats.NodeCount,
		"leaves", result.Stats.LeafCount,
		"duration", result.Stats.ParseTime)

	// Stage 2: Draw and render
	renderStart := time.Now()
	artifact, primitives, renderHit, err := r.RenderWithCacheInfo(ctx, root, result.TreeHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifact = artifact
	result.Stats.Primitives = primitives
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered tree",
		"format", opts.Format,
		"drawer", opts.Drawer,
		"bytes", len(artifact),
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo reads the tree and returns cache hit info. Only trees
// fetched over HTTP are cached; local files and inline text are read
// every time.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (*tree.Node, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForParse(); err != nil {
		return nil, false, err
	}

	source := opts.Source
	if source == "" {
		source = "newick"
	}
	hooks := observability.Draw()
	hooks.OnParseStart(ctx, source)
	start := time.Now()

	root, hit, err := r.parse(ctx, opts)
	nodes := 0
	if root != nil {
		nodes = root.Count()
	}
	hooks.OnParseComplete(ctx, source, nodes, time.Since(start), err)
	return root, hit, err
}

func (r *Runner) parse(ctx context.Context, opts Options) (*tree.Node, bool, error) {
	if !errors.IsURL(opts.Source) {
		root, err := Load(ctx, r.Client, opts)
		return root, false, err
	}

	cacheKey := r.Keyer.TreeKey(opts.Source)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			root, err := Decode(opts.Source, data)
			if err == nil {
				return root, true, nil
			}
			opts.Logger.Warn("discarding unreadable cached tree", "source", opts.Source, "error", err)
		}
	}

	data, err := r.Client.Fetch(ctx, opts.Source)
	if err != nil {
		return nil, false, err
	}
	root, err := Decode(opts.Source, data)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, cacheKey, data, cache.TreeTTL); err != nil {
		opts.Logger.Debug("cache tree", "source", opts.Source, "error", err)
	}
	return root, false, nil
}

// Parse is a convenience wrapper that calls ParseWithCacheInfo and discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options) (*tree.Node, error) {
	root, _, err := r.ParseWithCacheInfo(ctx, opts)
	return root, err
}

// RenderWithCacheInfo draws and renders the tree with caching. It returns
// the artifact, the number of primitives drawn (zero on a cache hit or for
// topology formats) and whether the artifact came from cache. An empty
// treeHash is computed from the tree.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, root *tree.Node, treeHash string, opts Options) ([]byte, int, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, 0, false, err
	}
	if treeHash == "" {
		treeHash = TreeHash(root)
	}

	cacheKey, ttl := r.renderKey(treeHash, opts)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			return data, 0, true, nil
		}
	}

	hooks := observability.Draw()
	hooks.OnRenderStart(ctx, opts.Format)
	if !opts.IsTopology() {
		hooks.OnDrawStart(ctx, opts.Drawer, root.Count())
	}
	start := time.Now()

	data, primitives, err := Render(ctx, root, opts)

	elapsed := time.Since(start)
	if !opts.IsTopology() {
		hooks.OnDrawComplete(ctx, opts.Drawer, primitives, elapsed, err)
	}
	hooks.OnRenderComplete(ctx, opts.Format, len(data), elapsed, err)
	if err != nil {
		return nil, 0, false, err
	}

	opts.Logger.Debug("drew tree", "options", opts.String(), "primitives", primitives, "duration", elapsed)

	if err := r.Cache.Set(ctx, cacheKey, data, ttl); err != nil {
		opts.Logger.Debug("cache artifact", "key", cacheKey, "error", err)
	}
	return data, primitives, false, nil
}

// renderKey keys JSON output as a drawing, shared with every caller that
// asks for the same primitives, and other formats as artifacts.
func (r *Runner) renderKey(treeHash string, opts Options) (string, time.Duration) {
	if opts.Format == render.FormatJSON {
		return r.Keyer.DrawKey(treeHash, opts.DrawKeyOpts()), cache.DrawTTL
	}
	return r.Keyer.ArtifactKey(treeHash, opts.ArtifactKeyOpts()), cache.ArtifactTTL
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, root *tree.Node, opts Options) ([]byte, error) {
	data, _, _, err := r.RenderWithCacheInfo(ctx, root, "", opts)
	return data, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
