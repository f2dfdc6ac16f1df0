package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/smartview/pkg/buildinfo"
	"github.com/matzehuels/smartview/pkg/cache"
	"github.com/matzehuels/smartview/pkg/config"
	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/observability"
	"github.com/matzehuels/smartview/pkg/pipeline"
	"github.com/matzehuels/smartview/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "smartview"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and the built-in
// settings. The config file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level. At debug level, pipeline and cache
// events are logged too.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := &logHooks{logger: c.Logger}
		observability.SetDrawHooks(hooks)
		observability.SetCacheHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "smartview draws huge phylogenetic trees",
		Long: `smartview turns phylogenetic trees (Newick or JSON) into flat lists of drawing
primitives, adapting detail to a viewport and zoom, and serves them over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	// Register all subcommands
	root.AddCommand(c.drawCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.sizeCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.drawersCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.treesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.Config.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Config.Cache.Prefix)
	}
	return pipeline.NewRunner(cache.Instrumented(ch, c.Config.Cache.Backend), keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.Config.Cache
	if noCache || cfg.Backend == config.CacheNone {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == config.CacheRedis {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// newStore opens the configured tree store.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	cfg := c.Config.Store
	if cfg.Backend == config.StoreMongo {
		ms, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.Database)
		if err != nil {
			return nil, err
		}
		return ms, nil
	}
	return store.NewMemoryStore(), nil
}

// newPersistentStore opens the configured store for commands whose effect
// must outlive the process.
func (c *CLI) newPersistentStore(ctx context.Context) (store.Store, error) {
	if c.Config.Store.Backend != config.StoreMongo {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"the %s store does not outlive this command; set store.backend = %q", c.Config.Store.Backend, config.StoreMongo)
	}
	return c.newStore(ctx)
}

// =============================================================================
// Paths
// =============================================================================

func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/smartview/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
