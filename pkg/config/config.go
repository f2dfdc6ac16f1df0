// Package config loads smartview's settings.
//
// Settings come from, in increasing order of precedence: built-in
// defaults, a TOML file, and SMARTVIEW_* environment variables. Command
// line flags are applied on top by the CLI.
//
//	[server]
//	addr = ":8080"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[store]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//
//	[draw]
//	drawer = "Full"
//
// The same values as environment variables: SMARTVIEW_SERVER_ADDR,
// SMARTVIEW_CACHE_BACKEND, SMARTVIEW_CACHE_REDIS_URL, SMARTVIEW_STORE_BACKEND,
// SMARTVIEW_STORE_MONGO_URI, SMARTVIEW_DRAW_DRAWER.
package config

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/matzehuels/smartview/pkg/draw"
	"github.com/matzehuels/smartview/pkg/errors"
)

// EnvPrefix prefixes all environment variables read by [Load].
const EnvPrefix = "smartview"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Config holds all settings.
type Config struct {
	Server ServerConfig `toml:"server" envconfig:"SERVER"`
	Cache  CacheConfig  `toml:"cache" envconfig:"CACHE"`
	Store  StoreConfig  `toml:"store" envconfig:"STORE"`
	Draw   DrawConfig   `toml:"draw" envconfig:"DRAW"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `toml:"addr" envconfig:"ADDR"`
	AllowedOrigins  []string      `toml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	ReadTimeout     time.Duration `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend" envconfig:"BACKEND"`
	Dir      string `toml:"dir" envconfig:"DIR"`
	RedisURL string `toml:"redis_url" envconfig:"REDIS_URL"`
	Prefix   string `toml:"prefix" envconfig:"PREFIX"`
}

// StoreConfig selects and configures where trees are stored.
type StoreConfig struct {
	Backend  string `toml:"backend" envconfig:"BACKEND"`
	MongoURI string `toml:"mongo_uri" envconfig:"MONGO_URI"`
	Database string `toml:"database" envconfig:"DATABASE"`
}

// DrawConfig holds drawing defaults.
type DrawConfig struct {
	Drawer          string `toml:"drawer" envconfig:"DRAWER"`
	AnnotationLimit int    `toml:"annotation_limit" envconfig:"ANNOTATION_LIMIT"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			AllowedOrigins:  []string{"*"},
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Cache: CacheConfig{Backend: CacheFile},
		Store: StoreConfig{Backend: StoreMemory, Database: "smartview"},
		Draw:  DrawConfig{Drawer: draw.DefaultDrawer},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/smartview/config.toml (or the
// platform equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "smartview", "config.toml")
}

// Load reads the file at path over the defaults, then applies the
// environment. An empty path means [DefaultPath], which may be missing; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.loadFile(path, explicit); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string, mustExist bool) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if mustExist {
			return errors.New(errors.ErrCodeFileNotFound, "config file %s not found", path)
		}
		return nil
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidFormat, "config file %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	if !slices.Contains([]string{CacheFile, CacheRedis, CacheNone}, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache backend redis needs redis_url")
	}
	if !slices.Contains([]string{StoreMemory, StoreMongo}, c.Store.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", c.Store.Backend)
	}
	if c.Store.Backend == StoreMongo && c.Store.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidInput, "store backend mongo needs mongo_uri")
	}
	if _, err := draw.Lookup(c.Draw.Drawer); err != nil {
		return err
	}
	if c.Draw.AnnotationLimit < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "annotation_limit must be >= 0")
	}
	return nil
}

// Write encodes the settings as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
