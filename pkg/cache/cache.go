// Package cache stores encoded trees, drawings and rendered artifacts.
//
// A [Cache] is a byte store with per-entry TTLs. Three backends exist:
// [FileCache] for the CLI, [RedisCache] for servers sharing a cache, and
// [NullCache] when caching is disabled. A [Keyer] derives the keys, so that
// every input affecting an output (tree content, drawer, viewport, zoom,
// format) is part of the key of that output.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for byte slices.
type Cache interface {
	// Get returns the value stored under key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the resources held by the cache.
	Close() error
}

// Default TTLs per kind of entry.
const (
	TreeTTL     = 24 * time.Hour
	DrawTTL     = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Key types reported to the cache hooks.
const (
	KeyTypeTree     = "tree"
	KeyTypeDraw     = "draw"
	KeyTypeArtifact = "artifact"
)

// DrawKeyOpts holds everything besides the tree that changes a drawing.
type DrawKeyOpts struct {
	Drawer          string     `json:"drawer"`
	Viewport        []float64  `json:"viewport,omitempty"` // x, y, w, h
	Zoom            [2]float64 `json:"zoom"`
	AnnotationLimit int        `json:"annotation_limit,omitempty"`
}

// ArtifactKeyOpts identifies a rendering of a drawing.
type ArtifactKeyOpts struct {
	Format string      `json:"format"`
	Title  string      `json:"title,omitempty"`
	Draw   DrawKeyOpts `json:"draw"`
}

// Keyer derives cache keys.
type Keyer interface {
	// TreeKey is the key of a tree fetched from source (a URL or a path).
	TreeKey(source string) string

	// DrawKey is the key of the primitives of the tree with the given
	// content hash.
	DrawKey(treeHash string, opts DrawKeyOpts) string

	// ArtifactKey is the key of a rendered drawing.
	ArtifactKey(treeHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components into fixed-size keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key derivation.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) TreeKey(source string) string {
	return hashKey(KeyTypeTree, source)
}

func (DefaultKeyer) DrawKey(treeHash string, opts DrawKeyOpts) string {
	return hashKey(KeyTypeDraw, treeHash, opts)
}

func (DefaultKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, treeHash, opts)
}
