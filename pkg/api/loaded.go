package api

import (
	"sync"
	"time"

	"github.com/matzehuels/smartview/pkg/draw"
	"github.com/matzehuels/smartview/pkg/newick"
	"github.com/matzehuels/smartview/pkg/pipeline"
	"github.com/matzehuels/smartview/pkg/store"
	"github.com/matzehuels/smartview/pkg/tree"
)

const defaultLoadedTrees = 32

// loadedTree is a stored tree parsed and sized for drawing. It is never
// modified once loaded, so concurrent requests share it.
type loadedTree struct {
	updated time.Time
	root    *tree.Node
	hash    string
	sizes   *draw.Sizes
}

// treeCache keeps recently drawn trees parsed, keyed by record ID. Entries
// are dropped when the record changes.
type treeCache struct {
	mu      sync.Mutex
	max     int
	entries map[string]*loadedTree
}

func newTreeCache(max int) *treeCache {
	return &treeCache{max: max, entries: make(map[string]*loadedTree)}
}

func (c *treeCache) load(rec *store.Record) (*loadedTree, error) {
	c.mu.Lock()
	lt, ok := c.entries[rec.ID]
	c.mu.Unlock()
	if ok && lt.updated.Equal(rec.UpdatedAt) {
		return lt, nil
	}

	root, err := newick.Read(rec.Newick)
	if err != nil {
		return nil, err
	}
	lt = &loadedTree{
		updated: rec.UpdatedAt,
		root:    root,
		hash:    pipeline.TreeHash(root),
		sizes:   draw.StoreSizes(root),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[rec.ID]; !ok && len(c.entries) >= c.max {
		for id := range c.entries {
			delete(c.entries, id)
			break
		}
	}
	if c.max > 0 {
		c.entries[rec.ID] = lt
	}
	return lt, nil
}

func (c *treeCache) forget(id string) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
}

func (c *treeCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
