package library

import (
	"fmt"
	"sync"

	"wireframe-renderer/internal/mesh"
)

// Resolver resolves a model name to a parsed mesh.
type Resolver interface {
	Resolve(name string) (*mesh.Mesh, error)
}

// Cache is a concurrency-safe mesh cache. Failed loads are cached too, so
// a broken file is parsed once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	mesh *mesh.Mesh
	err  error
}

// NewCache creates a new mesh cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches a model by name.
func (c *Cache) Resolve(name string) (*mesh.Mesh, error) {
	path, ok := c.index.ResolvePath(name)
	if !ok {
		return nil, fmt.Errorf("library: model %q not found", name)
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.mesh, entry.err
	}
	c.mu.RUnlock()

	// Slow path: parse from disk
	m, err := mesh.ParseOBJ(path)
	if err == nil {
		err = m.Validate()
	}
	if err != nil {
		m = nil
	}

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.mesh, entry.err
	}
	c.items[path] = &cacheEntry{mesh: m, err: err}
	return m, err
}

// Len returns the number of cached entries, failed loads included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Static resolves names from a fixed set of meshes, such as procedural
// primitives built up front.
type Static map[string]*mesh.Mesh

// Resolve implements Resolver.
func (s Static) Resolve(name string) (*mesh.Mesh, error) {
	m, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("library: model %q not found", name)
	}
	return m, nil
}
