package service

import (
	"github.com/ludo-technologies/codesim/internal/analyzer"
)

// CachedUnit holds the analysis of one batch input. Err is set instead of
// Representation when the file was skipped.
type CachedUnit struct {
	Path           string
	Representation *analyzer.Representation
	Err            error
}

// RepresentationCache stores analyzed inputs so every pair of a batch reuses
// them. After Seal() the cache is read-only and safe for concurrent access
// without locks.
type RepresentationCache struct {
	units  map[string]*CachedUnit
	order  []string
	sealed bool
}

// NewRepresentationCache creates a new empty cache.
func NewRepresentationCache() *RepresentationCache {
	return &RepresentationCache{
		units: make(map[string]*CachedUnit),
	}
}

// Put stores a unit. Must be called before Seal().
func (c *RepresentationCache) Put(unit *CachedUnit) {
	if c.sealed || unit == nil {
		return
	}
	if _, exists := c.units[unit.Path]; !exists {
		c.order = append(c.order, unit.Path)
	}
	c.units[unit.Path] = unit
}

// Seal marks the cache as read-only.
func (c *RepresentationCache) Seal() {
	c.sealed = true
}

// Get retrieves a cached unit. Returns (unit, true) on hit.
func (c *RepresentationCache) Get(path string) (*CachedUnit, bool) {
	u, ok := c.units[path]
	return u, ok
}

// Analyzed returns the successfully analyzed units in insertion order
func (c *RepresentationCache) Analyzed() []*CachedUnit {
	var out []*CachedUnit
	for _, p := range c.order {
		if u := c.units[p]; u.Err == nil && u.Representation != nil {
			out = append(out, u)
		}
	}
	return out
}

// Skipped returns the units that failed, in insertion order
func (c *RepresentationCache) Skipped() []*CachedUnit {
	var out []*CachedUnit
	for _, p := range c.order {
		if u := c.units[p]; u.Err != nil {
			out = append(out, u)
		}
	}
	return out
}

// Len returns the number of entries in the cache.
func (c *RepresentationCache) Len() int {
	return len(c.units)
}
