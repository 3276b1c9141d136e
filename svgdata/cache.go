package svgdata

import (
	"crypto/sha256"

	"github.com/hashicorp/golang-lru/v2"
)

// Cache memoizes Parse results keyed by content digest. Watch-mode
// rebuilds re-read mostly unchanged trees, and parsing is the expensive
// step, so parses are shared across builds.
//
// Cached *SVG values are shared between callers and must be treated as
// read-only.
type Cache struct {
	lru *lru.Cache[[sha256.Size]byte, *SVG]
}

// NewCache returns a Cache holding up to size parsed documents.
func NewCache(size int) (*Cache, error) {
	l, err := lru.New[[sha256.Size]byte, *SVG](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l}, nil
}

// Parse returns the parsed form of markup, from cache when possible.
// Failures are not cached.
func (c *Cache) Parse(markup []byte) (*SVG, error) {
	key := sha256.Sum256(markup)
	if svg, ok := c.lru.Get(key); ok {
		return svg, nil
	}
	svg, err := Parse(markup)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, svg)
	return svg, nil
}

// Len reports the number of cached documents.
func (c *Cache) Len() int {
	return c.lru.Len()
}
