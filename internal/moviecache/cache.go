// Package moviecache memoizes extracted movie records by catalog ID.
package moviecache

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/lepinkainen/reelscout/internal/movie"
)

// Cache maps catalog IDs to already-extracted movies. Entries are never
// evicted. Each operation is safe for concurrent use, but a lookup followed
// by a Put is not atomic: concurrent callers may both miss and both store an
// equivalent value.
type Cache struct {
	logger  *slog.Logger
	mu      sync.RWMutex
	entries map[string]movie.Movie
}

// New creates an empty cache. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		logger:  logger.With("component", "moviecache"),
		entries: make(map[string]movie.Movie),
	}
}

// Get returns the cached movie for id.
func (c *Cache) Get(id string) (movie.Movie, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.entries[id]
	return m, ok
}

// Put stores m under id, replacing any previous entry.
func (c *Cache) Put(id string, m movie.Movie) {
	c.mu.Lock()
	_, replaced := c.entries[id]
	c.entries[id] = m
	c.mu.Unlock()

	if replaced {
		c.logger.Debug("Replaced cached movie", "id", id, "title", m.Title())
	}
}

// Len returns the number of cached movies.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns the cached IDs in sorted order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))
	for id := range c.entries {
		keys = append(keys, id)
	}
	c.mu.RUnlock()

	sort.Strings(keys)
	return keys
}
