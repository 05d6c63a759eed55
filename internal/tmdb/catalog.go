package tmdb

import (
	"context"
	"log/slog"

	"github.com/lepinkainen/reelscout/internal/movie"
)

// Catalog adapts a Client to the recommendation service. It never returns
// errors: failures are logged and reported as no results.
type Catalog struct {
	client   *Client
	useCache bool
	limit    int
	logger   *slog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithCache routes lookups through the SQLite cache.
func WithCache(enabled bool) CatalogOption {
	return func(c *Catalog) {
		c.useCache = enabled
	}
}

// WithSearchLimit caps the number of IDs requested from discover.
func WithSearchLimit(limit int) CatalogOption {
	return func(c *Catalog) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

// WithCatalogLogger sets the logger.
func WithCatalogLogger(logger *slog.Logger) CatalogOption {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCatalog creates a Catalog backed by client.
func NewCatalog(client *Client, opts ...CatalogOption) *Catalog {
	c := &Catalog{
		client: client,
		limit:  10,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "tmdb")
	return c
}

// Search returns catalog IDs matching filters, most popular first.
func (c *Catalog) Search(ctx context.Context, filters movie.Filters) []string {
	var (
		ids       []string
		fromCache bool
		err       error
	)
	if c.useCache {
		ids, fromCache, err = c.client.CachedDiscover(ctx, filters, c.limit)
	} else {
		ids, err = c.client.Discover(ctx, filters, c.limit)
	}
	if err != nil {
		c.logger.Error("Movie search failed", "error", err)
		return []string{}
	}
	c.logger.Debug("Movie search finished", "count", len(ids), "from_cache", fromCache)
	return ids
}

// FetchDetails returns the raw details document for id.
func (c *Catalog) FetchDetails(ctx context.Context, id string) (string, bool) {
	var (
		doc       string
		fromCache bool
		err       error
	)
	if c.useCache {
		doc, fromCache, err = c.client.CachedMovieDocument(ctx, id)
	} else {
		doc, err = c.client.MovieDocument(ctx, id)
	}
	if err != nil {
		c.logger.Warn("Fetching movie details failed", "id", id, "error", err)
		return "", false
	}
	c.logger.Debug("Fetched movie details", "id", id, "from_cache", fromCache)
	return doc, true
}
