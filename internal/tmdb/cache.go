package tmdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lepinkainen/reelscout/internal/cache"
	rserrors "github.com/lepinkainen/reelscout/internal/errors"
	"github.com/lepinkainen/reelscout/internal/movie"
)

// ErrMovieNotFound is returned when TMDB (or the negative cache) has no
// document for a movie ID.
var ErrMovieNotFound = errors.New("movie not found")

// CachedDocument wraps a raw details document for caching. NotFound entries
// are negative cache markers.
type CachedDocument struct {
	Document string `json:"document"`
	NotFound bool   `json:"not_found"`
}

// CachedDiscoverResult wraps a discover ID list for caching.
type CachedDiscoverResult struct {
	IDs []string `json:"ids"`
}

// CachedMovieDocument fetches a details document through the SQLite cache.
// 404 answers are cached for cache.NegativeCacheTTL.
// Cache key format: movie_{id}
func (c *Client) CachedMovieDocument(ctx context.Context, id string) (string, bool, error) {
	cacheKey := "movie_" + strings.TrimSpace(id)

	result, fromCache, err := cache.GetOrFetchWithTTL(cache.DetailsTable, cacheKey, func() (*CachedDocument, error) {
		doc, fetchErr := c.MovieDocument(ctx, id)
		if fetchErr != nil {
			if rserrors.IsNotFound(fetchErr) {
				return &CachedDocument{NotFound: true}, nil
			}
			return nil, fetchErr
		}
		return &CachedDocument{Document: doc}, nil
	}, cache.SelectNegativeCacheTTL(func(r *CachedDocument) bool {
		return r != nil && r.NotFound
	}))
	if err != nil {
		return "", false, err
	}

	if result == nil || result.NotFound {
		return "", fromCache, fmt.Errorf("movie %s: %w", id, ErrMovieNotFound)
	}
	return result.Document, fromCache, nil
}

// CachedDiscover runs Discover through the SQLite cache. Empty result lists
// are not cached.
// Cache key format: discover_{genre}_{decade}_{language}_{limit}
func (c *Client) CachedDiscover(ctx context.Context, filters movie.Filters, limit int) ([]string, bool, error) {
	cacheKey := fmt.Sprintf("discover_%s_%s_%s_%d",
		normalizeKey(filters.Genre), normalizeKey(filters.Decade), normalizeKey(filters.Language), limit)

	result, fromCache, err := cache.GetOrFetchWithPolicy(cache.DiscoverTable, cacheKey, func() (*CachedDiscoverResult, error) {
		ids, fetchErr := c.Discover(ctx, filters, limit)
		if fetchErr != nil {
			return nil, fetchErr
		}
		return &CachedDiscoverResult{IDs: ids}, nil
	}, func(result *CachedDiscoverResult) bool {
		return result != nil && len(result.IDs) > 0
	})
	if err != nil {
		return nil, false, err
	}

	return result.IDs, fromCache, nil
}

// normalizeKey lowercases and collapses whitespace for cache keys.
func normalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
