// Package recommend turns search filters into an ordered list of movies,
// combining the catalog collaborators with the movie cache.
package recommend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lepinkainen/reelscout/internal/extract"
	"github.com/lepinkainen/reelscout/internal/movie"
	"github.com/lepinkainen/reelscout/internal/moviecache"
)

// DefaultLimit is the maximum number of movies returned per call.
const DefaultLimit = 10

// Searcher finds catalog IDs matching filters, most popular first.
// Failures are reported as an empty slice.
type Searcher interface {
	Search(ctx context.Context, filters movie.Filters) []string
}

// DetailsFetcher returns the raw details document for a catalog ID.
// The boolean is false when no document could be obtained.
type DetailsFetcher interface {
	FetchDetails(ctx context.Context, id string) (string, bool)
}

// Service produces movie recommendations.
type Service struct {
	search  Searcher
	details DetailsFetcher
	cache   *moviecache.Cache
	parser  extract.Parser
	logger  *slog.Logger
	limit   int
}

// Option configures a Service.
type Option func(*Service)

// WithParser sets the parser used to build movies from documents.
func WithParser(p extract.Parser) Option {
	return func(s *Service) {
		s.parser = p
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLimit lowers the number of catalog IDs processed per call. Values
// outside 1..DefaultLimit are clamped.
func WithLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.limit = min(limit, DefaultLimit)
		}
	}
}

// NewService creates a Service. A nil cache gets a fresh one owned by the
// service.
func NewService(search Searcher, details DetailsFetcher, cache *moviecache.Cache, opts ...Option) *Service {
	s := &Service{
		search:  search,
		details: details,
		cache:   cache,
		logger:  slog.Default(),
		limit:   DefaultLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = moviecache.New(s.logger)
	}
	return s
}

// Cache returns the cache used by the service.
func (s *Service) Cache() *moviecache.Cache {
	return s.cache
}

// GetRecommendedMovies returns up to the configured limit of movies matching
// filters, in the order supplied by the searcher. IDs whose details cannot
// be fetched or extracted are left out. It never fails; the worst case is an
// empty slice.
func (s *Service) GetRecommendedMovies(ctx context.Context, filters movie.Filters) []movie.Movie {
	filters = movie.FromSet(filters.Set())
	s.logger.Info("Getting recommendations",
		"genre", filters.Genre, "decade", filters.Decade, "language", filters.Language)

	ids := s.search.Search(ctx, filters)
	if len(ids) > s.limit {
		ids = ids[:s.limit]
	}
	s.logger.Debug("Search returned catalog IDs", "count", len(ids), "ids", ids)

	movies := make([]movie.Movie, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("Recommendation cancelled", "processed", len(movies), "error", err)
			break
		}

		if cached, ok := s.cache.Get(id); ok {
			s.logger.Debug("Found movie in cache", "id", id, "title", cached.Title())
			movies = append(movies, cached)
			continue
		}

		m, ok, err := s.load(ctx, id)
		if err != nil {
			s.logger.Warn("Skipping movie", "id", id, "error", err)
			continue
		}
		if !ok {
			s.logger.Debug("No details document", "id", id)
			continue
		}

		s.cache.Put(id, m)
		movies = append(movies, m)
	}

	s.logger.Info("Returning recommendations", "count", len(movies))
	return movies
}

// load fetches and extracts one movie. A panic during extraction is turned
// into an error so one bad document cannot fail the whole call.
func (s *Service) load(ctx context.Context, id string) (m movie.Movie, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extracting movie %s: %v", id, r)
		}
	}()

	doc, found := s.details.FetchDetails(ctx, id)
	if !found {
		return movie.Movie{}, false, nil
	}

	m, err = s.parser.Parse(doc)
	if err != nil {
		return movie.Movie{}, false, fmt.Errorf("extracting movie %s: %w", id, err)
	}
	s.logger.Debug("Parsed movie", "id", id, "title", m.Title())
	return m, true, nil
}
