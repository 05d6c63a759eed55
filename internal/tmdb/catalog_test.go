package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lepinkainen/reelscout/internal/movie"
	"github.com/lepinkainen/reelscout/internal/moviecache"
	"github.com/lepinkainen/reelscout/internal/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ recommend.Searcher       = (*Catalog)(nil)
	_ recommend.DetailsFetcher = (*Catalog)(nil)
)

func catalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/discover/movie":
			_, _ = w.Write([]byte(`{"results":[{"id":1},{"id":2},{"id":3}]}`))
		case "/movie/1":
			_, _ = w.Write([]byte(`{"title":"First","vote_average":6.1,"runtime":90,"credits":{"cast":[{"name":"A"}],"crew":[{"job":"Director","name":"D"}]}}`))
		case "/movie/3":
			_, _ = w.Write([]byte(`{"title":"Third","release_date":"1999-03-31"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCatalogSearch(t *testing.T) {
	catalog := NewCatalog(newTestClient(t, catalogServer(t)), WithSearchLimit(2))

	ids := catalog.Search(context.Background(), movie.Filters{})
	assert.Equal(t, []string{"1", "2"}, ids)
}

func TestCatalogSearchFailureIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	ids := NewCatalog(newTestClient(t, server)).Search(context.Background(), movie.Filters{Genre: "Drama"})
	require.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestCatalogFetchDetails(t *testing.T) {
	catalog := NewCatalog(newTestClient(t, catalogServer(t)))

	doc, ok := catalog.FetchDetails(context.Background(), "1")
	assert.True(t, ok)
	assert.Contains(t, doc, `"title":"First"`)

	doc, ok = catalog.FetchDetails(context.Background(), "2")
	assert.False(t, ok)
	assert.Empty(t, doc)
}

func TestCatalogWithCache(t *testing.T) {
	setupTMDBCache(t)
	catalog := NewCatalog(newTestClient(t, catalogServer(t)), WithCache(true))

	ids := catalog.Search(context.Background(), movie.Filters{})
	assert.Equal(t, []string{"1", "2", "3"}, ids)

	_, ok := catalog.FetchDetails(context.Background(), "2")
	assert.False(t, ok)
	doc, ok := catalog.FetchDetails(context.Background(), "3")
	assert.True(t, ok)
	assert.Contains(t, doc, "Third")
}

func TestCatalogDrivesRecommendations(t *testing.T) {
	catalog := NewCatalog(newTestClient(t, catalogServer(t)))
	svc := recommend.NewService(catalog, catalog, moviecache.New(nil))

	movies := svc.GetRecommendedMovies(context.Background(), movie.Filters{Genre: "Action"})

	require.Len(t, movies, 2)
	assert.Equal(t, "First", movies[0].Title())
	assert.Equal(t, "90 mins", movies[0].Duration())
	assert.Equal(t, "D", movies[0].Director())
	assert.Equal(t, "Third", movies[1].Title())
	assert.Equal(t, "Released: 1999-03-31", movies[1].Duration())
	assert.Equal(t, movie.UnknownDirector, movies[1].Director())
}
