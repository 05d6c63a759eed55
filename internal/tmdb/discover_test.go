package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/lepinkainen/reelscout/internal/movie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const discoverBody = `{"page":1,"results":[{"id":949,"title":"Heat"},{"id":603,"title":"The Matrix"},{"id":11,"title":"Star Wars"}],"total_results":3}`

func TestDiscoverParams(t *testing.T) {
	params := discoverParams(movie.Filters{Genre: "Sci-Fi", Decade: "1990", Language: "English"})

	assert.Equal(t, "popularity.desc", params.Get("sort_by"))
	assert.Equal(t, "false", params.Get("include_adult"))
	assert.Equal(t, "878", params.Get("with_genres"))
	assert.Equal(t, "1990-01-01", params.Get("primary_release_date.gte"))
	assert.Equal(t, "1999-12-31", params.Get("primary_release_date.lte"))
	assert.Equal(t, "en", params.Get("with_original_language"))
}

func TestDiscoverParamsSkipsUnknownValues(t *testing.T) {
	params := discoverParams(movie.Filters{Genre: "Sport", Decade: "soon", Language: "Elvish"})

	for _, key := range []string{"with_genres", "primary_release_date.gte", "primary_release_date.lte", "with_original_language"} {
		assert.False(t, params.Has(key), key)
	}
	assert.Equal(t, "popularity.desc", params.Get("sort_by"))
}

func TestDiscover(t *testing.T) {
	var got url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discover/movie", r.URL.Path)
		got = r.URL.Query()
		_, _ = w.Write([]byte(discoverBody))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	ids, err := client.Discover(context.Background(), movie.Filters{Genre: "Crime"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"949", "603"}, ids)
	assert.Equal(t, "test-key", got.Get("api_key"))
	assert.Equal(t, "80", got.Get("with_genres"))
}

func TestDiscoverNoLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(discoverBody))
	}))
	defer server.Close()

	ids, err := newTestClient(t, server).Discover(context.Background(), movie.Filters{}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"949", "603", "11"}, ids)
}

func TestDiscoverBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server).Discover(context.Background(), movie.Filters{}, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode discover response")
}

func TestMovieDocument(t *testing.T) {
	const doc = `{"id":949,"title":"Heat","credits":{"cast":[],"crew":[]}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/949", r.URL.Path)
		assert.Equal(t, "credits,keywords", r.URL.Query().Get("append_to_response"))
		_, _ = w.Write([]byte(doc))
	}))
	defer server.Close()

	got, err := newTestClient(t, server).MovieDocument(context.Background(), "949")
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestMovieDocumentEmptyID(t *testing.T) {
	_, err := NewClient("key").MovieDocument(context.Background(), "  ")
	assert.Error(t, err)
}
