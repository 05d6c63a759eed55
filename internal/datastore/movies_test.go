package datastore

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/lepinkainen/reelscout/internal/movie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var runAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func sampleMovies() []movie.Movie {
	return []movie.Movie{
		movie.New("Heat", "7.9", "170 mins", "Michael Mann", "Al Pacino, Robert De Niro", "https://img/heat.jpg").
			WithDescription("A heist."),
		movie.New("", "", "", "", "", ""),
	}
}

func TestMovieRecords(t *testing.T) {
	filters := movie.Filters{Genre: "Crime", Decade: "1990s"}
	records := MovieRecords(sampleMovies(), filters, runAt)

	require.Len(t, records, 2)
	assert.Equal(t, "2024-05-01T12:00:00Z", records[0]["run_at"])
	assert.Equal(t, 1, records[0]["position"])
	assert.Equal(t, "Heat", records[0]["title"])
	assert.Equal(t, "Al Pacino, Robert De Niro", records[0]["cast_names"])
	assert.Equal(t, "A heist.", records[0]["description"])
	assert.Equal(t, "Crime", records[0]["genre"])
	assert.Equal(t, "", records[0]["language"])

	assert.Equal(t, 2, records[1]["position"])
	assert.Equal(t, movie.UnknownTitle, records[1]["title"])
	assert.Equal(t, movie.NotRated, records[1]["rating"])
}

func TestMovieRecordsEmpty(t *testing.T) {
	assert.Empty(t, MovieRecords(nil, movie.Filters{}, runAt))
}

func TestExportMovies(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "export.db")

	require.NoError(t, ExportMovies(NewSQLiteStore(dbPath), sampleMovies(), movie.Filters{Genre: "Crime"}, runAt))
	require.NoError(t, ExportMovies(NewSQLiteStore(dbPath), sampleMovies()[:1], movie.Filters{}, runAt.Add(time.Hour)))

	store := NewSQLiteStore(dbPath)
	require.NoError(t, store.Connect())
	defer func() { _ = store.Close() }()

	n, err := store.QueryCount(MoviesTable)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var title, genre string
	err = store.db.QueryRow(
		"SELECT title, genre FROM recommendations WHERE position = 1 ORDER BY run_at LIMIT 1",
	).Scan(&title, &genre)
	require.NoError(t, err)
	assert.Equal(t, "Heat", title)
	assert.Equal(t, "Crime", genre)
}

type failingStore struct {
	connectErr error
	closed     bool
}

func (f *failingStore) Connect() error                             { return f.connectErr }
func (f *failingStore) CreateTable(string) error                   { return errors.New("no tables here") }
func (f *failingStore) BatchInsert(string, []map[string]any) error { return nil }
func (f *failingStore) Close() error                               { f.closed = true; return nil }

func TestExportMoviesErrors(t *testing.T) {
	connectFail := &failingStore{connectErr: errors.New("unreachable")}
	err := ExportMovies(connectFail, sampleMovies(), movie.Filters{}, runAt)
	require.Error(t, err)
	assert.False(t, connectFail.closed)

	schemaFail := &failingStore{}
	err = ExportMovies(schemaFail, sampleMovies(), movie.Filters{}, runAt)
	assert.EqualError(t, err, "no tables here")
	assert.True(t, schemaFail.closed)
}
