package datastore

import (
	"fmt"
	"time"

	"github.com/lepinkainen/reelscout/internal/movie"
)

// MoviesTable holds one row per exported recommendation.
const MoviesTable = "recommendations"

// MoviesSchema is the table exported recommendations are written to.
const MoviesSchema = `CREATE TABLE IF NOT EXISTS recommendations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_at TEXT NOT NULL,
	position INTEGER NOT NULL,
	title TEXT NOT NULL,
	rating TEXT,
	duration TEXT,
	director TEXT,
	cast_names TEXT,
	poster_url TEXT,
	description TEXT,
	genre TEXT,
	decade TEXT,
	language TEXT
)`

// MovieRecords converts movies into rows for MoviesTable. position is 1-based.
func MovieRecords(movies []movie.Movie, filters movie.Filters, runAt time.Time) []map[string]any {
	stamp := runAt.UTC().Format(time.RFC3339)
	records := make([]map[string]any, 0, len(movies))
	for i, m := range movies {
		records = append(records, map[string]any{
			"run_at":      stamp,
			"position":    i + 1,
			"title":       m.Title(),
			"rating":      m.Rating(),
			"duration":    m.Duration(),
			"director":    m.Director(),
			"cast_names":  m.Cast(),
			"poster_url":  m.PosterURL(),
			"description": m.Description(),
			"genre":       filters.Genre,
			"decade":      filters.Decade,
			"language":    filters.Language,
		})
	}
	return records
}

// ExportMovies connects store, ensures the schema exists and appends movies
// as a single run. The store is closed before returning.
func ExportMovies(store Store, movies []movie.Movie, filters movie.Filters, runAt time.Time) (err error) {
	if err := store.Connect(); err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close store: %w", cerr)
		}
	}()

	if err := store.CreateTable(MoviesSchema); err != nil {
		return err
	}
	return store.BatchInsert(MoviesTable, MovieRecords(movies, filters, runAt))
}
