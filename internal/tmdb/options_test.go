package tmdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenres(t *testing.T) {
	genres := Genres()
	assert.IsIncreasing(t, genres)
	assert.Contains(t, genres, "Action")
	assert.Contains(t, genres, "Sci-Fi")
	assert.Len(t, genres, len(genreIDs))
}

func TestGenreID(t *testing.T) {
	tests := []struct {
		name string
		want int
		ok   bool
	}{
		{"Action", 28, true},
		{"sci-fi", 878, true},
		{"Science Fiction", 878, true},
		{" Drama ", 18, true},
		{"Sport", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := GenreID(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestLanguageCode(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"French", "fr", true},
		{"korean", "ko", true},
		{"sv", "sv", true},
		{"SV", "", false},
		{"Klingon", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := LanguageCode(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, code)
		})
	}
	assert.IsIncreasing(t, Languages())
}

func TestDecades(t *testing.T) {
	decades := Decades()
	require.Len(t, decades, 10)
	assert.Equal(t, "2020", decades[0])
	assert.Equal(t, "1930", decades[len(decades)-1])
}

func TestDecadeRange(t *testing.T) {
	from, to, err := DecadeRange("1990")
	require.NoError(t, err)
	assert.Equal(t, "1990-01-01", from)
	assert.Equal(t, "1999-12-31", to)

	from, to, err = DecadeRange("1980s")
	require.NoError(t, err)
	assert.Equal(t, "1980-01-01", from)
	assert.Equal(t, "1989-12-31", to)

	_, _, err = DecadeRange("nineties")
	assert.Error(t, err)
	_, _, err = DecadeRange("0")
	assert.Error(t, err)
}
