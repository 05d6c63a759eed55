// Package movie holds the display-ready movie record and the search filters
// used to ask the catalog for recommendations.
package movie

import (
	"encoding/json"
	"fmt"
)

// Sentinel values substituted for absent fields.
const (
	UnknownTitle        = "Unknown Title"
	NotRated            = "Not Rated"
	DurationUnavailable = "Duration unavailable"
	UnknownDirector     = "Unknown Director"
	CastUnavailable     = "Cast unavailable"
)

// Movie is the extracted representation of one catalog entry.
// Every field is always a defined string; absence is a sentinel.
type Movie struct {
	title       string
	rating      string
	duration    string
	director    string
	cast        string
	posterURL   string
	description string
}

// New creates a Movie, replacing empty values with their sentinels.
func New(title, rating, duration, director, cast, posterURL string) Movie {
	return Movie{
		title:     orDefault(title, UnknownTitle),
		rating:    orDefault(rating, NotRated),
		duration:  orDefault(duration, DurationUnavailable),
		director:  orDefault(director, UnknownDirector),
		cast:      orDefault(cast, CastUnavailable),
		posterURL: posterURL,
	}
}

// WithDescription returns a copy of m carrying the given description.
func (m Movie) WithDescription(description string) Movie {
	m.description = description
	return m
}

// Title returns the movie title.
func (m Movie) Title() string { return m.title }

// Rating returns the average vote as reported by the catalog.
func (m Movie) Rating() string { return m.rating }

// Duration returns the runtime ("120 mins") or a release-date fallback.
func (m Movie) Duration() string { return m.duration }

// Director returns the comma-joined director names or a fallback.
func (m Movie) Director() string { return m.director }

// Cast returns up to five comma-joined cast names or a fallback.
func (m Movie) Cast() string { return m.cast }

// PosterURL returns the absolute poster URL or an empty string.
func (m Movie) PosterURL() string { return m.posterURL }

// Description returns the overview text or an empty string.
func (m Movie) Description() string { return m.description }

func (m Movie) String() string {
	return fmt.Sprintf("Movie{title=%q, rating=%q, duration=%q, director=%q, cast=%q, posterURL=%q}",
		m.title, m.rating, m.duration, m.director, m.cast, m.posterURL)
}

type jsonMovie struct {
	Title       string `json:"title"`
	Rating      string `json:"rating"`
	Duration    string `json:"duration"`
	Director    string `json:"director"`
	Cast        string `json:"cast"`
	PosterURL   string `json:"poster_url"`
	Description string `json:"description"`
}

// MarshalJSON implements json.Marshaler.
func (m Movie) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonMovie{
		Title:       m.title,
		Rating:      m.rating,
		Duration:    m.duration,
		Director:    m.director,
		Cast:        m.cast,
		PosterURL:   m.posterURL,
		Description: m.description,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Missing fields get sentinels.
func (m *Movie) UnmarshalJSON(data []byte) error {
	var raw jsonMovie
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = New(raw.Title, raw.Rating, raw.Duration, raw.Director, raw.Cast, raw.PosterURL).
		WithDescription(raw.Description)
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
