package extract

import (
	"errors"
	"strings"

	"github.com/lepinkainen/reelscout/internal/movie"
)

// DefaultImageBaseURL is prefixed to poster paths.
const DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"

// ErrEmptyDocument is returned when there is nothing to extract from.
var ErrEmptyDocument = errors.New("extract: empty document")

// Parser builds movie records from raw details documents.
type Parser struct {
	// ImageBaseURL is prefixed to "poster_path". Empty means DefaultImageBaseURL.
	ImageBaseURL string
}

// ParseMovie parses doc with the default Parser.
func ParseMovie(doc string) (movie.Movie, error) {
	return Parser{}.Parse(doc)
}

// Parse extracts every movie field from doc.
func (p Parser) Parse(doc string) (movie.Movie, error) {
	if strings.TrimSpace(doc) == "" {
		return movie.Movie{}, ErrEmptyDocument
	}

	m := movie.New(
		present(Value(doc, "title")),
		present(Value(doc, "vote_average")),
		duration(doc),
		Director(doc),
		Cast(doc),
		p.posterURL(doc),
	)
	return m.WithDescription(present(Value(doc, "overview"))), nil
}

func (p Parser) posterURL(doc string) string {
	path := present(Value(doc, "poster_path"))
	if path == "" {
		return ""
	}
	base := p.ImageBaseURL
	if base == "" {
		base = DefaultImageBaseURL
	}
	return strings.TrimSuffix(base, "/") + path
}

// duration prefers the runtime and falls back to the release date.
func duration(doc string) string {
	if runtime := present(Value(doc, "runtime")); runtime != "" {
		return runtime + " mins"
	}
	if released := present(Value(doc, "release_date")); released != "" {
		return "Released: " + released
	}
	return movie.DurationUnavailable
}

// present maps NotAvailable to the empty string so movie.New can apply its
// own sentinel.
func present(value string) string {
	if value == NotAvailable {
		return ""
	}
	return value
}
