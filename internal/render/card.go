// Package render formats movies as terminal cards.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/reelscout/internal/movie"
)

// DefaultWidth is the card width used when the caller has no terminal size.
const DefaultWidth = 72

const (
	// NoResults is shown when a search yields nothing.
	NoResults = "No movies found matching your criteria"
	// DescriptionUnavailable replaces an empty overview.
	DescriptionUnavailable = "No description available"
)

// Styles groups the lipgloss styles used for a card.
type Styles struct {
	Card     lipgloss.Style
	Title    lipgloss.Style
	Rating   lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Overview lipgloss.Style
	Status   lipgloss.Style
}

// DefaultStyles returns the standard card look.
func DefaultStyles() Styles {
	return Styles{
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		Rating: lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("110")).
			Bold(true),
		Value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Overview: lipgloss.NewStyle().
			Foreground(lipgloss.Color("248")).
			Italic(true),
		Status: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")),
	}
}

// Renderer draws movie cards at a fixed width.
type Renderer struct {
	styles Styles
	width  int
}

// New creates a Renderer. A non-positive width uses DefaultWidth.
func New(width int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Renderer{styles: DefaultStyles(), width: width}
}

// Width returns the outer card width.
func (r *Renderer) Width() int {
	return r.width
}

// Card renders a single movie.
func (r *Renderer) Card(m movie.Movie) string {
	inner := r.width - r.styles.Card.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	lines := []string{
		r.styles.Title.Render(m.Title()),
		r.styles.Rating.Render(formatRating(m.Rating())),
		r.field("Duration", m.Duration(), inner),
		r.field("Director", m.Director(), inner),
		r.field("Cast", m.Cast(), inner),
	}
	if m.PosterURL() != "" {
		lines = append(lines, r.field("Poster", m.PosterURL(), inner))
	}

	description := m.Description()
	if description == "" {
		description = DescriptionUnavailable
	}
	lines = append(lines, "", r.styles.Overview.Width(inner).Render(description))

	return r.styles.Card.Width(r.width - r.styles.Card.GetHorizontalBorderSize()).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (r *Renderer) field(label, value string, width int) string {
	prefix := r.styles.Label.Render(label + ": ")
	rest := width - lipgloss.Width(prefix)
	if rest < 1 {
		rest = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, prefix, r.styles.Value.Width(rest).Render(value))
}

// Status returns the summary line for a result set.
func (r *Renderer) Status(count int) string {
	return r.styles.Status.Render(StatusLine(count))
}

// WriteAll writes the status line followed by one card per movie.
func (r *Renderer) WriteAll(w io.Writer, movies []movie.Movie) error {
	if _, err := fmt.Fprintln(w, r.Status(len(movies))); err != nil {
		return err
	}
	for _, m := range movies {
		if _, err := fmt.Fprintln(w, r.Card(m)); err != nil {
			return err
		}
	}
	return nil
}

// StatusLine is the unstyled summary for count results.
func StatusLine(count int) string {
	switch count {
	case 0:
		return NoResults
	case 1:
		return "Found 1 movie"
	default:
		return fmt.Sprintf("Found %d movies", count)
	}
}

// formatRating shows a numeric rating out of ten and passes sentinels through.
func formatRating(rating string) string {
	if rating == movie.NotRated || strings.TrimSpace(rating) == "" {
		return movie.NotRated
	}
	return "★ " + rating + "/10"
}
