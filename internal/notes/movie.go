package notes

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/lepinkainen/reelscout/internal/fileutil"
	"github.com/lepinkainen/reelscout/internal/movie"
)

// Options controls how a movie note is built and written.
type Options struct {
	// Filters are recorded as tags.
	Filters movie.Filters
	// Poster overrides the poster reference, e.g. a local file.
	Poster string
	// Overwrite replaces existing notes, keeping their tags.
	Overwrite bool
}

// FromMovie builds the note for m.
func FromMovie(m movie.Movie, opts Options) *Note {
	fm := NewFrontmatter()
	fm.Set("title", m.Title())
	fm.Set("type", "movie")
	if rating, err := strconv.ParseFloat(m.Rating(), 64); err == nil {
		fm.Set("rating", rating)
	}
	fm.Set("duration", m.Duration())
	fm.Set("director", m.Director())
	fm.Set("cast", m.Cast())

	poster := opts.Poster
	if poster == "" {
		poster = m.PosterURL()
	}
	fm.Set("poster", poster)

	tags := NewTagSet()
	tags.Add("movie")
	tags.Add("reelscout")
	if opts.Filters.Genre != "" {
		tags.AddFormat("genre/%s", opts.Filters.Genre)
	}
	if opts.Filters.Decade != "" {
		tags.AddFormat("decade/%ss", strings.TrimSuffix(opts.Filters.Decade, "s"))
	}
	if opts.Filters.Language != "" {
		tags.AddFormat("language/%s", opts.Filters.Language)
	}
	fm.Set("tags", tags.Sorted())

	return &Note{Frontmatter: fm, Body: movieBody(m, poster)}
}

func movieBody(m movie.Movie, poster string) string {
	var b strings.Builder

	if poster != "" {
		fmt.Fprintf(&b, "![](%s)\n\n", poster)
	}
	if m.Description() != "" {
		b.WriteString(m.Description())
		b.WriteString("\n\n")
	}

	b.WriteString("## Credits\n\n")
	fmt.Fprintf(&b, "- **Director:** %s\n", m.Director())
	fmt.Fprintf(&b, "- **Cast:** %s\n", m.Cast())
	fmt.Fprintf(&b, "- **Duration:** %s\n", m.Duration())
	fmt.Fprintf(&b, "- **Rating:** %s\n", m.Rating())

	return b.String()
}

// Write builds and writes the note for m into dir. When overwriting an
// existing note, tags added by hand are preserved. It returns the note path
// and whether it was written.
func Write(dir string, m movie.Movie, opts Options) (string, bool, error) {
	path := fileutil.MarkdownFilePath(m.Title(), dir)
	note := FromMovie(m, opts)

	if fileutil.FileExists(path) {
		if !opts.Overwrite {
			slog.Debug("Note exists, skipping", "path", path)
			return path, false, nil
		}
		if existing, err := readNote(path); err != nil {
			slog.Warn("Could not parse existing note, replacing it", "path", path, "error", err)
		} else {
			note.Frontmatter.Set("tags", MergeTags(existing.Frontmatter.GetStringArray("tags"), note.Frontmatter.GetStringArray("tags")))
		}
	}

	content, err := note.Build()
	if err != nil {
		return path, false, err
	}

	written, err := fileutil.WriteFileWithOverwrite(path, content, 0o644, opts.Overwrite)
	if err != nil {
		return path, false, err
	}
	if written {
		slog.Info("Wrote movie note", "path", path)
	}
	return path, written, nil
}

// WriteAll writes one note per movie and returns how many were written.
func WriteAll(dir string, movies []movie.Movie, opts Options, posters map[string]string) (int, error) {
	count := 0
	for _, m := range movies {
		o := opts
		if p, ok := posters[m.Title()]; ok {
			o.Poster = p
		}
		_, written, err := Write(dir, m, o)
		if err != nil {
			return count, fmt.Errorf("writing note for %q: %w", m.Title(), err)
		}
		if written {
			count++
		}
	}
	return count, nil
}

func readNote(path string) (*Note, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseMarkdown(content)
}
