package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/lepinkainen/reelscout/internal/movie"
)

type discoverResponse struct {
	Page    int `json:"page"`
	Results []struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	} `json:"results"`
}

// discoverParams translates filters into /discover/movie query values.
// Unknown genres, languages and malformed decades are logged and left out.
func discoverParams(filters movie.Filters) url.Values {
	params := url.Values{}
	params.Set("sort_by", "popularity.desc")
	params.Set("include_adult", "false")

	if filters.Genre != "" {
		if id, ok := GenreID(filters.Genre); ok {
			params.Set("with_genres", strconv.Itoa(id))
		} else {
			slog.Warn("Unknown genre, ignoring filter", "genre", filters.Genre)
		}
	}

	if filters.Decade != "" {
		from, to, err := DecadeRange(filters.Decade)
		if err != nil {
			slog.Warn("Invalid decade, ignoring filter", "decade", filters.Decade, "error", err)
		} else {
			params.Set("primary_release_date.gte", from)
			params.Set("primary_release_date.lte", to)
		}
	}

	if filters.Language != "" {
		if code, ok := LanguageCode(filters.Language); ok {
			params.Set("with_original_language", code)
		} else {
			slog.Warn("Unknown language, ignoring filter", "language", filters.Language)
		}
	}

	return params
}

// Discover returns up to limit movie IDs matching filters, most popular first.
func (c *Client) Discover(ctx context.Context, filters movie.Filters, limit int) ([]string, error) {
	body, err := c.getBody(ctx, c.endpoint("/discover/movie", discoverParams(filters)))
	if err != nil {
		return nil, fmt.Errorf("discover movies: %w", err)
	}

	var resp discoverResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode discover response: %w", err)
	}

	ids := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		if limit > 0 && len(ids) >= limit {
			break
		}
		ids = append(ids, strconv.Itoa(r.ID))
	}
	return ids, nil
}
