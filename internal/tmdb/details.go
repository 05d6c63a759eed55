package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// MovieDocument fetches the raw details document for a movie, including
// credits and keywords.
func (c *Client) MovieDocument(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("movie document: empty id")
	}

	params := url.Values{}
	params.Set("append_to_response", "credits,keywords")

	body, err := c.getBody(ctx, c.endpoint("/movie/"+url.PathEscape(id), params))
	if err != nil {
		return "", fmt.Errorf("movie document %s: %w", id, err)
	}
	return string(body), nil
}
