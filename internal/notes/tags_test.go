package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"movie", "movie"},
		{"#movie", "movie"},
		{"  Science Fiction  ", "Science-Fiction"},
		{"genre/Sci-Fi", "genre/Sci-Fi"},
		{"Rock & Roll", "Rock-and-Roll"},
		{"a  --  b", "a-b"},
		{"-edge-", "edge"},
		{"#", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTag(tt.input))
		})
	}
}

func TestTagSet(t *testing.T) {
	ts := NewTagSet()
	ts.Add("movie")
	ts.Add("#movie")
	ts.Add("")
	ts.AddFormat("decade/%ss", "1990")

	assert.Equal(t, []string{"decade/1990s", "movie"}, ts.Sorted())
}

func TestMergeTags(t *testing.T) {
	merged := MergeTags([]string{"favourite", "movie"}, []string{"movie", "genre/Crime", " "})
	assert.Equal(t, []string{"favourite", "genre/Crime", "movie"}, merged)
	assert.Empty(t, MergeTags(nil, nil))
}

func TestTagsFromAny(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, TagsFromAny([]string{"a", "", "b"}))
	assert.Equal(t, []string{"a", "c"}, TagsFromAny([]any{"a", 1, "c", ""}))
	assert.Equal(t, []string{}, TagsFromAny(nil))
	assert.Equal(t, []string{}, TagsFromAny("movie"))
}
