package tmdb

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// genreIDs maps the genre names offered to users to TMDB genre IDs.
var genreIDs = map[string]int{
	"Action":          28,
	"Adventure":       12,
	"Animation":       16,
	"Comedy":          35,
	"Crime":           80,
	"Documentary":     99,
	"Drama":           18,
	"Family":          10751,
	"Fantasy":         14,
	"History":         36,
	"Horror":          27,
	"Music":           10402,
	"Mystery":         9648,
	"Romance":         10749,
	"Sci-Fi":          878,
	"Science Fiction": 878,
	"TV Movie":        10770,
	"Thriller":        53,
	"War":             10752,
	"Western":         37,
}

// languageCodes maps language names to ISO 639-1 codes.
var languageCodes = map[string]string{
	"English":    "en",
	"Hindi":      "hi",
	"Spanish":    "es",
	"French":     "fr",
	"German":     "de",
	"Italian":    "it",
	"Japanese":   "ja",
	"Korean":     "ko",
	"Chinese":    "zh",
	"Russian":    "ru",
	"Portuguese": "pt",
	"Arabic":     "ar",
	"Turkish":    "tr",
}

const (
	firstDecade = 1930
	lastDecade  = 2020
)

// Genres returns the supported genre names, sorted.
func Genres() []string {
	return sortedKeys(genreIDs)
}

// Languages returns the supported language names, sorted.
func Languages() []string {
	return sortedKeys(languageCodes)
}

// Decades returns the supported decades, newest first.
func Decades() []string {
	decades := make([]string, 0, (lastDecade-firstDecade)/10+1)
	for d := lastDecade; d >= firstDecade; d -= 10 {
		decades = append(decades, strconv.Itoa(d))
	}
	return decades
}

// GenreID looks up a genre name, case-insensitively.
func GenreID(name string) (int, bool) {
	name = strings.TrimSpace(name)
	if id, ok := genreIDs[name]; ok {
		return id, true
	}
	for k, id := range genreIDs {
		if strings.EqualFold(k, name) {
			return id, true
		}
	}
	return 0, false
}

// LanguageCode resolves a language name to its ISO code. Two-letter
// lowercase codes are accepted as-is.
func LanguageCode(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if code, ok := languageCodes[name]; ok {
		return code, true
	}
	for k, code := range languageCodes {
		if strings.EqualFold(k, name) {
			return code, true
		}
	}
	if len(name) == 2 && strings.ToLower(name) == name && name[0] >= 'a' && name[0] <= 'z' && name[1] >= 'a' && name[1] <= 'z' {
		return name, true
	}
	return "", false
}

// DecadeRange returns the first and last release dates of a decade such as
// "1990" or "1990s".
func DecadeRange(decade string) (string, string, error) {
	decade = strings.TrimSuffix(strings.TrimSpace(decade), "s")
	year, err := strconv.Atoi(decade)
	if err != nil {
		return "", "", fmt.Errorf("invalid decade %q: %w", decade, err)
	}
	if year <= 0 {
		return "", "", fmt.Errorf("invalid decade %q", decade)
	}
	return fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year+9), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
