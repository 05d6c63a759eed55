package extract

import (
	"strings"

	"github.com/lepinkainen/reelscout/internal/movie"
)

const (
	// castLimit is the number of cast names collected before stopping.
	castLimit = 5

	directorJob = `"job":"Director"`

	productionPrefix = "Production: "
	genresPrefix     = "Genres: "
)

// Director resolves the director names from the "crew" array. A missing or
// unterminated crew array yields movie.UnknownDirector. When the crew names
// no director it falls back to the production companies and finally to
// movie.UnknownDirector.
func Director(doc string) string {
	names, ok := memberNames(doc, "crew", 0, func(member string) bool {
		return strings.Contains(member, directorJob)
	})
	if !ok {
		return movie.UnknownDirector
	}
	if len(names) > 0 {
		return strings.Join(names, ", ")
	}

	if companies, ok := namedFallback(doc, "production_companies"); ok {
		return productionPrefix + companies
	}
	return movie.UnknownDirector
}

// Cast resolves up to five names from the "cast" array. Exactly five names
// get a TruncationMarker since more may exist. A missing or unterminated
// cast array yields movie.CastUnavailable. An empty cast falls back to the
// genres and finally to movie.CastUnavailable.
func Cast(doc string) string {
	names, ok := memberNames(doc, "cast", castLimit, nil)
	if !ok {
		return movie.CastUnavailable
	}
	if len(names) > 0 {
		joined := strings.Join(names, ", ")
		if len(names) == castLimit {
			joined += TruncationMarker
		}
		return joined
	}

	if genres, ok := namedFallback(doc, "genres"); ok {
		return genresPrefix + genres
	}
	return movie.CastUnavailable
}

// memberNames walks the objects of the array stored under key and collects
// their "name" strings. limit <= 0 means no limit; keep filters members.
// ok is false when key is absent, not an array or never closed.
func memberNames(doc, key string, limit int, keep func(member string) bool) (names []string, ok bool) {
	v := locate(doc, key)
	if v.kind != KindArray {
		return nil, false
	}
	end := MatchClosing(doc, v.start, '[', ']')
	if end == NotFound {
		return nil, false
	}
	members := doc[v.start+1 : end]

	pos := 0
	for limit <= 0 || len(names) < limit {
		member, next, ok := nextObject(members, pos)
		if !ok {
			break
		}
		pos = next
		if keep != nil && !keep(member) {
			continue
		}
		if name, ok := stringField(member, "name"); ok {
			names = append(names, name)
		}
	}
	return names, true
}

// namedFallback projects the array under key, rejecting the generic
// MultipleItems summary.
func namedFallback(doc, key string) (string, bool) {
	v := locate(doc, key)
	if v.kind != KindArray {
		return "", false
	}
	projected := ProjectArray(doc, v.start)
	if projected == MultipleItems {
		return "", false
	}
	return projected, true
}
