package movie

import "strings"

// Filter keys used in the filter set.
const (
	FilterGenre    = "genre"
	FilterDecade   = "decade"
	FilterLanguage = "language"
)

// Filters are the optional recommendation criteria. An empty field means
// the criterion is not applied.
type Filters struct {
	Genre    string
	Decade   string
	Language string
}

// Set returns the non-empty filters keyed by FilterGenre, FilterDecade and
// FilterLanguage. Absent filters are omitted rather than mapped to a wildcard.
func (f Filters) Set() map[string]string {
	set := make(map[string]string, 3)
	if v := strings.TrimSpace(f.Genre); v != "" {
		set[FilterGenre] = v
	}
	if v := strings.TrimSpace(f.Decade); v != "" {
		set[FilterDecade] = v
	}
	if v := strings.TrimSpace(f.Language); v != "" {
		set[FilterLanguage] = v
	}
	return set
}

// FromSet rebuilds Filters from a filter set produced by Set.
func FromSet(set map[string]string) Filters {
	return Filters{
		Genre:    set[FilterGenre],
		Decade:   set[FilterDecade],
		Language: set[FilterLanguage],
	}
}

// IsEmpty reports whether no filter is applied.
func (f Filters) IsEmpty() bool {
	return len(f.Set()) == 0
}
