package cmd

import (
	"fmt"
	"strings"

	"github.com/lepinkainen/reelscout/internal/tmdb"
)

// OptionsCmd lists the values accepted by the recommend filters
type OptionsCmd struct{}

func (o *OptionsCmd) Run() error {
	sections := []struct {
		name   string
		values []string
	}{
		{"Genres", tmdb.Genres()},
		{"Decades", tmdb.Decades()},
		{"Languages", tmdb.Languages()},
	}

	for _, s := range sections {
		if _, err := fmt.Fprintf(stdout, "%s:\n  %s\n", s.name, strings.Join(s.values, ", ")); err != nil {
			return err
		}
	}
	return nil
}
