package cache

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"
)

// cacheSources maps CLI source names to cache tables
var cacheSources = map[string][]string{
	"details":  {DetailsTable},
	"discover": {DiscoverTable},
	"all":      {DetailsTable, DiscoverTable},
}

// InvalidateCacheCmd represents the cache invalidate subcommand
type InvalidateCacheCmd struct {
	Source string `arg:"" help:"Cache source to invalidate: details, discover, all" enum:"details,discover,all" required:""`
}

func (i *InvalidateCacheCmd) Run() error {
	cacheDB := viper.GetString("cache.dbfile")

	slog.Info("Invalidating cache", "source", i.Source, "database", cacheDB)

	tables, ok := cacheSources[i.Source]
	if !ok {
		return fmt.Errorf("invalid cache source '%s'; valid sources are: details, discover, all", i.Source)
	}

	cacheInstance, err := GetGlobalCache()
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}

	var total int64
	for _, table := range tables {
		rowsDeleted, err := cacheInstance.InvalidateSource(table)
		if err != nil {
			return fmt.Errorf("failed to invalidate cache: %w", err)
		}
		total += rowsDeleted
	}

	slog.Info("Cache invalidated", "source", i.Source, "rows_deleted", total)
	return nil
}

// StatsCacheCmd prints entry counts per cache table
type StatsCacheCmd struct{}

func (s *StatsCacheCmd) Run() error {
	cacheInstance, err := GetGlobalCache()
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}

	for _, table := range cacheSources["all"] {
		n, err := cacheInstance.Count(table)
		if err != nil {
			return err
		}
		slog.Info("Cache table", "table", table, "entries", n, "database", cacheInstance.Path())
	}
	return nil
}

// PruneCacheCmd removes expired entries from every cache table
type PruneCacheCmd struct{}

func (p *PruneCacheCmd) Run() error {
	cacheInstance, err := GetGlobalCache()
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}

	ttl := configuredTTL()
	for _, table := range cacheSources["all"] {
		if err := cacheInstance.ClearExpired(table, ttl); err != nil {
			return err
		}
	}
	return nil
}
