package cache

// SQL schemas for cache tables
// All cache tables use "cache_key" as the primary key column for consistency.
// ttl_seconds of 0 means the configured cache.ttl applies.

// DetailsCacheSchema defines the schema for raw movie details documents
const DetailsCacheSchema = `
CREATE TABLE IF NOT EXISTS details_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	ttl_seconds INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_details_cached_at ON details_cache(cached_at);
`

// DiscoverCacheSchema defines the schema for discover result ID lists,
// keyed by the normalized filter set
const DiscoverCacheSchema = `
CREATE TABLE IF NOT EXISTS discover_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	ttl_seconds INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_discover_cached_at ON discover_cache(cached_at);
`

const (
	// DetailsTable holds details documents keyed by "movie_<id>"
	DetailsTable = "details_cache"
	// DiscoverTable holds discover results keyed by filter set
	DiscoverTable = "discover_cache"
)

// AllCacheSchemas contains all cache table schemas for easy initialization
var AllCacheSchemas = []string{
	DetailsCacheSchema,
	DiscoverCacheSchema,
}

// ValidCacheTableNames is the whitelist of allowed cache table names
// Used to prevent SQL injection when interpolating table names
var ValidCacheTableNames = map[string]bool{
	DetailsTable:  true,
	DiscoverTable: true,
}
