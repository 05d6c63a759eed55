package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// OverwriteFiles controls whether existing markdown and JSON exports should be overwritten
	OverwriteFiles bool
	// TMDBAPIKey is the API key for TheMovieDB
	TMDBAPIKey string
	// ImageBaseURL is prepended to poster paths
	ImageBaseURL string
	// CacheEnabled toggles the persistent SQLite cache for catalog responses
	CacheEnabled bool
	// ResultLimit caps the number of recommended movies per run
	ResultLimit int
)

const (
	// DefaultImageBaseURL serves 500px wide posters
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	// DefaultResultLimit is the number of movies returned per run
	DefaultResultLimit = 10
)

// InitConfig initializes the global configuration
func InitConfig() {
	viper.SetDefault("output.markdowndir", "./markdown/")
	viper.SetDefault("output.posterdir", "./posters/")
	viper.SetDefault("OverwriteFiles", false)
	viper.SetDefault("tmdb.imagebaseurl", DefaultImageBaseURL)
	viper.SetDefault("recommend.limit", DefaultResultLimit)
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "720h")
	viper.SetDefault("datastore.dbfile", "./reelscout.db")

	OverwriteFiles = viper.GetBool("OverwriteFiles")
	TMDBAPIKey = viper.GetString("TMDBAPIKey")
	ImageBaseURL = viper.GetString("tmdb.imagebaseurl")
	CacheEnabled = viper.GetBool("cache.enabled")
	ResultLimit = viper.GetInt("recommend.limit")
	if ResultLimit <= 0 || ResultLimit > DefaultResultLimit {
		ResultLimit = DefaultResultLimit
	}
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}
