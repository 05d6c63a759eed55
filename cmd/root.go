package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/lepinkainen/reelscout/internal/cache"
	"github.com/lepinkainen/reelscout/internal/config"
	"github.com/spf13/viper"
)

// CLI represents the complete command structure for the reelscout application
type CLI struct {
	// Global flags
	Overwrite bool   `help:"Overwrite existing markdown and JSON exports"`
	LogLevel  string `help:"Log level: debug, info, warn, error" default:"" env:"REELSCOUT_LOG_LEVEL"`

	// Cache flags
	NoCache     bool   `help:"Bypass the persistent TMDB response cache"`
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 720h for 30 days)" default:"720h"`

	// Datastore flags
	DatastoreDB string `help:"Path to SQLite database used by --sqlite exports" default:"./reelscout.db"`

	Recommend RecommendCmd `cmd:"" help:"Recommend movies by genre, decade and language"`
	Options   OptionsCmd   `cmd:"" help:"List the available genres, decades and languages"`
	Cache     CacheCmd     `cmd:"" help:"Manage the TMDB response cache"`
}

// CacheCmd groups the cache maintenance subcommands
type CacheCmd struct {
	Invalidate cache.InvalidateCacheCmd `cmd:"" help:"Clear cached responses for a source"`
	Stats      cache.StatsCacheCmd      `cmd:"" help:"Show cache entry counts"`
	Prune      cache.PruneCacheCmd      `cmd:"" help:"Remove expired cache entries"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging(os.Getenv("REELSCOUT_LOG_LEVEL"))
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("reelscout"),
		kong.Description("Find movies on TheMovieDB by genre, decade and language."),
		kong.UsageOnError(),
	)

	if cli.LogLevel != "" {
		initLogging(cli.LogLevel)
	}

	updateGlobalConfig(&cli)

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	// Enable environment variable support
	viper.AutomaticEnv()
	if err := viper.BindEnv("TMDBAPIKey", "TMDB_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	// Defaults must exist before a missing config file is written out
	config.InitConfig()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Warn("Error writing config file", "error", err)
			}
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetOverwriteFiles(cli.Overwrite)
	if cli.NoCache {
		config.CacheEnabled = false
		viper.Set("cache.enabled", false)
	}

	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)
	viper.Set("datastore.dbfile", cli.DatastoreDB)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func initLogging(level string) {
	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: parseLogLevel(level),
	})
	slog.SetDefault(slog.New(handler))
}
