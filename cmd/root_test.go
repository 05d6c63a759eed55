package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/reelscout/internal/config"
	"github.com/lepinkainen/reelscout/internal/datastore"
	"github.com/lepinkainen/reelscout/internal/movie"
	"github.com/lepinkainen/reelscout/internal/testutil"
	"github.com/lepinkainen/reelscout/internal/tui"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetCmdState(t *testing.T) {
	testutil.SetTestConfig(t)
	t.Setenv("REELSCOUT_LOG_LEVEL", "")
}

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	originalArgs := os.Args
	os.Args = append([]string{"reelscout"}, args...)
	t.Cleanup(func() { os.Args = originalArgs })

	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("reelscout"),
		kong.Description("Find movies on TheMovieDB by genre, decade and language."),
		kong.UsageOnError(),
		kong.Exit(func(code int) {
			t.Fatalf("unexpected Kong exit %d", code)
		}),
	)

	return cli, ctx
}

func TestUpdateGlobalConfig(t *testing.T) {
	resetCmdState(t)

	cli := &CLI{
		Overwrite:   true,
		NoCache:     true,
		CacheDBFile: "/tmp/cache.db",
		CacheTTL:    "12h",
		DatastoreDB: "/tmp/reelscout.db",
	}
	config.CacheEnabled = true

	updateGlobalConfig(cli)

	assert.True(t, config.OverwriteFiles)
	assert.False(t, config.CacheEnabled)
	assert.False(t, viper.GetBool("cache.enabled"))
	assert.Equal(t, "/tmp/cache.db", viper.GetString("cache.dbfile"))
	assert.Equal(t, "12h", viper.GetString("cache.ttl"))
	assert.Equal(t, "/tmp/reelscout.db", viper.GetString("datastore.dbfile"))
}

func TestUpdateGlobalConfigKeepsCacheSetting(t *testing.T) {
	resetCmdState(t)
	config.CacheEnabled = true

	updateGlobalConfig(&CLI{CacheDBFile: "./cache.db", CacheTTL: "720h"})

	assert.True(t, config.CacheEnabled)
	assert.False(t, config.OverwriteFiles)
}

func TestRecommendCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "recommend",
		"--genre", "Science Fiction",
		"-d", "1990s",
		"--language", "fr",
		"-n", "5",
		"--interactive",
		"--json", "out.json",
		"--markdown", "notes",
		"--posters", "posters",
		"--sqlite")

	r := cli.Recommend
	assert.Equal(t, "Science Fiction", r.Genre)
	assert.Equal(t, "1990s", r.Decade)
	assert.Equal(t, "fr", r.Language)
	assert.Equal(t, 5, r.Limit)
	assert.True(t, r.Interactive)
	assert.Equal(t, "out.json", r.JSON)
	assert.Equal(t, "notes", r.Markdown)
	assert.Equal(t, "posters", r.Posters)
	assert.True(t, r.SQLite)
	assert.Equal(t, movie.Filters{Genre: "Science Fiction", Decade: "1990s", Language: "fr"}, r.filters())
}

func TestCLIDefaultFlags(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "options")

	assert.False(t, cli.Overwrite, "Overwrite should default to false")
	assert.False(t, cli.NoCache, "NoCache should default to false")
	assert.Equal(t, "./cache.db", cli.CacheDBFile)
	assert.Equal(t, "720h", cli.CacheTTL)
	assert.Equal(t, "./reelscout.db", cli.DatastoreDB)
	assert.Empty(t, cli.LogLevel)
}

func TestCLIFlagsOverrideDefaults(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t,
		"--overwrite",
		"--no-cache",
		"--log-level", "debug",
		"--cache-db-file", "/custom/cache.db",
		"--cache-ttl", "24h",
		"--datastore-db", "/custom/reelscout.db",
		"recommend")

	assert.True(t, cli.Overwrite)
	assert.True(t, cli.NoCache)
	assert.Equal(t, "debug", cli.LogLevel)
	assert.Equal(t, "/custom/cache.db", cli.CacheDBFile)
	assert.Equal(t, "24h", cli.CacheTTL)
	assert.Equal(t, "/custom/reelscout.db", cli.DatastoreDB)
}

func TestCacheCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, ctx := parseCLI(t, "cache", "invalidate", "details")

	assert.Equal(t, "details", cli.Cache.Invalidate.Source)
	assert.Equal(t, "cache invalidate <source>", ctx.Command())
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"invalid", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in))
		})
	}
}

func TestInitLogging(t *testing.T) {
	orig := slog.Default()
	t.Cleanup(func() { slog.SetDefault(orig) })

	require.NotPanics(t, func() { initLogging("debug") })
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))

	initLogging("error")
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelWarn))
}

type fakeRecommender struct {
	movies   []movie.Movie
	received []movie.Filters
}

func (f *fakeRecommender) GetRecommendedMovies(_ context.Context, filters movie.Filters) []movie.Movie {
	f.received = append(f.received, filters)
	return f.movies
}

func stubRecommender(t *testing.T, movies []movie.Movie) (*fakeRecommender, *bytes.Buffer) {
	t.Helper()

	fake := &fakeRecommender{movies: movies}

	origRecommender, origStdout, origNow := newRecommender, stdout, now
	newRecommender = func(int) (recommender, error) {
		return fake, nil
	}
	buf := &bytes.Buffer{}
	stdout = buf
	now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	t.Cleanup(func() {
		newRecommender, stdout, now = origRecommender, origStdout, origNow
	})
	return fake, buf
}

func sampleMovies() []movie.Movie {
	return []movie.Movie{
		movie.New("Heat", "7.9", "170 mins", "Michael Mann", "Al Pacino, Robert De Niro", "").
			WithDescription("A group of professional bank robbers."),
		movie.New("The Matrix", "8.2", "136 mins", "Lana Wachowski", "Keanu Reeves", ""),
	}
}

func TestRecommendRunPrintsCards(t *testing.T) {
	resetCmdState(t)
	fake, out := stubRecommender(t, sampleMovies())

	cmd := &RecommendCmd{Genre: "Crime", Decade: "1990"}
	require.NoError(t, cmd.Run())

	require.Len(t, fake.received, 1)
	assert.Equal(t, movie.Filters{Genre: "Crime", Decade: "1990"}, fake.received[0])
	assert.Contains(t, out.String(), "Found 2 movies")
	assert.Contains(t, out.String(), "Heat")
	assert.Contains(t, out.String(), "The Matrix")
}

func TestRecommendRunNoResults(t *testing.T) {
	resetCmdState(t)
	_, out := stubRecommender(t, nil)

	cmd := &RecommendCmd{Interactive: true, JSON: filepath.Join(t.TempDir(), "none.json")}
	require.NoError(t, cmd.Run())

	assert.Contains(t, out.String(), "No movies found matching your criteria")
	assert.NoFileExists(t, cmd.JSON)
}

func TestRecommendRunRequiresAPIKey(t *testing.T) {
	testutil.SetTestConfig(t, testutil.WithTMDBAPIKey(""))

	err := (&RecommendCmd{}).Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TMDB API key is required")
}

func TestRecommendLimit(t *testing.T) {
	resetCmdState(t)
	config.ResultLimit = 7

	assert.Equal(t, 7, (&RecommendCmd{}).limit())
	assert.Equal(t, 3, (&RecommendCmd{Limit: 3}).limit())
	assert.Equal(t, config.DefaultResultLimit, (&RecommendCmd{Limit: 40}).limit())
}

func TestRecommendRunInteractiveSelection(t *testing.T) {
	resetCmdState(t)
	movies := sampleMovies()
	_, out := stubRecommender(t, movies)

	origBrowse := browseMovies
	t.Cleanup(func() { browseMovies = origBrowse })
	var browsed []movie.Movie
	browseMovies = func(ms []movie.Movie) (tui.BrowseResult, error) {
		browsed = ms
		return tui.BrowseResult{Action: tui.ActionSelected, Selection: &ms[1], Index: 1}, nil
	}

	require.NoError(t, (&RecommendCmd{Interactive: true}).Run())

	assert.Equal(t, movies, browsed)
	assert.Contains(t, out.String(), "The Matrix")
	assert.NotContains(t, out.String(), "Found 2 movies")
}

func TestRecommendRunInteractiveQuit(t *testing.T) {
	resetCmdState(t)
	_, out := stubRecommender(t, sampleMovies())

	origBrowse := browseMovies
	t.Cleanup(func() { browseMovies = origBrowse })
	browseMovies = func([]movie.Movie) (tui.BrowseResult, error) {
		return tui.BrowseResult{Action: tui.ActionQuit, Index: -1}, nil
	}

	require.NoError(t, (&RecommendCmd{Interactive: true}).Run())
	assert.Empty(t, out.String())
}

func TestRecommendRunExports(t *testing.T) {
	resetCmdState(t)
	env := testutil.NewTestEnv(t)
	_, _ = stubRecommender(t, sampleMovies())
	testutil.SetViperValue(t, "datastore.dbfile", env.Path("reelscout.db"))

	cmd := &RecommendCmd{
		Genre:    "Crime",
		JSON:     env.Path("out", "movies.json"),
		Markdown: env.Path("notes"),
		SQLite:   true,
	}
	require.NoError(t, cmd.Run())

	var exported []map[string]any
	require.NoError(t, json.Unmarshal(env.ReadFile(filepath.Join("out", "movies.json")), &exported))
	require.Len(t, exported, 2)
	assert.Equal(t, "Heat", exported[0]["title"])

	assert.True(t, env.FileExists(filepath.Join("notes", "Heat.md")))
	assert.True(t, env.FileExists(filepath.Join("notes", "The Matrix.md")))
	assert.Contains(t, env.ReadFileString(filepath.Join("notes", "Heat.md")), "genre/Crime")

	store := datastore.NewSQLiteStore(env.Path("reelscout.db"))
	require.NoError(t, store.Connect())
	defer func() { _ = store.Close() }()
	n, err := store.QueryCount(datastore.MoviesTable)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestOptionsCommand(t *testing.T) {
	buf := &bytes.Buffer{}
	orig := stdout
	stdout = buf
	t.Cleanup(func() { stdout = orig })

	require.NoError(t, (&OptionsCmd{}).Run())

	out := buf.String()
	assert.Contains(t, out, "Genres:")
	assert.Contains(t, out, "Science Fiction")
	assert.Contains(t, out, "Decades:")
	assert.Contains(t, out, "1990")
	assert.Contains(t, out, "Languages:")
	assert.Contains(t, out, "French")
}
