package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/lepinkainen/reelscout/internal/config"
	"github.com/lepinkainen/reelscout/internal/datastore"
	"github.com/lepinkainen/reelscout/internal/extract"
	"github.com/lepinkainen/reelscout/internal/fileutil"
	"github.com/lepinkainen/reelscout/internal/movie"
	"github.com/lepinkainen/reelscout/internal/notes"
	"github.com/lepinkainen/reelscout/internal/poster"
	"github.com/lepinkainen/reelscout/internal/recommend"
	"github.com/lepinkainen/reelscout/internal/render"
	"github.com/lepinkainen/reelscout/internal/tmdb"
	"github.com/lepinkainen/reelscout/internal/tui"
	"github.com/spf13/viper"
)

// recommender is the part of recommend.Service the command needs
type recommender interface {
	GetRecommendedMovies(ctx context.Context, filters movie.Filters) []movie.Movie
}

var (
	newRecommender           = defaultRecommender
	browseMovies             = tui.Browse
	newStore                 = func(path string) datastore.Store { return datastore.NewSQLiteStore(path) }
	stdout         io.Writer = os.Stdout
	now                      = time.Now
)

// RecommendCmd represents the recommend command
type RecommendCmd struct {
	Genre       string `short:"g" help:"Genre name, e.g. Action or Science Fiction"`
	Decade      string `short:"d" help:"Release decade, e.g. 1990 or 1990s"`
	Language    string `short:"l" help:"Original language name or ISO 639-1 code"`
	Limit       int    `short:"n" help:"Maximum number of movies, at most 10 (defaults to recommend.limit in config)"`
	Interactive bool   `short:"i" help:"Browse results in an interactive list"`
	JSON        string `help:"Write results to this JSON file"`
	Markdown    string `help:"Write one markdown note per movie into this directory"`
	Posters     string `help:"Download resized posters into this directory"`
	SQLite      bool   `name:"sqlite" help:"Append results to the SQLite datastore"`
}

func defaultRecommender(limit int) (recommender, error) {
	if config.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB API key is required (set TMDB_API_KEY or TMDBAPIKey in config)")
	}

	client := tmdb.NewClient(config.TMDBAPIKey)
	catalog := tmdb.NewCatalog(client,
		tmdb.WithCache(config.CacheEnabled),
		tmdb.WithSearchLimit(limit),
	)

	return recommend.NewService(catalog, catalog, nil,
		recommend.WithParser(extract.Parser{ImageBaseURL: config.ImageBaseURL}),
		recommend.WithLimit(limit),
	), nil
}

func (r *RecommendCmd) filters() movie.Filters {
	return movie.Filters{Genre: r.Genre, Decade: r.Decade, Language: r.Language}
}

func (r *RecommendCmd) limit() int {
	if r.Limit > 0 {
		return min(r.Limit, config.DefaultResultLimit)
	}
	return config.ResultLimit
}

func (r *RecommendCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc, err := newRecommender(r.limit())
	if err != nil {
		return err
	}

	filters := r.filters()
	movies := svc.GetRecommendedMovies(ctx, filters)

	if err := r.show(movies); err != nil {
		return err
	}
	return r.export(ctx, movies, filters)
}

func (r *RecommendCmd) show(movies []movie.Movie) error {
	renderer := render.New(render.DefaultWidth)

	if !r.Interactive || len(movies) == 0 {
		return renderer.WriteAll(stdout, movies)
	}

	result, err := browseMovies(movies)
	if err != nil {
		return fmt.Errorf("interactive browser failed: %w", err)
	}
	if result.Action == tui.ActionSelected && result.Selection != nil {
		_, err := fmt.Fprintln(stdout, renderer.Card(*result.Selection))
		return err
	}
	return nil
}

func (r *RecommendCmd) export(ctx context.Context, movies []movie.Movie, filters movie.Filters) error {
	if len(movies) == 0 {
		return nil
	}

	var posters map[string]string
	if r.Posters != "" {
		downloader := poster.NewDownloader(r.Posters, poster.WithOverwrite(config.OverwriteFiles))
		posters = downloader.DownloadAll(ctx, movies)
		slog.Info("Posters saved", "count", len(posters), "directory", r.Posters)
	}

	if r.Markdown != "" {
		written, err := notes.WriteAll(r.Markdown, movies, notes.Options{
			Filters:   filters,
			Overwrite: config.OverwriteFiles,
		}, posters)
		if err != nil {
			return fmt.Errorf("failed to write markdown notes: %w", err)
		}
		slog.Info("Markdown notes written", "count", written, "directory", r.Markdown)
	}

	if r.JSON != "" {
		if _, err := fileutil.WriteJSONFile(movies, r.JSON, config.OverwriteFiles); err != nil {
			return fmt.Errorf("failed to write JSON: %w", err)
		}
	}

	if r.SQLite {
		dbPath := viper.GetString("datastore.dbfile")
		if err := datastore.ExportMovies(newStore(dbPath), movies, filters, now()); err != nil {
			return fmt.Errorf("failed to export to SQLite: %w", err)
		}
		slog.Info("Results stored", "database", dbPath, "count", len(movies))
	}

	return nil
}
