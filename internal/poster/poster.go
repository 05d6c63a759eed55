// Package poster downloads movie posters and scales them for local use.
package poster

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"

	"github.com/lepinkainen/reelscout/internal/fileutil"
	"github.com/lepinkainen/reelscout/internal/movie"
)

// DefaultMaxWidth is the widest poster kept on disk.
const DefaultMaxWidth = 300

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Downloader saves posters into a directory.
type Downloader struct {
	dir        string
	httpClient HTTPDoer
	maxWidth   int
	overwrite  bool
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(d *Downloader) {
		if c != nil {
			d.httpClient = c
		}
	}
}

// WithMaxWidth caps the saved width. Narrower images are kept as-is.
func WithMaxWidth(width int) Option {
	return func(d *Downloader) {
		if width > 0 {
			d.maxWidth = width
		}
	}
}

// WithOverwrite re-downloads posters that already exist.
func WithOverwrite(overwrite bool) Option {
	return func(d *Downloader) {
		d.overwrite = overwrite
	}
}

// NewDownloader creates a Downloader writing into dir.
func NewDownloader(dir string, opts ...Option) *Downloader {
	d := &Downloader{
		dir:        dir,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxWidth:   DefaultMaxWidth,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Path returns where the poster for title is stored.
func (d *Downloader) Path(title string) string {
	return filepath.Join(d.dir, fileutil.SanitizeFilename(title)+".jpg")
}

// Download fetches the poster for m. Movies without a poster URL return ""
// and no error.
func (d *Downloader) Download(ctx context.Context, m movie.Movie) (string, error) {
	if m.PosterURL() == "" {
		return "", nil
	}

	savePath := d.Path(m.Title())
	if fileutil.FileExists(savePath) && !d.overwrite {
		slog.Debug("Poster already exists, skipping download", "path", savePath)
		return savePath, nil
	}

	if err := d.downloadAndResize(ctx, m.PosterURL(), savePath); err != nil {
		return "", fmt.Errorf("poster for %q: %w", m.Title(), err)
	}
	slog.Info("Downloaded poster", "title", m.Title(), "path", savePath)
	return savePath, nil
}

// DownloadAll fetches posters for every movie, keyed by title. Failures are
// logged and skipped.
func (d *Downloader) DownloadAll(ctx context.Context, movies []movie.Movie) map[string]string {
	paths := make(map[string]string, len(movies))
	for _, m := range movies {
		if ctx.Err() != nil {
			break
		}
		path, err := d.Download(ctx, m)
		if err != nil {
			slog.Warn("Poster download failed", "title", m.Title(), "error", err)
			continue
		}
		if path != "" {
			paths[m.Title()] = path
		}
	}
	return paths
}

func (d *Downloader) downloadAndResize(ctx context.Context, imageURL, savePath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return err
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d downloading image", resp.StatusCode)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > d.maxWidth {
		img = imaging.Resize(img, d.maxWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return err
	}

	return imaging.Save(img, savePath, imaging.JPEGQuality(85))
}
