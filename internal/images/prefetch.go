// Package images caches recipe card images locally so the UI serves them
// from this process instead of hotlinking the catalog's remote URLs.
package images

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sabores-de-africa/sabores/internal/models"
)

// minImageSize rejects tiny responses that are almost certainly error pages
// or placeholders rather than photographs.
const minImageSize = 1000

// Fetcher downloads recipe card images.
type Fetcher struct {
	HTTPClient *http.Client
}

// NewFetcher creates a new image fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CardImagePath returns the local path for a recipe's cached card image and
// whether it exists.
func CardImagePath(dir, recipeID string) (string, bool) {
	path := filepath.Join(dir, recipeID+".jpg")
	_, err := os.Stat(path)
	return path, err == nil
}

// PrefetchCardImages downloads every catalog image into outputDir. Failures
// are logged and skipped; the UI falls back to the remote URL for those.
func (f *Fetcher) PrefetchCardImages(recipes []models.RecipeSummary, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create image cache dir: %w", err)
	}

	for _, r := range recipes {
		if r.ImageURL == "" {
			continue
		}
		dest := filepath.Join(outputDir, r.ID+".jpg")
		if _, err := os.Stat(dest); err == nil {
			slog.Debug("Card image already cached", "recipe", r.ID, "path", dest)
			continue
		}
		if err := f.downloadImage(r.ImageURL, dest); err != nil {
			slog.Warn("Failed to prefetch card image", "recipe", r.ID, "url", r.ImageURL, "error", err)
			continue
		}
		slog.Info("Prefetched card image", "recipe", r.ID, "path", dest)
	}
	return nil
}

// downloadImage downloads an image from a URL to a file.
func (f *Fetcher) downloadImage(url, outputPath string) error {
	resp, err := f.HTTPClient.Get(url)
	if err != nil {
		return fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image URL returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read image data: %w", err)
	}

	if len(imageData) < minImageSize {
		return fmt.Errorf("image too small (likely placeholder), size: %d bytes", len(imageData))
	}

	if err := os.WriteFile(outputPath, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}

	return nil
}
