package images

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sabores-de-africa/sabores/internal/models"
)

func TestCardImagePath(t *testing.T) {
	dir := t.TempDir()

	path, ok := CardImagePath(dir, "1")
	if ok {
		t.Error("expected missing image to report false")
	}
	if path != filepath.Join(dir, "1.jpg") {
		t.Errorf("unexpected path %q", path)
	}

	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, ok := CardImagePath(dir, "1"); !ok {
		t.Error("expected cached image to report true")
	}
}

func TestPrefetchCardImages(t *testing.T) {
	bigImage := bytes.Repeat([]byte{0xab}, 2000)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/good.jpg":
			w.Write(bigImage)
		case "/tiny.jpg":
			w.Write([]byte("too small"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	dir := t.TempDir()
	recipes := []models.RecipeSummary{
		{ID: "1", ImageURL: server.URL + "/good.jpg"},
		{ID: "2", ImageURL: server.URL + "/tiny.jpg"},
		{ID: "3", ImageURL: server.URL + "/missing.jpg"},
		{ID: "4"}, // no URL at all
	}

	if err := NewFetcher().PrefetchCardImages(recipes, dir); err != nil {
		t.Fatalf("PrefetchCardImages failed: %v", err)
	}

	if _, ok := CardImagePath(dir, "1"); !ok {
		t.Error("expected recipe 1 image cached")
	}
	for _, id := range []string{"2", "3", "4"} {
		if _, ok := CardImagePath(dir, id); ok {
			t.Errorf("recipe %s should not be cached", id)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "1.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, bigImage) {
		t.Error("cached image content mismatch")
	}
}

func TestPrefetchSkipsCached(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write(bytes.Repeat([]byte{1}, 2000))
	}))
	defer server.Close()

	dir := t.TempDir()
	recipes := []models.RecipeSummary{{ID: "1", ImageURL: server.URL + "/a.jpg"}}

	fetcher := NewFetcher()
	if err := fetcher.PrefetchCardImages(recipes, dir); err != nil {
		t.Fatal(err)
	}
	if err := fetcher.PrefetchCardImages(recipes, dir); err != nil {
		t.Fatal(err)
	}
	if hits != 1 {
		t.Errorf("expected a single download, got %d", hits)
	}
}
