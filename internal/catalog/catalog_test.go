package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sabores-de-africa/sabores/internal/models"
)

func TestDefaultCatalog(t *testing.T) {
	cat := Default()

	if cat.Len() != 6 {
		t.Errorf("expected 6 recipes, got %d", cat.Len())
	}

	muamba, ok := cat.Get("2")
	if !ok {
		t.Fatal("expected recipe id 2 in default catalog")
	}
	if muamba.Name != "Muamba de Galinha" {
		t.Errorf("expected Muamba de Galinha, got %q", muamba.Name)
	}
	if !muamba.Premium {
		t.Error("expected Muamba de Galinha to be premium")
	}
	if muamba.Price != 4.99 {
		t.Errorf("expected price 4.99, got %v", muamba.Price)
	}
	if muamba.Category != models.CategoryCentral {
		t.Errorf("expected category %q, got %q", models.CategoryCentral, muamba.Category)
	}
}

func TestNewValidation(t *testing.T) {
	valid := models.RecipeSummary{
		ID:       "x",
		Name:     "Test",
		Category: models.CategoryWest,
	}

	tests := []struct {
		name    string
		mutate  func(r models.RecipeSummary) models.RecipeSummary
		wantErr bool
	}{
		{"valid free recipe", func(r models.RecipeSummary) models.RecipeSummary { return r }, false},
		{"missing id", func(r models.RecipeSummary) models.RecipeSummary { r.ID = ""; return r }, true},
		{"missing name", func(r models.RecipeSummary) models.RecipeSummary { r.Name = ""; return r }, true},
		{"unknown category", func(r models.RecipeSummary) models.RecipeSummary { r.Category = "Antarctica"; return r }, true},
		{"filter sentinel is not a category", func(r models.RecipeSummary) models.RecipeSummary { r.Category = models.CategoryAll; return r }, true},
		{"premium without price", func(r models.RecipeSummary) models.RecipeSummary { r.Premium = true; return r }, true},
		{"premium with price", func(r models.RecipeSummary) models.RecipeSummary { r.Premium = true; r.Price = 2.5; return r }, false},
		{"price on free recipe", func(r models.RecipeSummary) models.RecipeSummary { r.Price = 1; return r }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]models.RecipeSummary{tt.mutate(valid)})
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	recipes := []models.RecipeSummary{
		{ID: "1", Name: "A", Category: models.CategoryWest},
		{ID: "1", Name: "B", Category: models.CategoryEast},
	}
	if _, err := New(recipes); err == nil {
		t.Error("expected duplicate id error, got nil")
	}
}

func TestFilter(t *testing.T) {
	all := Default().All()

	tests := []struct {
		name     string
		category string
		wantIDs  []string
	}{
		{"empty category returns everything", "", []string{"1", "2", "3", "4", "5", "6"}},
		{"sentinel returns everything", models.CategoryAll, []string{"1", "2", "3", "4", "5", "6"}},
		{"central matches one recipe", models.CategoryCentral, []string{"2"}},
		{"unknown category yields empty", "Antarctica", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(all, tt.category)
			if got == nil {
				t.Fatal("Filter returned nil, want non-nil slice")
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("expected %d recipes, got %d", len(tt.wantIDs), len(got))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("position %d: expected id %q, got %q", i, id, got[i].ID)
				}
			}
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	all := Default().All()
	var wantIDs []string
	for _, r := range all {
		if r.Category == models.CategoryWest {
			wantIDs = append(wantIDs, r.ID)
		}
	}
	got := Filter(all, models.CategoryWest)
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d recipes, got %d", len(wantIDs), len(got))
	}
	for i, r := range got {
		if r.ID != wantIDs[i] {
			t.Errorf("position %d: expected id %q, got %q", i, wantIDs[i], r.ID)
		}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	cat := Default()
	first := cat.All()
	first[0].Name = "mutated"

	if cat.All()[0].Name == "mutated" {
		t.Error("All returned a slice sharing backing storage with the catalog")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recipes.yaml")
	content := `recipes:
  - id: "10"
    name: Thieboudienne
    origin: Senegal
    description: Arroz com peixe
    category: Oeste Africano
  - id: "11"
    name: Bobotie
    origin: África do Sul
    description: Empadão de carne
    category: África Austral
    premium: true
    price: 3.5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cat.Len() != 2 {
		t.Errorf("expected 2 recipes, got %d", cat.Len())
	}
	bobotie, ok := cat.Get("11")
	if !ok {
		t.Fatal("expected recipe id 11")
	}
	if !bobotie.Premium || bobotie.Price != 3.5 {
		t.Errorf("expected premium at 3.5, got premium=%v price=%v", bobotie.Premium, bobotie.Price)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "nope.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("recipes: [what"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		if err := os.WriteFile(path, []byte("recipes: []"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("expected error for empty catalog")
		}
	})

	t.Run("invalid recipe", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.yaml")
		content := "recipes:\n  - id: \"1\"\n    name: X\n    category: Narnia\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("expected error for invalid category")
		}
	})
}
