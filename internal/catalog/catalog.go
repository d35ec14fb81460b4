package catalog

import (
	"fmt"
	"os"

	"github.com/sabores-de-africa/sabores/internal/models"
	"gopkg.in/yaml.v3"
)

// Catalog is the in-memory list of recipe summaries, immutable for the
// lifetime of the process.
type Catalog struct {
	recipes []models.RecipeSummary
	byID    map[string]models.RecipeSummary
}

// New builds a catalog from the given summaries, validating them first.
func New(recipes []models.RecipeSummary) (*Catalog, error) {
	byID := make(map[string]models.RecipeSummary, len(recipes))
	for i, r := range recipes {
		if r.ID == "" {
			return nil, fmt.Errorf("recipe %d: missing id", i)
		}
		if _, exists := byID[r.ID]; exists {
			return nil, fmt.Errorf("recipe %d: duplicate id %q", i, r.ID)
		}
		if r.Name == "" {
			return nil, fmt.Errorf("recipe %q: missing name", r.ID)
		}
		if !models.ValidCategory(r.Category) {
			return nil, fmt.Errorf("recipe %q: unknown category %q", r.ID, r.Category)
		}
		if r.Premium && r.Price <= 0 {
			return nil, fmt.Errorf("recipe %q: premium recipe requires a positive price", r.ID)
		}
		if !r.Premium && r.Price != 0 {
			return nil, fmt.Errorf("recipe %q: price is only valid on premium recipes", r.ID)
		}
		byID[r.ID] = r
	}

	out := make([]models.RecipeSummary, len(recipes))
	copy(out, recipes)
	return &Catalog{recipes: out, byID: byID}, nil
}

// Default returns the built-in six-recipe catalog.
func Default() *Catalog {
	c, err := New(defaultRecipes())
	if err != nil {
		// The built-in data is validated by tests; reaching this is a bug.
		panic(err)
	}
	return c
}

// catalogFile is the YAML layout for a custom catalog.
type catalogFile struct {
	Recipes []models.RecipeSummary `yaml:"recipes"`
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if len(file.Recipes) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no recipes", path)
	}

	return New(file.Recipes)
}

// All returns a copy of every summary in catalog order.
func (c *Catalog) All() []models.RecipeSummary {
	out := make([]models.RecipeSummary, len(c.recipes))
	copy(out, c.recipes)
	return out
}

// Get looks up a summary by id.
func (c *Catalog) Get(id string) (models.RecipeSummary, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// Len returns the number of recipes in the catalog.
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// Filter returns the summaries whose category equals the argument, preserving
// catalog order. The models.CategoryAll sentinel returns everything; a
// category with no members yields an empty slice, never an error.
func Filter(recipes []models.RecipeSummary, category string) []models.RecipeSummary {
	if category == "" || category == models.CategoryAll {
		out := make([]models.RecipeSummary, len(recipes))
		copy(out, recipes)
		return out
	}

	out := []models.RecipeSummary{}
	for _, r := range recipes {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}
