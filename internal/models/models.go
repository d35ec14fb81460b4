package models

import "net/url"

// Category labels are the Portuguese region names the catalog ships with.
// CategoryAll is the filter sentinel meaning "no filter"; it is not a member
// of the closed enumeration.
const (
	CategoryAll      = "Todos"
	CategoryWest     = "Oeste Africano"
	CategoryEast     = "Este Africano"
	CategorySouthern = "África Austral"
	CategoryNorth    = "Norte de África"
	CategoryCentral  = "Central"
)

// Categories returns the closed set of recipe categories in display order.
func Categories() []string {
	return []string{
		CategoryWest,
		CategoryEast,
		CategorySouthern,
		CategoryNorth,
		CategoryCentral,
	}
}

// ValidCategory reports whether c is a member of the closed enumeration.
func ValidCategory(c string) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// RecipeSummary is a single catalog entry. Summaries are immutable after
// catalog load; Price is meaningful only when Premium is true.
type RecipeSummary struct {
	ID          string  `json:"id" yaml:"id" parquet:"id"`
	Name        string  `json:"name" yaml:"name" parquet:"name"`
	Origin      string  `json:"origin" yaml:"origin" parquet:"origin"`
	Description string  `json:"description" yaml:"description" parquet:"description"`
	ImageURL    string  `json:"image_url" yaml:"image_url" parquet:"image_url"`
	Category    string  `json:"category" yaml:"category" parquet:"category"`
	Premium     bool    `json:"premium" yaml:"premium" parquet:"premium"`
	Price       float64 `json:"price,omitempty" yaml:"price,omitempty" parquet:"price"`
}

// SourceRef is a grounding citation returned alongside generated content.
type SourceRef struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// RecipeDetail is the expanded, single-recipe presentation: the catalog entry
// plus generated ingredients, preparation steps, cultural history, a video
// search hint, and citation sources. Step order matters for both lists.
type RecipeDetail struct {
	RecipeSummary
	Ingredients  []string    `json:"ingredients"`
	Instructions []string    `json:"instructions"`
	History      string      `json:"history"`
	YouTubeQuery string      `json:"youtube_query"`
	Sources      []SourceRef `json:"sources"`
}

// YouTubeSearchURL builds the external video-search deep link for the
// generated query. It is a navigable hyperlink, not an API call.
func (d *RecipeDetail) YouTubeSearchURL() string {
	return "https://www.youtube.com/results?search_query=" + url.QueryEscape(d.YouTubeQuery)
}

// PaymentInfo carries the checkout form fields. All four are required to be
// non-empty but are deliberately not verified against card rules — the
// payment flow is a simulation, not a gateway integration, so there is no
// Luhn check and no expiry check.
type PaymentInfo struct {
	Holder     string `json:"holder"`
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}
