// Package providers defines the contract every generative backend speaks:
// the recipe-detail request/response shape, the shared prompt templates, and
// the error taxonomy for failed fetches.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sabores-de-africa/sabores/internal/models"
)

// Model defaults match what the original front-end shipped with.
const (
	DefaultDetailModel = "gemini-3-flash-preview"
	DefaultImageModel  = "gemini-2.5-flash-image"

	// DefaultTemperature keeps generated detail factual and repeatable.
	DefaultTemperature = 0.3
)

// PlaceholderHeroImage is the static reference substituted whenever hero
// image generation fails.
const PlaceholderHeroImage = "https://picsum.photos/1200/600"

// Config carries generation settings shared by all providers.
type Config struct {
	DetailModel string
	ImageModel  string
	Temperature float64
}

// FromEnv resolves provider configuration from the environment, falling back
// to the defaults above.
func FromEnv() Config {
	cfg := Config{
		DetailModel: os.Getenv("GEMINI_DETAIL_MODEL"),
		ImageModel:  os.Getenv("GEMINI_IMAGE_MODEL"),
		Temperature: DefaultTemperature,
	}
	if cfg.DetailModel == "" {
		cfg.DetailModel = DefaultDetailModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = DefaultImageModel
	}
	return cfg
}

// RecipeSource produces structured recipe detail for a catalog entry. Each
// call issues exactly one outbound request; results are never cached here.
type RecipeSource interface {
	FetchRecipeDetail(ctx context.Context, recipe models.RecipeSummary) (*models.RecipeDetail, error)
}

// ImageSource produces a directly displayable image reference for a text
// subject. Implementations never fail: any error is recovered locally and
// the placeholder reference returned instead.
type ImageSource interface {
	GenerateHeroImage(ctx context.Context, subject string) string
}

// StaticImageSource always returns a fixed reference. It serves as the
// fallback when no image-capable provider is configured, and as a test
// stand-in.
type StaticImageSource struct {
	Ref string
}

func (s StaticImageSource) GenerateHeroImage(ctx context.Context, subject string) string {
	if s.Ref == "" {
		return PlaceholderHeroImage
	}
	return s.Ref
}

// DetailFetchError wraps any transport, parse, or schema failure during
// detail retrieval. Callers leave the UI in its prior state and do not retry
// automatically.
type DetailFetchError struct {
	RecipeID string
	Err      error
}

func (e *DetailFetchError) Error() string {
	return fmt.Sprintf("fetch detail for recipe %s: %v", e.RecipeID, e.Err)
}

func (e *DetailFetchError) Unwrap() error {
	return e.Err
}

// DetailPayload is the JSON object every provider must return: two ordered
// string sequences and two single strings, all four required.
type DetailPayload struct {
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	History      string   `json:"history"`
	YouTubeQuery string   `json:"youtubeQuery"`
}

// ParseDetailPayload validates raw provider output against the four-field
// contract. Any mismatch is a schema violation, not a partial result.
func ParseDetailPayload(text string) (*DetailPayload, error) {
	var payload DetailPayload
	if err := json.Unmarshal([]byte(CleanJSONBlock(text)), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse detail payload: %w", err)
	}
	if len(payload.Ingredients) == 0 {
		return nil, fmt.Errorf("detail payload missing ingredients")
	}
	if len(payload.Instructions) == 0 {
		return nil, fmt.Errorf("detail payload missing instructions")
	}
	if payload.History == "" {
		return nil, fmt.Errorf("detail payload missing history")
	}
	if payload.YouTubeQuery == "" {
		return nil, fmt.Errorf("detail payload missing youtubeQuery")
	}
	return &payload, nil
}

// CleanJSONBlock removes markdown code fences some models wrap JSON in.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// DetailPrompt is the natural-language content request, parameterized by the
// recipe's name and origin. The display language is fixed (Portuguese).
func DetailPrompt(recipe models.RecipeSummary) string {
	return fmt.Sprintf(`Forneça detalhes completos da receita africana: %s de %s.
Inclua ingredientes, modo de preparo passo a passo e um parágrafo sobre a história cultural do prato.
Sugira também o termo exato para pesquisar no YouTube para ver este prato sendo feito.`,
		recipe.Name, recipe.Origin)
}

// DetailContractPrompt extends DetailPrompt with an inline description of the
// required JSON shape, for providers without server-side schema enforcement.
func DetailContractPrompt(recipe models.RecipeSummary) string {
	var sb strings.Builder
	sb.WriteString(DetailPrompt(recipe))
	sb.WriteString("\n\nReturn ONLY a valid JSON object matching this exact structure:\n")
	sb.WriteString(`{
  "ingredients": ["..."],
  "instructions": ["..."],
  "history": "...",
  "youtubeQuery": "..."
}`)
	sb.WriteString("\nAll four fields are required. No markdown, no explanation, no code blocks.")
	return sb.String()
}
