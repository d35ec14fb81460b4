package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sabores-de-africa/sabores/internal/models"
	"github.com/sabores-de-africa/sabores/internal/providers"
	"google.golang.org/api/option"
)

// placeholderSourceTitle labels citations the backend returned without a
// usable page title.
const placeholderSourceTitle = "Fonte"

// Gemini generates recipe detail and hero imagery through Google Gemini.
type Gemini struct {
	apiKey string
	config providers.Config
}

// New returns a new Gemini provider. The API key is read once, at startup.
func New(config providers.Config) (*Gemini, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	return &Gemini{apiKey: apiKey, config: config}, nil
}

// detailSchema declares the structured-output contract for recipe detail:
// four required fields, two ordered string sequences and two single strings.
func detailSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"ingredients":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"instructions": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"history":      {Type: genai.TypeString},
			"youtubeQuery": {Type: genai.TypeString},
		},
		Required: []string{"ingredients", "instructions", "history", "youtubeQuery"},
	}
}

// FetchRecipeDetail issues exactly one content-generation call and maps the
// structured payload plus any grounding citations onto a RecipeDetail. Any
// transport, parse, or schema failure comes back as a DetailFetchError.
func (g *Gemini) FetchRecipeDetail(ctx context.Context, recipe models.RecipeSummary) (*models.RecipeDetail, error) {
	fail := func(err error) (*models.RecipeDetail, error) {
		return nil, &providers.DetailFetchError{RecipeID: recipe.ID, Err: err}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return fail(fmt.Errorf("failed to create gemini client: %w", err))
	}
	defer client.Close()

	model := client.GenerativeModel(g.config.DetailModel)
	model.SetTemperature(float32(g.config.Temperature))
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = detailSchema()
	// Web-search grounding, so factual claims come back with citations.
	model.Tools = []*genai.Tool{{GoogleSearchRetrieval: &genai.GoogleSearchRetrieval{}}}

	resp, err := model.GenerateContent(ctx, genai.Text(providers.DetailPrompt(recipe)))
	if err != nil {
		return fail(fmt.Errorf("failed to generate content: %w", err))
	}

	text, err := textFromResponse(resp)
	if err != nil {
		return fail(err)
	}

	payload, err := providers.ParseDetailPayload(text)
	if err != nil {
		return fail(err)
	}

	return &models.RecipeDetail{
		RecipeSummary: recipe,
		Ingredients:   payload.Ingredients,
		Instructions:  payload.Instructions,
		History:       payload.History,
		YouTubeQuery:  payload.YouTubeQuery,
		Sources:       sourcesFromResponse(resp),
	}, nil
}

// heroPrompt is the fixed art-direction template. The old-style Gemini API
// carries no separate aspect-ratio parameter, so the wide framing directive
// rides in the prompt text.
func heroPrompt(subject string) string {
	return fmt.Sprintf("A high-end, professional culinary photograph of %s, "+
		"vibrant colors, traditional African pottery, appetizing presentation, "+
		"soft natural lighting. Wide 16:9 composition.", subject)
}

// GenerateHeroImage runs one image-generation request and returns the first
// inline image payload as a data URI. Every failure is recovered locally with
// the static placeholder; nothing propagates to the caller.
func (g *Gemini) GenerateHeroImage(ctx context.Context, subject string) string {
	ref, err := g.generateHeroImage(ctx, subject)
	if err != nil {
		slog.Warn("Hero image generation failed, using placeholder", "subject", subject, "err", err)
		return providers.PlaceholderHeroImage
	}
	return ref
}

func (g *Gemini) generateHeroImage(ctx context.Context, subject string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.config.ImageModel)

	resp, err := model.GenerateContent(ctx, genai.Text(heroPrompt(subject)))
	if err != nil {
		return "", fmt.Errorf("failed to generate image: %w", err)
	}

	return imageRefFromResponse(resp)
}

// firstCandidate pulls the first candidate with content out of a response.
func firstCandidate(resp *genai.GenerateContentResponse) (*genai.Candidate, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates returned from Gemini")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("empty content returned from Gemini")
	}
	return candidate, nil
}

// textFromResponse joins the text parts of the first candidate.
func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	candidate, err := firstCandidate(resp)
	if err != nil {
		return "", err
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in Gemini response")
	}
	return strings.Join(parts, ""), nil
}

// imageRefFromResponse scans the first candidate for the first inline image
// payload and encodes it as a displayable data reference.
func imageRefFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	candidate, err := firstCandidate(resp)
	if err != nil {
		return "", err
	}

	for _, part := range candidate.Content.Parts {
		blob, ok := part.(genai.Blob)
		if !ok || len(blob.Data) == 0 {
			continue
		}
		mime := blob.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(blob.Data), nil
	}
	return "", fmt.Errorf("no inline image data in Gemini response")
}

// sourcesFromResponse maps grounding citations to SourceRefs. The citation
// API exposes no page titles, so every source carries the generic label; a
// missing link becomes an empty string.
func sourcesFromResponse(resp *genai.GenerateContentResponse) []models.SourceRef {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	md := resp.Candidates[0].CitationMetadata
	if md == nil {
		return nil
	}

	var sources []models.SourceRef
	for _, cs := range md.CitationSources {
		if cs == nil {
			continue
		}
		uri := ""
		if cs.URI != nil {
			uri = *cs.URI
		}
		sources = append(sources, models.SourceRef{Title: placeholderSourceTitle, URI: uri})
	}
	return sources
}
