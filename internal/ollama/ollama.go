package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/sabores-de-africa/sabores/internal/models"
	"github.com/sabores-de-africa/sabores/internal/providers"
)

// Ollama generates recipe detail through a local Ollama instance. It speaks
// the same four-field contract as the Gemini provider but offers no search
// grounding, so details come back without citation sources.
type Ollama struct {
	config providers.Config
}

// New returns a new Ollama provider.
func New(config providers.Config) *Ollama {
	return &Ollama{config: config}
}

func baseURL() string {
	url := os.Getenv("OLLAMA_URL")
	if url == "" {
		url = "http://localhost:11434"
	}
	return url
}

func model() string {
	m := os.Getenv("OLLAMA_MODEL")
	if m == "" {
		m = "mistral-small3.2:24b"
	}
	return m
}

// FetchRecipeDetail issues one generation request against /api/generate with
// JSON output forced, then validates the payload at the boundary.
func (o *Ollama) FetchRecipeDetail(ctx context.Context, recipe models.RecipeSummary) (*models.RecipeDetail, error) {
	fail := func(err error) (*models.RecipeDetail, error) {
		return nil, &providers.DetailFetchError{RecipeID: recipe.ID, Err: err}
	}

	requestBody, err := json.Marshal(map[string]interface{}{
		"model":  model(),
		"prompt": providers.DetailContractPrompt(recipe),
		"format": "json",
		"stream": false,
		"options": map[string]interface{}{
			"temperature": o.config.Temperature,
		},
	})
	if err != nil {
		return fail(fmt.Errorf("failed to marshal request body: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, "POST", baseURL()+"/api/generate", bytes.NewBuffer(requestBody))
	if err != nil {
		return fail(fmt.Errorf("failed to create new request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fail(fmt.Errorf("failed to send request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fail(fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body)))
	}

	var response struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fail(fmt.Errorf("failed to decode response body: %w", err))
	}

	payload, err := providers.ParseDetailPayload(response.Response)
	if err != nil {
		return fail(err)
	}

	return &models.RecipeDetail{
		RecipeSummary: recipe,
		Ingredients:   payload.Ingredients,
		Instructions:  payload.Instructions,
		History:       payload.History,
		YouTubeQuery:  payload.YouTubeQuery,
	}, nil
}
