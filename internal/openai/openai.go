package openai

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

// OpenAI generates recipe detail through the OpenAI chat completions API.
// Like the Ollama provider it has no search grounding, so no citation
// sources are attached.
type OpenAI struct {
	apiKey string
	config providers.Config
}

// New returns a new OpenAI provider. The API key is read once, at startup.
func New(config providers.Config) (*OpenAI, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	return &OpenAI{apiKey: apiKey, config: config}, nil
}

func model() string {
	m := os.Getenv("OPENAI_MODEL")
	if m == "" {
		m = "gpt-4o"
	}
	return m
}

// FetchRecipeDetail issues one chat-completion request with JSON output
// forced, then validates the payload at the boundary.
func (o *OpenAI) FetchRecipeDetail(ctx context.Context, recipe models.RecipeSummary) (*models.RecipeDetail, error) {
	fail := func(err error) (*models.RecipeDetail, error) {
		return nil, &providers.DetailFetchError{RecipeID: recipe.ID, Err: err}
	}

	requestBody, err := json.Marshal(map[string]interface{}{
		"model": model(),
		"messages": []map[string]string{
			{
				"role":    "user",
				"content": providers.DetailContractPrompt(recipe),
			},
		},
		"temperature":     o.config.Temperature,
		"response_format": map[string]string{"type": "json_object"},
	})
	if err != nil {
		return fail(fmt.Errorf("failed to marshal request body: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/chat/completions", bytes.NewBuffer(requestBody))
	if err != nil {
		return fail(fmt.Errorf("failed to create new request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

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
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fail(fmt.Errorf("failed to decode response body: %w", err))
	}

	if len(response.Choices) == 0 {
		return fail(fmt.Errorf("no choices returned from OpenAI"))
	}

	payload, err := providers.ParseDetailPayload(response.Choices[0].Message.Content)
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
