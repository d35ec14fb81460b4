package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sabores-de-africa/sabores/internal/models"
	"github.com/sabores-de-africa/sabores/internal/providers"
)

func testRecipe() models.RecipeSummary {
	return models.RecipeSummary{ID: "6", Name: "Cachupa Rica", Origin: "Cabo Verde"}
}

func TestFetchRecipeDetail(t *testing.T) {
	detailJSON := `{"ingredients":["milho","feijão"],"instructions":["demolhar","cozer"],"history":"Prato nacional de Cabo Verde.","youtubeQuery":"cachupa rica receita"}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req["format"] != "json" {
			t.Errorf("expected json format, got %v", req["format"])
		}
		if req["stream"] != false {
			t.Error("expected stream disabled")
		}
		json.NewEncoder(w).Encode(map[string]string{"response": detailJSON})
	}))
	defer server.Close()
	t.Setenv("OLLAMA_URL", server.URL)

	detail, err := New(providers.FromEnv()).FetchRecipeDetail(context.Background(), testRecipe())
	if err != nil {
		t.Fatalf("FetchRecipeDetail failed: %v", err)
	}
	if detail.Name != "Cachupa Rica" {
		t.Errorf("expected summary carried over, got %q", detail.Name)
	}
	if len(detail.Ingredients) != 2 || detail.YouTubeQuery != "cachupa rica receita" {
		t.Errorf("unexpected detail: %+v", detail)
	}
	if detail.Sources != nil {
		t.Error("ollama has no grounding, sources must be empty")
	}
}

func TestFetchRecipeDetailErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", http.StatusInternalServerError)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("{not json"))
		}},
		{"incomplete payload", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"response": `{"history":"h"}`})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()
			t.Setenv("OLLAMA_URL", server.URL)

			_, err := New(providers.FromEnv()).FetchRecipeDetail(context.Background(), testRecipe())
			if err == nil {
				t.Fatal("expected error")
			}
			var dfe *providers.DetailFetchError
			if !errors.As(err, &dfe) {
				t.Errorf("expected DetailFetchError, got %T", err)
			}
		})
	}
}
