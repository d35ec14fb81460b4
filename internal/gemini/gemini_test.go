package gemini

import (
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/sabores-de-africa/sabores/internal/providers"
)

func textResponse(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: parts}},
		},
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := New(providers.FromEnv()); err == nil {
		t.Error("expected error without GEMINI_API_KEY")
	}

	t.Setenv("GEMINI_API_KEY", "test-key")
	if _, err := New(providers.FromEnv()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDetailSchema(t *testing.T) {
	schema := detailSchema()

	if schema.Type != genai.TypeObject {
		t.Errorf("expected object schema, got %v", schema.Type)
	}
	for _, field := range []string{"ingredients", "instructions", "history", "youtubeQuery"} {
		if _, ok := schema.Properties[field]; !ok {
			t.Errorf("schema missing property %q", field)
		}
	}
	if len(schema.Required) != 4 {
		t.Errorf("expected all 4 fields required, got %v", schema.Required)
	}
}

func TestTextFromResponse(t *testing.T) {
	t.Run("joins text parts", func(t *testing.T) {
		resp := textResponse(genai.Text(`{"a":`), genai.Text(`1}`))
		got, err := textFromResponse(resp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != `{"a":1}` {
			t.Errorf("expected joined text, got %q", got)
		}
	})

	t.Run("nil response", func(t *testing.T) {
		if _, err := textFromResponse(nil); err == nil {
			t.Error("expected error for nil response")
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		if _, err := textFromResponse(&genai.GenerateContentResponse{}); err == nil {
			t.Error("expected error for empty response")
		}
	})

	t.Run("no text parts", func(t *testing.T) {
		resp := textResponse(genai.Blob{MIMEType: "image/png", Data: []byte{1}})
		if _, err := textFromResponse(resp); err == nil {
			t.Error("expected error when response has no text")
		}
	})
}

func TestImageRefFromResponse(t *testing.T) {
	t.Run("blob becomes data uri", func(t *testing.T) {
		resp := textResponse(
			genai.Text("here is your image"),
			genai.Blob{MIMEType: "image/jpeg", Data: []byte{0xff, 0xd8}},
		)
		got, err := imageRefFromResponse(resp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(got, "data:image/jpeg;base64,") {
			t.Errorf("expected jpeg data uri, got %q", got)
		}
	})

	t.Run("missing mime type defaults to png", func(t *testing.T) {
		resp := textResponse(genai.Blob{Data: []byte{1, 2, 3}})
		got, err := imageRefFromResponse(resp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(got, "data:image/png;base64,") {
			t.Errorf("expected png data uri, got %q", got)
		}
	})

	t.Run("text-only response fails", func(t *testing.T) {
		resp := textResponse(genai.Text("no image for you"))
		if _, err := imageRefFromResponse(resp); err == nil {
			t.Error("expected error for text-only response")
		}
	})
}

func TestSourcesFromResponse(t *testing.T) {
	uri := "https://example.com/muamba"
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{Parts: []genai.Part{genai.Text("{}")}},
				CitationMetadata: &genai.CitationMetadata{
					CitationSources: []*genai.CitationSource{
						{URI: &uri},
						{URI: nil},
						nil,
					},
				},
			},
		},
	}

	sources := sourcesFromResponse(resp)
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if sources[0].URI != uri {
		t.Errorf("expected uri %q, got %q", uri, sources[0].URI)
	}
	if sources[0].Title != placeholderSourceTitle {
		t.Errorf("expected placeholder title %q, got %q", placeholderSourceTitle, sources[0].Title)
	}
	if sources[1].URI != "" {
		t.Errorf("expected empty uri for nil link, got %q", sources[1].URI)
	}
}

func TestSourcesFromResponseNoCitations(t *testing.T) {
	if got := sourcesFromResponse(nil); got != nil {
		t.Errorf("expected nil for nil response, got %v", got)
	}
	resp := textResponse(genai.Text("{}"))
	if got := sourcesFromResponse(resp); got != nil {
		t.Errorf("expected nil without citation metadata, got %v", got)
	}
}

func TestHeroPrompt(t *testing.T) {
	prompt := heroPrompt("grilled tilapia")
	if !strings.Contains(prompt, "grilled tilapia") {
		t.Errorf("prompt should contain the subject, got %q", prompt)
	}
	if !strings.Contains(prompt, "16:9") {
		t.Errorf("prompt should carry the wide framing directive, got %q", prompt)
	}
}
