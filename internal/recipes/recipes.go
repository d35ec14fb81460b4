// Package recipes wires the configured generative backend to the rest of
// the application.
package recipes

import (
	"fmt"
	"os"

	"github.com/sabores-de-africa/sabores/internal/gemini"
	"github.com/sabores-de-africa/sabores/internal/ollama"
	"github.com/sabores-de-africa/sabores/internal/openai"
	"github.com/sabores-de-africa/sabores/internal/providers"
)

// ResolveProvider returns the configured provider name, defaulting to Gemini.
func ResolveProvider() string {
	name := os.Getenv("SABORES_PROVIDER")
	if name == "" {
		name = "gemini"
	}
	return name
}

// NewSource builds the RecipeSource for the given provider name.
func NewSource(name string, cfg providers.Config) (providers.RecipeSource, error) {
	switch name {
	case "gemini":
		return gemini.New(cfg)
	case "ollama":
		return ollama.New(cfg), nil
	case "openai":
		return openai.New(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}

// NewImageSource builds the hero image source. Only Gemini can generate
// images; every other configuration serves the static placeholder.
func NewImageSource(name string, cfg providers.Config) providers.ImageSource {
	if name == "gemini" {
		if g, err := gemini.New(cfg); err == nil {
			return g
		}
	}
	return providers.StaticImageSource{Ref: providers.PlaceholderHeroImage}
}
