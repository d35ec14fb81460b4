package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sabores-de-africa/sabores/internal/catalog"
	"github.com/sabores-de-africa/sabores/internal/flow"
	"github.com/sabores-de-africa/sabores/internal/images"
	"github.com/sabores-de-africa/sabores/internal/models"
	"github.com/sabores-de-africa/sabores/internal/providers"
)

// recipeListItem decorates a summary with session-specific unlock state.
type recipeListItem struct {
	models.RecipeSummary
	Unlocked bool `json:"unlocked"`
}

func (h *Handler) HandleRecipes(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	category := r.URL.Query().Get("category")
	filtered := catalog.Filter(h.catalog.All(), category)

	items := make([]recipeListItem, 0, len(filtered))
	for _, recipe := range filtered {
		if h.imageDir != "" {
			if _, ok := images.CardImagePath(h.imageDir, recipe.ID); ok {
				recipe.ImageURL = "/static/images/" + recipe.ID + ".jpg"
			}
		}
		items = append(items, recipeListItem{
			RecipeSummary: recipe,
			Unlocked:      !recipe.Premium || h.session.IsUnlocked(recipe.ID),
		})
	}

	h.writeJSON(w, map[string]interface{}{
		"recipes": items,
		"total":   len(items),
	})
}

func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"all":        models.CategoryAll,
		"categories": models.Categories(),
	})
}

// HandleRecipeView drives a recipe click: POST /api/recipes/{id}/view.
func (h *Handler) HandleRecipeView(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/recipes/")
	id = strings.TrimSuffix(id, "/view")
	if id == "" || strings.Contains(id, "/") {
		h.writeError(w, "Invalid recipe path", http.StatusBadRequest)
		return
	}

	outcome, err := h.session.SelectRecipe(r.Context(), id)
	if err != nil {
		h.writeFlowError(w, err)
		return
	}

	h.writeOutcome(w, nil, outcome)
}

func (h *Handler) writeOutcome(w http.ResponseWriter, extra map[string]interface{}, outcome *flow.Outcome) {
	resp := map[string]interface{}{}
	for k, v := range extra {
		resp[k] = v
	}

	if outcome.PaymentRequired {
		resp["status"] = "payment_required"
		resp["recipe"] = outcome.Recipe
	} else {
		resp["status"] = "detail"
		resp["detail"] = outcome.Detail
		resp["youtube_url"] = outcome.Detail.YouTubeSearchURL()
	}
	h.writeJSON(w, resp)
}

func (h *Handler) writeFlowError(w http.ResponseWriter, err error) {
	var dfe *providers.DetailFetchError
	switch {
	case errors.Is(err, flow.ErrRecipeNotFound):
		h.writeError(w, "Recipe not found", http.StatusNotFound)
	case errors.Is(err, flow.ErrBusy):
		h.writeError(w, "Another operation is in flight", http.StatusConflict)
	case errors.Is(err, flow.ErrNoPaymentPending):
		h.writeError(w, "No payment awaiting submission", http.StatusConflict)
	case errors.As(err, &dfe):
		h.writeError(w, "Failed to fetch recipe detail: "+err.Error(), http.StatusBadGateway)
	default:
		h.writeError(w, err.Error(), http.StatusBadRequest)
	}
}
