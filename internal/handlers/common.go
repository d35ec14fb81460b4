package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/sabores-de-africa/sabores/internal/catalog"
	"github.com/sabores-de-africa/sabores/internal/flow"
	"github.com/sabores-de-africa/sabores/internal/providers"
)

// heroSubject is the fixed subject for the startup hero image request.
const heroSubject = "diverse African gourmet food platter"

type Handler struct {
	catalog *catalog.Catalog
	session *flow.Session
	images  providers.ImageSource

	// imageDir, when non-empty, is the local card-image cache served under
	// /static/images/.
	imageDir string

	heroMu  sync.RWMutex
	heroRef string
}

// New builds the handler set. The hero slot starts on the placeholder until
// WarmHeroImage succeeds.
func New(cat *catalog.Catalog, session *flow.Session, images providers.ImageSource, imageDir string) *Handler {
	return &Handler{
		catalog:  cat,
		session:  session,
		images:   images,
		imageDir: imageDir,
		heroRef:  providers.PlaceholderHeroImage,
	}
}

// Routes mounts every endpoint on a fresh mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/recipes", h.HandleRecipes)
	mux.HandleFunc("/api/recipes/", h.HandleRecipeView)
	mux.HandleFunc("/api/categories", h.HandleCategories)
	mux.HandleFunc("/api/payment", h.HandlePayment)
	mux.HandleFunc("/api/payment/cancel", h.HandlePaymentCancel)
	mux.HandleFunc("/api/hero", h.HandleHero)
	mux.HandleFunc("/api/state", h.HandleState)
	mux.HandleFunc("/healthcheck", h.HandleHealthcheck)
	mux.HandleFunc("/", h.HandleStatic)
	return mux
}

func (h *Handler) HandleHealthcheck(w http.ResponseWriter, r *http.Request) {
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.Error("Unable to write healthcheck", "err", err)
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		slog.Error("Unable to encode error response", "err", err)
	}
}
