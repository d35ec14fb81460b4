package handlers

import (
	"context"
	"net/http"
)

// WarmHeroImage requests the decorative hero image once, at startup. The
// rest of the UI is interactive immediately; until (and unless) this
// succeeds, /api/hero serves the placeholder.
func (h *Handler) WarmHeroImage(ctx context.Context) {
	ref := h.images.GenerateHeroImage(ctx, heroSubject)

	h.heroMu.Lock()
	h.heroRef = ref
	h.heroMu.Unlock()
}

func (h *Handler) HandleHero(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.heroMu.RLock()
	ref := h.heroRef
	h.heroMu.RUnlock()

	h.writeJSON(w, map[string]string{"image": ref})
}
