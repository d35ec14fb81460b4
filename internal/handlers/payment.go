package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sabores-de-africa/sabores/internal/flow"
	"github.com/sabores-de-africa/sabores/internal/models"
	"github.com/sabores-de-africa/sabores/internal/providers"
)

// HandlePayment submits the checkout form for the recipe awaiting payment.
func (h *Handler) HandlePayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var info models.PaymentInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	receipt, outcome, err := h.session.SubmitPayment(r.Context(), info)
	if err != nil {
		// The unlock already happened when only the follow-up fetch failed;
		// report the receipt alongside the error so the client knows.
		var dfe *providers.DetailFetchError
		if receipt != nil && errors.As(err, &dfe) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			if encErr := json.NewEncoder(w).Encode(map[string]interface{}{
				"error":   "Payment succeeded but detail fetch failed: " + err.Error(),
				"receipt": receipt,
			}); encErr != nil {
				h.writeError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}
		h.writeFlowError(w, err)
		return
	}

	h.writeOutcome(w, map[string]interface{}{"receipt": receipt}, outcome)
}

// HandlePaymentCancel abandons the checkout form.
func (h *Handler) HandlePaymentCancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.session.CancelPayment(); err != nil {
		h.writeFlowError(w, err)
		return
	}
	h.writeJSON(w, map[string]string{"status": string(flow.StateBrowsing)})
}

// HandleState reports the session snapshot, for UI polling and diagnostics.
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, h.session.Snapshot())
}
