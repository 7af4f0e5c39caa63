package onboarding

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the submission relay route
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/onboarding", h.Submit)
}
