package conversation

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/conversation", func(r chi.Router) {
		r.Post("/", h.StartConversation)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetConversation)
			r.Delete("/", h.DiscardConversation)
			r.Post("/answer", h.SubmitAnswer)
			r.Post("/retry", h.RetrySubmission)
			r.Get("/profile", h.GetProfile)
			r.Get("/profile/export", h.ExportProfile)
		})
	})
}
