package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the API router. ws is the websocket event-feed handler
// and may be nil.
func NewRouter(h *Handler, ws http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	r.Get("/questions", h.StartSession)
	r.Post("/answers", h.SubmitAnswers)

	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Post("/answers", h.SelectAnswer)
		r.Get("/timer", h.Timer)
	})

	r.Get("/attempts/{sessionID}", h.Attempt)

	if ws != nil {
		r.Handle("/ws", ws)
	}
	return r
}
