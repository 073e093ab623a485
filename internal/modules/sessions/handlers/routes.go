package handlers

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RegisterRoutes registers all session routes. The websocket route is kept out
// of the request timeout.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.Post("/sessions", h.HandleCreate)
		r.Delete("/sessions/{id}", h.HandleDelete)
		r.Get("/sessions/{id}/frame", h.HandleFrame)
		r.Post("/sessions/{id}/scope", h.HandleScope)
		r.Post("/sessions/{id}/chart-point", h.HandleChartPoint)
		r.Post("/sessions/{id}/sort", h.HandleSort)
	})

	r.Get("/sessions/{id}/ws", h.HandleWebsocket)
}
