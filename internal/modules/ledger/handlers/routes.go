package handlers

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RegisterRoutes registers the ledger API routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/data", h.HandleGetData)
		r.Get("/ledger/status", h.HandleGetStatus)
	})

	// A refresh may download a large ledger from S3
	r.With(middleware.Timeout(5*time.Minute)).Post("/ledger/refresh", h.HandleRefresh)
}

// RegisterDownloadRoutes registers the report download route, outside /api
func (h *Handler) RegisterDownloadRoutes(r chi.Router) {
	r.Get("/download/{year}", h.HandleDownload)
}
