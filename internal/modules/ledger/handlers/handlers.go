// Package handlers provides HTTP handlers for the served ledger and its
// yearly report downloads.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/taxboard/internal/domain"
	"github.com/aristath/taxboard/internal/modules/dashboard"
	"github.com/aristath/taxboard/internal/modules/ledger"
	"github.com/aristath/taxboard/internal/modules/report"
)

// Refresher re-fetches the ledger from its source.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Handler handles ledger HTTP requests
type Handler struct {
	store     *ledger.Store
	refresher Refresher
	log       zerolog.Logger
}

// NewHandler creates a new ledger handler. refresher may be nil, which
// disables POST /api/ledger/refresh.
func NewHandler(store *ledger.Store, refresher Refresher, log zerolog.Logger) *Handler {
	return &Handler{
		store:     store,
		refresher: refresher,
		log:       log.With().Str("handler", "ledger").Logger(),
	}
}

// HandleGetData handles GET /api/data
func (h *Handler) HandleGetData(w http.ResponseWriter, r *http.Request) {
	l, err := h.store.Current()
	if err != nil {
		h.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, l)
}

// HandleGetStatus handles GET /api/ledger/status
func (h *Handler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.Status())
}

// HandleRefresh handles POST /api/ledger/refresh
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if h.refresher == nil {
		h.writeError(w, http.StatusNotImplemented, "Ledger refresh not available")
		return
	}
	if err := h.refresher.Refresh(r.Context()); err != nil {
		h.log.Warn().Err(err).Msg("Manual ledger refresh failed")
		h.writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error":  err.Error(),
			"status": h.store.Status(),
		})
		return
	}
	h.writeJSON(w, http.StatusOK, h.store.Status())
}

// HandleDownload handles GET /download/{year}. The archive is built in memory
// so a failure still yields a clean error response.
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	year := chi.URLParam(r, "year")

	l, err := h.store.Current()
	if err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := report.WriteYear(&buf, l, year); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dashboard.ErrUnknownYear) || errors.Is(err, domain.ErrNoLedger) {
			status = http.StatusNotFound
		} else {
			h.log.Error().Err(err).Str("year", year).Msg("Failed to build report")
		}
		h.writeError(w, status, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.FileName(year)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Warn().Err(err).Str("year", year).Msg("Failed to write report")
	}
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
