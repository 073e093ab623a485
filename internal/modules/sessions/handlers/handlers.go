// Package handlers provides HTTP handlers for dashboard sessions.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/taxboard/internal/modules/dashboard"
	"github.com/aristath/taxboard/internal/modules/sessions"
	"github.com/aristath/taxboard/internal/modules/sorting"
)

// Handler handles session HTTP requests
type Handler struct {
	store *sessions.Store
	log   zerolog.Logger
}

// NewHandler creates a new session handler
func NewHandler(store *sessions.Store, log zerolog.Logger) *Handler {
	return &Handler{
		store: store,
		log:   log.With().Str("handler", "sessions").Logger(),
	}
}

// CreateResponse is returned when a session starts.
type CreateResponse struct {
	SessionID string          `json:"session_id"`
	Frame     dashboard.Frame `json:"frame"`
}

// HandleCreate handles POST /api/sessions
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	sess, err := h.store.Create()
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, CreateResponse{
		SessionID: sess.ID,
		Frame:     sess.Recorder.Frame(),
	})
}

// HandleDelete handles DELETE /api/sessions/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	h.store.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// HandleFrame handles GET /api/sessions/{id}/frame
func (h *Handler) HandleFrame(w http.ResponseWriter, r *http.Request) {
	h.handleIntent(w, r, IntentFrame, false)
}

// HandleScope handles POST /api/sessions/{id}/scope
func (h *Handler) HandleScope(w http.ResponseWriter, r *http.Request) {
	h.handleIntent(w, r, IntentScope, true)
}

// HandleChartPoint handles POST /api/sessions/{id}/chart-point
func (h *Handler) HandleChartPoint(w http.ResponseWriter, r *http.Request) {
	h.handleIntent(w, r, IntentChartPoint, true)
}

// HandleSort handles POST /api/sessions/{id}/sort
func (h *Handler) HandleSort(w http.ResponseWriter, r *http.Request) {
	h.handleIntent(w, r, IntentSort, true)
}

func (h *Handler) handleIntent(w http.ResponseWriter, r *http.Request, kind string, withBody bool) {
	sess, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	var intent Intent
	if withBody {
		if err := json.NewDecoder(r.Body).Decode(&intent); err != nil {
			h.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}
	intent.Type = kind

	if err := intent.Apply(sess); err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sess.Recorder.Frame())
}

// StatusFor maps a session or dashboard error to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidIntent), errors.Is(err, sorting.ErrUnknownView):
		return http.StatusBadRequest
	case errors.Is(err, sessions.ErrNotFound), errors.Is(err, dashboard.ErrUnknownYear):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrNoLedger):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeFailure(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Msg("Session request failed")
	}
	h.writeError(w, status, err.Error())
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
