package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/taxboard/internal/domain"
	"github.com/aristath/taxboard/internal/events"
)

// EventEmitter is the part of events.Manager the store needs.
type EventEmitter interface {
	EmitTyped(module string, data events.EventData)
}

// Status describes what the store currently serves.
type Status struct {
	Loaded       bool      `json:"loaded"`
	Source       string    `json:"source,omitempty"`
	LoadedAt     time.Time `json:"loaded_at,omitempty"`
	FromSnapshot bool      `json:"from_snapshot"`
	Years        []string  `json:"years,omitempty"`
	LastError    string    `json:"last_error,omitempty"`
	LastErrorAt  time.Time `json:"last_error_at,omitempty"`
}

// Store holds the current ledger. A ledger is never modified once stored:
// Replace swaps the whole value.
type Store struct {
	mu      sync.RWMutex
	current *domain.Ledger
	status  Status
	events  EventEmitter
	log     zerolog.Logger
}

// NewStore creates an empty store. events may be nil.
func NewStore(emitter EventEmitter, log zerolog.Logger) *Store {
	return &Store{
		events: emitter,
		log:    log.With().Str("component", "ledger_store").Logger(),
	}
}

// Current returns the ledger, or domain.ErrNoLedger carrying the last fetch
// error when nothing was loaded.
func (s *Store) Current() (*domain.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		if s.status.LastError != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoLedger, s.status.LastError)
		}
		return nil, domain.ErrNoLedger
	}
	return s.current, nil
}

// Replace installs a new ledger and announces it.
func (s *Store) Replace(l *domain.Ledger, source string, fromSnapshot bool) {
	years := l.YearLabels()

	s.mu.Lock()
	s.current = l
	s.status = Status{
		Loaded:       true,
		Source:       source,
		LoadedAt:     time.Now(),
		FromSnapshot: fromSnapshot,
		Years:        years,
	}
	s.mu.Unlock()

	s.log.Info().
		Str("source", source).
		Bool("from_snapshot", fromSnapshot).
		Strs("years", years).
		Msg("Ledger replaced")

	if s.events != nil {
		s.events.EmitTyped("ledger", &events.LedgerReplacedData{Source: source, Years: years})
	}
}

// RecordFailure keeps a fetch error for Status and Current. The served
// ledger, if any, stays in place.
func (s *Store) RecordFailure(source string, err error, fallback bool) {
	s.mu.Lock()
	s.status.LastError = err.Error()
	s.status.LastErrorAt = time.Now()
	s.mu.Unlock()

	s.log.Error().Err(err).Str("source", source).Bool("fallback", fallback).Msg("Ledger fetch failed")

	if s.events != nil {
		s.events.EmitTyped("ledger", &events.LedgerFetchFailedData{
			Source:   source,
			Error:    err.Error(),
			Fallback: fallback,
		})
	}
}

// Status returns a copy of the store status.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.status
	st.Years = append([]string(nil), s.status.Years...)
	return st
}
