// Package sessions keeps one dashboard controller per browser session.
package sessions

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/taxboard/internal/domain"
	"github.com/aristath/taxboard/internal/modules/dashboard"
)

// ErrNotFound is returned for unknown or evicted session ids.
var ErrNotFound = errors.New("session not found")

// LedgerProvider returns the ledger currently served.
type LedgerProvider interface {
	Current() (*domain.Ledger, error)
}

// Session is one page load's dashboard state. Its controller serializes
// intents; the session itself only tracks usage.
type Session struct {
	ID         string
	Controller *dashboard.Controller
	Recorder   *dashboard.Recorder
	CreatedAt  time.Time

	mu       sync.Mutex
	lastUsed time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastUsed = now
	s.mu.Unlock()
}

// LastUsed returns when the session last served a request.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// Store holds the live sessions.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ledgers  LedgerProvider
	ttl      time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// NewStore creates a session store. Sessions idle longer than ttl are removed
// by EvictIdle.
func NewStore(ledgers LedgerProvider, ttl time.Duration, log zerolog.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ledgers:  ledgers,
		ttl:      ttl,
		now:      time.Now,
		log:      log.With().Str("component", "sessions").Logger(),
	}
}

// Create starts a session on the current ledger and renders its initial
// global scope.
func (s *Store) Create() (*Session, error) {
	l, err := s.ledgers.Current()
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	rec := dashboard.NewRecorder()
	now := s.now()
	sess := &Session{
		ID:         id,
		Controller: dashboard.NewController(l, rec, s.log.With().Str("session", id).Logger()),
		Recorder:   rec,
		CreatedAt:  now,
		lastUsed:   now,
	}
	if err := sess.Controller.Render(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.log.Debug().Str("session", sess.ID).Msg("Session created")
	return sess, nil
}

// Get returns a session and marks it used. When the served ledger was
// replaced since the session last rendered, the controller is rebound first.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	sess.touch(s.now())

	if l, err := s.ledgers.Current(); err == nil && l != sess.Controller.Ledger() {
		if err := sess.Controller.ReplaceLedger(l); err != nil {
			return nil, err
		}
		s.log.Debug().Str("session", id).Msg("Session rebound to new ledger")
	}
	return sess, nil
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// EvictIdle removes sessions unused for longer than the TTL and returns how
// many were removed.
func (s *Store) EvictIdle() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		if sess.LastUsed().Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}
