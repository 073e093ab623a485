package server

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/aristath/taxboard/internal/events"
	"github.com/aristath/taxboard/internal/modules/ledger"
	"github.com/aristath/taxboard/internal/modules/sessions"
)

// StatusEmitter is the part of events.Manager the monitor needs.
type StatusEmitter interface {
	EmitTyped(module string, data events.EventData)
}

// StatusMonitor is a scheduler job that emits SYSTEM_STATUS_CHANGED when the
// ledger availability or the number of sessions changes.
type StatusMonitor struct {
	ledgers  *ledger.Store
	sessions *sessions.Store
	emitter  StatusEmitter
	log      zerolog.Logger

	mu   sync.Mutex
	last *events.SystemStatusData
}

// NewStatusMonitor creates a new status monitor
func NewStatusMonitor(ledgers *ledger.Store, sessionStore *sessions.Store, emitter StatusEmitter, log zerolog.Logger) *StatusMonitor {
	return &StatusMonitor{
		ledgers:  ledgers,
		sessions: sessionStore,
		emitter:  emitter,
		log:      log.With().Str("job", "status_monitor").Logger(),
	}
}

// Run checks the status once.
func (m *StatusMonitor) Run() error {
	current := events.SystemStatusData{}
	if m.ledgers != nil {
		current.LedgerLoaded = m.ledgers.Status().Loaded
	}
	if m.sessions != nil {
		current.Sessions = m.sessions.Len()
	}

	m.mu.Lock()
	changed := m.last == nil || *m.last != current
	m.last = &current
	m.mu.Unlock()

	if changed {
		m.log.Debug().
			Bool("ledger_loaded", current.LedgerLoaded).
			Int("sessions", current.Sessions).
			Msg("System status changed")
		if m.emitter != nil {
			m.emitter.EmitTyped("status_monitor", &current)
		}
	}
	return nil
}

// Name returns the job name
func (m *StatusMonitor) Name() string {
	return "status_monitor"
}
