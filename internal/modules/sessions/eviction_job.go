package sessions

import (
	"github.com/rs/zerolog"

	"github.com/aristath/taxboard/internal/events"
)

// EventEmitter publishes typed events.
type EventEmitter interface {
	EmitTyped(module string, data events.EventData)
}

// EvictionJob removes idle sessions.
type EvictionJob struct {
	store  *Store
	events EventEmitter
	log    zerolog.Logger
}

// NewEvictionJob creates the job. emitter may be nil.
func NewEvictionJob(store *Store, emitter EventEmitter, log zerolog.Logger) *EvictionJob {
	return &EvictionJob{
		store:  store,
		events: emitter,
		log:    log.With().Str("job", "session_eviction").Logger(),
	}
}

// Run evicts idle sessions.
func (j *EvictionJob) Run() error {
	evicted := j.store.EvictIdle()
	if evicted == 0 {
		return nil
	}

	remaining := j.store.Len()
	j.log.Info().Int("evicted", evicted).Int("remaining", remaining).Msg("Evicted idle sessions")
	if j.events != nil {
		j.events.EmitTyped("sessions", &events.SessionsEvictedData{Evicted: evicted, Remaining: remaining})
	}
	return nil
}

// Name returns the job name for scheduling and logging.
func (j *EvictionJob) Name() string {
	return "session_eviction"
}
