package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/taxboard/internal/domain"
	"github.com/aristath/taxboard/internal/events"
)

// Snapshots is the snapshot storage used by the loader. A nil Snapshots
// disables persistence.
type Snapshots interface {
	Save(ctx context.Context, source string, l *domain.Ledger) (*Snapshot, error)
	Latest(ctx context.Context) (*Snapshot, error)
	Prune(ctx context.Context, keep int) (int64, error)
}

// Loader moves ledgers from a Source into the Store.
type Loader struct {
	source    Source
	store     *Store
	snapshots Snapshots
	events    EventEmitter
	keep      int
	log       zerolog.Logger
}

// NewLoader creates a loader. snapshots and emitter may be nil.
func NewLoader(source Source, store *Store, snapshots Snapshots, emitter EventEmitter, keep int, log zerolog.Logger) *Loader {
	return &Loader{
		source:    source,
		store:     store,
		snapshots: snapshots,
		events:    emitter,
		keep:      keep,
		log:       log.With().Str("service", "ledger_loader").Logger(),
	}
}

// LoadInitial performs the startup fetch. There is no retry: on failure the
// newest snapshot is served instead when one exists, otherwise the error is
// recorded in the store and returned.
func (l *Loader) LoadInitial(ctx context.Context) error {
	err := l.Refresh(ctx)
	if err == nil {
		return nil
	}
	if l.snapshots == nil {
		return err
	}

	snap, snapErr := l.snapshots.Latest(ctx)
	if snapErr != nil {
		if !errors.Is(snapErr, ErrNoSnapshot) {
			l.log.Error().Err(snapErr).Msg("Failed to read fallback snapshot")
		}
		return err
	}

	l.log.Warn().
		Str("snapshot", snap.ID).
		Time("fetched_at", snap.FetchedAt).
		Msg("Serving last ledger snapshot")
	l.store.Replace(snap.Ledger, snap.Source, true)
	return nil
}

// Refresh fetches the ledger, installs it and stores a snapshot.
func (l *Loader) Refresh(ctx context.Context) error {
	ledger, err := l.source.Fetch(ctx)
	if err != nil {
		err = fmt.Errorf("fetch from %s: %w", l.source.Name(), err)
		l.store.RecordFailure(l.source.Name(), err, l.snapshots != nil)
		return err
	}
	l.store.Replace(ledger, l.source.Name(), false)

	if l.snapshots == nil {
		return nil
	}
	snap, err := l.snapshots.Save(ctx, l.source.Name(), ledger)
	if err != nil {
		l.log.Error().Err(err).Msg("Failed to save ledger snapshot")
		return nil
	}
	pruned, err := l.snapshots.Prune(ctx, l.keep)
	if err != nil {
		l.log.Error().Err(err).Msg("Failed to prune ledger snapshots")
	}
	if l.events != nil {
		l.events.EmitTyped("ledger", &events.SnapshotSavedData{ID: snap.ID, Pruned: pruned})
	}
	return nil
}

// SourceName returns the name of the configured source.
func (l *Loader) SourceName() string {
	return l.source.Name()
}
