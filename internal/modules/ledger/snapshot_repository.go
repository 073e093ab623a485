package ledger

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/taxboard/internal/domain"
)

// ErrNoSnapshot is returned when the repository holds no snapshot.
var ErrNoSnapshot = errors.New("no ledger snapshot")

// Snapshot is a stored ledger.
type Snapshot struct {
	ID        string
	Source    string
	FetchedAt time.Time
	Checksum  string
	Ledger    *domain.Ledger
}

// SnapshotRepository persists ledgers as msgpack blobs in the snapshots
// database.
type SnapshotRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSnapshotRepository creates a repository over a migrated snapshots database.
func NewSnapshotRepository(db *sql.DB, log zerolog.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		db:  db,
		log: log.With().Str("repo", "ledger_snapshots").Logger(),
	}
}

// Save stores a ledger. Saving the same content as the newest snapshot only
// refreshes its timestamp.
func (r *SnapshotRepository) Save(ctx context.Context, source string, l *domain.Ledger) (*Snapshot, error) {
	payload, err := encodeLedger(l)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(payload)
	checksum := hex.EncodeToString(sum[:])
	now := time.Now()

	var latestID, latestSum string
	err = r.db.QueryRowContext(ctx,
		`SELECT id, checksum FROM ledger_snapshots ORDER BY fetched_at DESC, rowid DESC LIMIT 1`,
	).Scan(&latestID, &latestSum)
	switch {
	case err == nil && latestSum == checksum:
		if _, err := r.db.ExecContext(ctx,
			`UPDATE ledger_snapshots SET fetched_at = ?, source = ? WHERE id = ?`,
			now.UnixNano(), source, latestID,
		); err != nil {
			return nil, fmt.Errorf("failed to touch snapshot: %w", err)
		}
		r.log.Debug().Str("id", latestID).Msg("Ledger unchanged, snapshot refreshed")
		return &Snapshot{ID: latestID, Source: source, FetchedAt: now, Checksum: checksum, Ledger: l}, nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("failed to read latest snapshot: %w", err)
	}

	snap := &Snapshot{
		ID:        uuid.New().String(),
		Source:    source,
		FetchedAt: now,
		Checksum:  checksum,
		Ledger:    l,
	}
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO ledger_snapshots (id, source, fetched_at, checksum, payload) VALUES (?, ?, ?, ?, ?)`,
		snap.ID, snap.Source, now.UnixNano(), checksum, payload,
	); err != nil {
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	r.log.Info().Str("id", snap.ID).Int("bytes", len(payload)).Msg("Ledger snapshot saved")
	return snap, nil
}

// Latest returns the newest snapshot or ErrNoSnapshot.
func (r *SnapshotRepository) Latest(ctx context.Context) (*Snapshot, error) {
	var (
		snap      Snapshot
		fetchedAt int64
		payload   []byte
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, source, fetched_at, checksum, payload FROM ledger_snapshots
		 ORDER BY fetched_at DESC, rowid DESC LIMIT 1`,
	).Scan(&snap.ID, &snap.Source, &fetchedAt, &snap.Checksum, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest snapshot: %w", err)
	}

	l, err := decodeLedger(payload)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", snap.ID, err)
	}
	snap.FetchedAt = time.Unix(0, fetchedAt)
	snap.Ledger = l
	return &snap, nil
}

// Prune keeps the newest keep snapshots and deletes the rest. keep <= 0
// keeps everything.
func (r *SnapshotRepository) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM ledger_snapshots WHERE id NOT IN (
			SELECT id FROM ledger_snapshots ORDER BY fetched_at DESC, rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned snapshots: %w", err)
	}
	if n > 0 {
		r.log.Info().Int64("deleted", n).Int("keep", keep).Msg("Pruned ledger snapshots")
	}
	return n, nil
}

// Count returns the number of stored snapshots.
func (r *SnapshotRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ledger_snapshots`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return n, nil
}

func encodeLedger(l *domain.Ledger) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.SetSortMapKeys(true)
	if err := enc.Encode(l); err != nil {
		return nil, fmt.Errorf("failed to encode ledger: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeLedger(payload []byte) (*domain.Ledger, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(payload))
	dec.SetCustomStructTag("json")
	var l domain.Ledger
	if err := dec.Decode(&l); err != nil {
		return nil, fmt.Errorf("failed to decode ledger: %w", err)
	}
	return &l, nil
}
