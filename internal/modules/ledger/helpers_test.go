package ledger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/aristath/taxboard/internal/database"
	"github.com/aristath/taxboard/internal/domain"
	"github.com/aristath/taxboard/internal/events"
)

func testLogger() zerolog.Logger {
	return zerolog.New(nil).Level(zerolog.Disabled)
}

func fixturePath() string {
	return filepath.Join("testdata", "ledger.json")
}

func loadFixture(t *testing.T) *domain.Ledger {
	t.Helper()
	f, err := os.Open(fixturePath())
	require.NoError(t, err)
	defer f.Close()
	l, err := Decode(f)
	require.NoError(t, err)
	return l
}

func newSnapshotRepo(t *testing.T) *SnapshotRepository {
	t.Helper()
	db, err := database.New(database.Config{
		Path: filepath.Join(t.TempDir(), "snapshots.db"),
		Name: "snapshots",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())
	return NewSnapshotRepository(db.Conn(), testLogger())
}

type recordedEmitter struct {
	mu     sync.Mutex
	events []events.EventData
}

func (r *recordedEmitter) EmitTyped(_ string, data events.EventData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
}

func (r *recordedEmitter) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}

type stubSource struct {
	ledger *domain.Ledger
	err    error
	calls  int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(context.Context) (*domain.Ledger, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.ledger, nil
}

var errUnreachable = errors.New("unreachable")
