package scheduler

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/taxboard/internal/database"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(database.Config{
		Path: filepath.Join(t.TempDir(), "snapshots.db"),
		Name: "snapshots",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())
	return db
}

func TestCheckDatabasesJob(t *testing.T) {
	job := NewCheckDatabasesJob(newTestDB(t), nil)
	job.SetLogger(testLogger())

	assert.Equal(t, "check_databases", job.Name())
	assert.NoError(t, job.Run())
}

func TestCheckWALCheckpointsJob(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Conn().Exec(`INSERT INTO ledger_snapshots (id, source, fetched_at, checksum, payload) VALUES ('a', 'test', 1, 'x', x'00')`)
	require.NoError(t, err)

	job := NewCheckWALCheckpointsJob(db, nil)
	job.SetLogger(testLogger())

	assert.Equal(t, "check_wal_checkpoints", job.Name())
	assert.NoError(t, job.Run())
}

func TestDatabaseJobs_NoDatabases(t *testing.T) {
	assert.NoError(t, NewCheckDatabasesJob().Run())
	assert.NoError(t, NewCheckWALCheckpointsJob().Run())
}
