// Package di provides dependency injection type definitions.
package di

import (
	"github.com/aristath/taxboard/internal/database"
	"github.com/aristath/taxboard/internal/events"
	"github.com/aristath/taxboard/internal/modules/ledger"
	"github.com/aristath/taxboard/internal/modules/sessions"
	"github.com/aristath/taxboard/internal/scheduler"
)

// Container holds all dependencies for the application. It is created by
// Wire and handed to the HTTP server.
type Container struct {
	// Databases
	SnapshotsDB *database.DB

	// Repositories
	SnapshotRepo *ledger.SnapshotRepository

	// Events
	EventBus     *events.Bus
	EventManager *events.Manager

	// Services
	LedgerStore  *ledger.Store
	LedgerSource ledger.Source
	LedgerLoader *ledger.Loader
	SessionStore *sessions.Store
	Scheduler    *scheduler.Scheduler
}

// Close releases the container's databases.
func (c *Container) Close() error {
	if c == nil || c.SnapshotsDB == nil {
		return nil
	}
	return c.SnapshotsDB.Close()
}

// JobInstances holds the registered jobs for manual triggering.
type JobInstances struct {
	LedgerRefresh   *ledger.RefreshJob // nil when refreshing is disabled
	SessionEviction *sessions.EvictionJob
	CheckDatabases  *scheduler.CheckDatabasesJob
	WALCheckpoints  *scheduler.CheckWALCheckpointsJob
}
