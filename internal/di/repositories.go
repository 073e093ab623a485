package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/taxboard/internal/modules/ledger"
)

// InitializeRepositories creates the repositories on the opened databases
func InitializeRepositories(container *Container, log zerolog.Logger) error {
	if container == nil || container.SnapshotsDB == nil {
		return fmt.Errorf("snapshots database not initialized")
	}

	container.SnapshotRepo = ledger.NewSnapshotRepository(container.SnapshotsDB.Conn(), log)
	return nil
}
