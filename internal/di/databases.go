package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/taxboard/internal/config"
	"github.com/aristath/taxboard/internal/database"
)

// InitializeDatabases opens the snapshot database and applies its schema
func InitializeDatabases(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	snapshotsDB, err := database.New(database.Config{
		Path:    cfg.SnapshotDBPath(),
		Profile: database.ProfileCache, // Snapshots can always be refetched
		Name:    "snapshots",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize snapshots database: %w", err)
	}
	if err := snapshotsDB.Migrate(); err != nil {
		snapshotsDB.Close()
		return nil, fmt.Errorf("failed to migrate snapshots database: %w", err)
	}
	container.SnapshotsDB = snapshotsDB

	log.Info().Str("path", snapshotsDB.Path()).Msg("Databases initialized")
	return container, nil
}
