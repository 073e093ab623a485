package di

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/taxboard/internal/config"
	"github.com/aristath/taxboard/internal/events"
	"github.com/aristath/taxboard/internal/modules/ledger"
	"github.com/aristath/taxboard/internal/modules/sessions"
	"github.com/aristath/taxboard/internal/scheduler"
)

// InitializeServices creates the event bus, the ledger pipeline, the session
// store and the scheduler
func InitializeServices(ctx context.Context, container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil {
		return fmt.Errorf("container cannot be nil")
	}

	container.EventBus = events.NewBus(log)
	container.EventManager = events.NewManager(container.EventBus, log)

	container.LedgerStore = ledger.NewStore(container.EventManager, log)

	source, err := ledger.NewSource(ctx, cfg.LedgerSource, ledger.Options{
		S3: ledger.S3Options{
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create ledger source: %w", err)
	}
	container.LedgerSource = source

	var snapshots ledger.Snapshots
	if container.SnapshotRepo != nil {
		snapshots = container.SnapshotRepo
	}
	container.LedgerLoader = ledger.NewLoader(
		source,
		container.LedgerStore,
		snapshots,
		container.EventManager,
		cfg.SnapshotKeep,
		log,
	)

	container.SessionStore = sessions.NewStore(container.LedgerStore, cfg.SessionTTL, log)
	container.Scheduler = scheduler.New(log)

	log.Info().Str("source", source.Name()).Msg("Services initialized")
	return nil
}
