package di

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/taxboard/internal/config"
	"github.com/aristath/taxboard/internal/modules/ledger"
	"github.com/aristath/taxboard/internal/modules/sessions"
	"github.com/aristath/taxboard/internal/scheduler"
)

// Job schedules. Cron specs carry a seconds field.
const (
	SessionEvictionSchedule = "@every 1m"
	CheckDatabasesSchedule  = "0 0 3 * * *"
	WALCheckpointSchedule   = "@every 1h"

	ledgerRefreshTimeout = 2 * time.Minute
)

// RegisterJobs registers all background jobs with the scheduler
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) (*JobInstances, error) {
	if container == nil || container.Scheduler == nil {
		return nil, fmt.Errorf("container cannot be nil")
	}
	sched := container.Scheduler
	instances := &JobInstances{}

	if cfg.LedgerRefreshSchedule != "" {
		instances.LedgerRefresh = ledger.NewRefreshJob(container.LedgerLoader, ledgerRefreshTimeout, log)
		if err := sched.AddJob(cfg.LedgerRefreshSchedule, instances.LedgerRefresh); err != nil {
			return nil, fmt.Errorf("failed to register ledger refresh job: %w", err)
		}
	}

	instances.SessionEviction = sessions.NewEvictionJob(container.SessionStore, container.EventManager, log)
	if err := sched.AddJob(SessionEvictionSchedule, instances.SessionEviction); err != nil {
		return nil, fmt.Errorf("failed to register session eviction job: %w", err)
	}

	instances.CheckDatabases = scheduler.NewCheckDatabasesJob(container.SnapshotsDB)
	instances.CheckDatabases.SetLogger(log)
	if err := sched.AddJob(CheckDatabasesSchedule, instances.CheckDatabases); err != nil {
		return nil, fmt.Errorf("failed to register database check job: %w", err)
	}

	instances.WALCheckpoints = scheduler.NewCheckWALCheckpointsJob(container.SnapshotsDB)
	instances.WALCheckpoints.SetLogger(log)
	if err := sched.AddJob(WALCheckpointSchedule, instances.WALCheckpoints); err != nil {
		return nil, fmt.Errorf("failed to register WAL checkpoint job: %w", err)
	}

	log.Info().Strs("jobs", sched.Jobs()).Msg("Jobs registered")
	return instances, nil
}
