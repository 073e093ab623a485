package ledger

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// RefreshJob refetches the ledger on a schedule.
type RefreshJob struct {
	loader  *Loader
	timeout time.Duration
	log     zerolog.Logger
}

// NewRefreshJob creates the job. Each run is bounded by timeout.
func NewRefreshJob(loader *Loader, timeout time.Duration, log zerolog.Logger) *RefreshJob {
	return &RefreshJob{
		loader:  loader,
		timeout: timeout,
		log:     log.With().Str("job", "ledger_refresh").Logger(),
	}
}

// Run executes one refresh.
func (j *RefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	if err := j.loader.Refresh(ctx); err != nil {
		return err
	}
	j.log.Info().Dur("duration", time.Since(start)).Msg("Ledger refreshed")
	return nil
}

// Name returns the job name for scheduling and logging.
func (j *RefreshJob) Name() string {
	return "ledger_refresh"
}
