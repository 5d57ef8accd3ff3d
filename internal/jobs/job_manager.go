package jobs

import (
	"fmt"
	"log/slog"

	"foodorders/internal/core/application/usecases/queries"
	"foodorders/internal/metrics"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	activeOrdersGaugeJob *ActiveOrdersGaugeJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	countsHandler queries.GetActiveOrderCountsQueryHandler,
	registry *metrics.Registry,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		activeOrdersGaugeJob: NewActiveOrdersGaugeJob(countsHandler, registry, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.activeOrdersGaugeJob.Start(); err != nil {
		return fmt.Errorf("failed to start active orders gauge job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.activeOrdersGaugeJob.Stop()
}
