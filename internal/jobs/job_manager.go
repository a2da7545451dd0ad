// Package jobs provides scheduled background tasks for the marketplace.
// Jobs are cron-driven (github.com/robfig/cron/v3) and only orchestrate
// command and query handlers; all business rules stay in the core.
package jobs

import (
	"fmt"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	warehouseRegistrationJob *WarehouseRegistrationJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	pendingHandler queries.GetPendingWarehousesQueryHandler,
	registerHandler commands.RegisterWarehouseCommandHandler,
	warehouseSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		warehouseRegistrationJob: NewWarehouseRegistrationJob(
			pendingHandler, registerHandler, warehouseSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.warehouseRegistrationJob.Start(); err != nil {
		return fmt.Errorf("failed to start warehouse registration job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.warehouseRegistrationJob.Stop()
}
