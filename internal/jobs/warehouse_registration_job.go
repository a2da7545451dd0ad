package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
)

// WarehouseRegistrationJob sweeps vendors whose warehouse registration is
// incomplete and drives one registration attempt per vendor per run.
//
// One vendor's failure never aborts the sweep: the attempt outcome is
// recorded on the vendor and the loop moves on. Vendors that exhaust their
// retry budget drop out of the pending query until an operator resets them.
type WarehouseRegistrationJob struct {
	pendingHandler  queries.GetPendingWarehousesQueryHandler
	registerHandler commands.RegisterWarehouseCommandHandler
	cron            *cron.Cron
	schedule        string
	logger          *slog.Logger
}

// NewWarehouseRegistrationJob creates the registration sweep job with the
// given cron schedule.
func NewWarehouseRegistrationJob(
	pendingHandler queries.GetPendingWarehousesQueryHandler,
	registerHandler commands.RegisterWarehouseCommandHandler,
	schedule string,
	logger *slog.Logger,
) *WarehouseRegistrationJob {
	return &WarehouseRegistrationJob{
		pendingHandler:  pendingHandler,
		registerHandler: registerHandler,
		cron:            cron.New(cron.WithSeconds()),
		schedule:        schedule,
		logger:          logger.With("component", "warehouse_registration_job"),
	}
}

// Start schedules the sweep.
func (j *WarehouseRegistrationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Warehouse registration job started", "schedule", j.schedule)
	return nil
}

// Run executes one sweep. Exported so operators can trigger it outside the
// schedule.
func (j *WarehouseRegistrationJob) Run(ctx context.Context) {
	pending, err := j.pendingHandler.Handle(ctx, queries.NewGetPendingWarehousesQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending warehouse lookup failed", "error", err)
		return
	}

	if len(pending) == 0 {
		return
	}

	for _, vendor := range pending {
		cmd, cmdErr := commands.NewRegisterWarehouseCommand(vendor.VendorID)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Invalid vendor in pending set",
				"vendor_id", vendor.VendorID.String(), "error", cmdErr)
			continue
		}

		resp, handleErr := j.registerHandler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Warehouse registration attempt failed",
				"vendor_id", vendor.VendorID.String(), "error", handleErr)
			continue
		}

		j.logger.InfoContext(ctx, "Warehouse registration attempt finished",
			"vendor_id", vendor.VendorID.String(),
			"status", resp.Status,
			"retry_count", resp.RetryCount,
			"error_message", resp.ErrorMessage)
	}
}

// Stop stops the sweep.
func (j *WarehouseRegistrationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Warehouse registration job stopped")
}
