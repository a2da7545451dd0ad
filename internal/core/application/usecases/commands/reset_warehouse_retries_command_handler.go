package commands

import (
	"context"
)

// ResetWarehouseRetriesCommandHandler clears a vendor's registration retry
// counter, restoring eligibility for further attempts. Operator action only;
// a registered warehouse is left untouched.
type ResetWarehouseRetriesCommandHandler struct {
	uowFactory VendorUoWFactory
}

// NewResetWarehouseRetriesCommandHandler creates a handler for retry counter
// resets.
func NewResetWarehouseRetriesCommandHandler(uowFactory VendorUoWFactory) ResetWarehouseRetriesCommandHandler {
	return ResetWarehouseRetriesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reset command.
func (h *ResetWarehouseRetriesCommandHandler) Handle(ctx context.Context, cmd ResetWarehouseRetriesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	vnd, err := uow.VendorRepository().Get(ctx, cmd.VendorID())
	if err != nil {
		return err
	}

	vnd.ResetWarehouseRetries()

	if err = uow.VendorRepository().Update(ctx, vnd); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
