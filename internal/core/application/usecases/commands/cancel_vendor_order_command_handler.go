package commands

import (
	"context"
)

// CancelVendorOrderCommandHandler handles cancellation of a single vendor
// sub-order. The aggregate cascades the cancellation to the sub-order's
// active items, recomputes totals, and propagates a fully-cancelled state
// upward to the order.
type CancelVendorOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelVendorOrderCommandHandler creates a handler for vendor sub-order
// cancellation.
func NewCancelVendorOrderCommandHandler(uowFactory OrderUoWFactory) CancelVendorOrderCommandHandler {
	return CancelVendorOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the vendor sub-order cancellation command.
func (h *CancelVendorOrderCommandHandler) Handle(ctx context.Context, cmd CancelVendorOrderCommand) error {
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

	ord, err := uow.OrderRepository().GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = ord.CancelVendorOrder(cmd.SubOrderID(), cmd.Reason(), cmd.RefundAmount()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
