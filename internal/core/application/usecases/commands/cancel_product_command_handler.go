package commands

import (
	"context"
)

// CancelProductCommandHandler handles cancellation of a single line item.
// When the last active item of a sub-order is cancelled the aggregate derives
// the sub-order cancelled, and likewise upward to the whole order.
type CancelProductCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelProductCommandHandler creates a handler for line item
// cancellation.
func NewCancelProductCommandHandler(uowFactory OrderUoWFactory) CancelProductCommandHandler {
	return CancelProductCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the line item cancellation command.
func (h *CancelProductCommandHandler) Handle(ctx context.Context, cmd CancelProductCommand) error {
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

	if err = ord.CancelLineItem(cmd.SubOrderID(), cmd.ProductID(), cmd.Reason(), cmd.RefundAmount()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
