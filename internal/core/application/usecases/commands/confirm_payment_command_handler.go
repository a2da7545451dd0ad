package commands

import (
	"context"
	"fmt"
	"log/slog"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// Fan-out outcome labels recorded per vendor sub-order during payment
// confirmation.
const (
	OutcomeShipped             = "shipped"
	OutcomeWaybillExists       = "waybill already exists"
	OutcomeManualSkipped       = "skipped, requires manual fulfillment"
	OutcomeWarehouseIneligible = "vendor warehouse not registered"
	OutcomeShipmentFailed      = "shipment creation failed"
)

// FanOutOutcome is the recorded result for one vendor sub-order of the
// shipment fan-out.
type FanOutOutcome struct {
	SubOrderID string
	Outcome    string
	WaybillNo  string
	Note       string
}

// ConfirmPaymentResponse reports the confirmation result and every fan-out
// outcome. Verified is false when the signature check rejected the callback.
type ConfirmPaymentResponse struct {
	OrderID  string
	Verified bool
	Status   string
	Outcomes []FanOutOutcome
}

// ConfirmPaymentCommandHandler verifies a payment callback, transitions the
// order, and fans out shipment creation across all vendor sub-orders.
//
// The fan-out has independent outcomes: one vendor's shipment failure never
// blocks or rolls back another vendor's successful shipment. All outcomes are
// merged into the aggregate and persisted with one optimistically locked
// write, so a webhook retry racing the first attempt loses cleanly on the
// version check instead of interleaving histories.
type ConfirmPaymentCommandHandler struct {
	uowFactory      FulfillmentUoWFactory
	gateway         ports.PaymentGateway
	shipmentCreator services.ShipmentCreator
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmation
// and shipment fan-out.
func NewConfirmPaymentCommandHandler(
	uowFactory FulfillmentUoWFactory,
	gateway ports.PaymentGateway,
	shipmentCreator services.ShipmentCreator,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory:      uowFactory,
		gateway:         gateway,
		shipmentCreator: shipmentCreator,
	}
}

// Handle processes the payment confirmation command.
//
// A failed signature verification transitions the order to payment_failed and
// stops: no shipments are attempted. A confirmation for an order whose
// payment is no longer pending is rejected as a precondition violation, which
// makes webhook retries idempotent.
func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) (ConfirmPaymentResponse, error) {
	if err := cmd.Validate(); err != nil {
		return ConfirmPaymentResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ConfirmPaymentResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().GetByGatewayOrderID(ctx, cmd.GatewayOrderID())
	if err != nil {
		return ConfirmPaymentResponse{}, err
	}

	verified := h.gateway.Verify(ports.PaymentVerification{
		GatewayOrderID: cmd.GatewayOrderID(),
		PaymentID:      cmd.PaymentID(),
		Signature:      cmd.Signature(),
	})

	if !verified {
		if err = ord.FailPayment(); err != nil {
			return ConfirmPaymentResponse{}, err
		}
		if err = uow.OrderRepository().Update(ctx, ord); err != nil {
			return ConfirmPaymentResponse{}, err
		}
		if err = uow.Commit(ctx); err != nil {
			return ConfirmPaymentResponse{}, err
		}
		return ConfirmPaymentResponse{
			OrderID:  ord.OrderID(),
			Verified: false,
			Status:   ord.Status().String(),
		}, nil
	}

	if err = ord.MarkPaid(fmt.Sprintf("payment %s confirmed", cmd.PaymentID())); err != nil {
		return ConfirmPaymentResponse{}, err
	}

	outcomes := make([]FanOutOutcome, 0, len(ord.VendorOrders()))
	for _, vo := range ord.VendorOrders() {
		outcome, err := h.fulfillVendorOrder(ctx, uow, ord, vo)
		if err != nil {
			return ConfirmPaymentResponse{}, err
		}
		outcomes = append(outcomes, outcome)
	}

	if err = ord.FinalizeFulfillment(); err != nil {
		return ConfirmPaymentResponse{}, err
	}

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return ConfirmPaymentResponse{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return ConfirmPaymentResponse{}, err
	}

	return ConfirmPaymentResponse{
		OrderID:  ord.OrderID(),
		Verified: true,
		Status:   ord.Status().String(),
		Outcomes: outcomes,
	}, nil
}

// fulfillVendorOrder runs one sub-order through the shipment decision tree.
// External failures become recorded notes on the sub-order, never errors; the
// returned error is reserved for aggregate-level violations that must abort
// the confirmation.
func (h *ConfirmPaymentCommandHandler) fulfillVendorOrder(
	ctx context.Context,
	uow FulfillmentUoW,
	ord *order.Order,
	vo *order.VendorOrder,
) (FanOutOutcome, error) {
	subOrderID := vo.SubOrderID()

	if vo.WaybillNo() != nil {
		return FanOutOutcome{
			SubOrderID: subOrderID,
			Outcome:    OutcomeWaybillExists,
			WaybillNo:  *vo.WaybillNo(),
		}, nil
	}

	if vo.ShippingMethod().IsManualOnly() {
		if err := ord.MarkVendorOrderPending(subOrderID, OutcomeManualSkipped, false); err != nil {
			return FanOutOutcome{}, err
		}
		return FanOutOutcome{SubOrderID: subOrderID, Outcome: OutcomeManualSkipped}, nil
	}

	vnd, err := uow.VendorRepository().Get(ctx, vo.VendorID())
	if err != nil {
		note := fmt.Sprintf("vendor lookup failed: %v", err)
		if markErr := ord.MarkVendorOrderPending(subOrderID, note, false); markErr != nil {
			return FanOutOutcome{}, markErr
		}
		return FanOutOutcome{SubOrderID: subOrderID, Outcome: OutcomeShipmentFailed, Note: note}, nil
	}

	if !vnd.Warehouse().IsRegistered() {
		note := fmt.Sprintf("%s (warehouse status: %s)", OutcomeWarehouseIneligible, vnd.Warehouse().Status())
		if err = ord.MarkVendorOrderPending(subOrderID, note, false); err != nil {
			return FanOutOutcome{}, err
		}
		return FanOutOutcome{SubOrderID: subOrderID, Outcome: OutcomeWarehouseIneligible, Note: note}, nil
	}

	shipment, err := h.shipmentCreator.Create(ctx, ord, subOrderID, vnd)
	if err != nil {
		note := fmt.Sprintf("%s: %v", OutcomeShipmentFailed, err)
		slog.Warn("shipment creation failed",
			"order_id", ord.OrderID(), "sub_order_id", subOrderID, "error", err)
		if markErr := ord.MarkVendorOrderPending(subOrderID, note, true); markErr != nil {
			return FanOutOutcome{}, markErr
		}
		return FanOutOutcome{SubOrderID: subOrderID, Outcome: OutcomeShipmentFailed, Note: note}, nil
	}

	if err = ord.RecordShipment(subOrderID, shipment.WaybillNo, shipment.Provider); err != nil {
		return FanOutOutcome{}, err
	}

	return FanOutOutcome{
		SubOrderID: subOrderID,
		Outcome:    OutcomeShipped,
		WaybillNo:  shipment.WaybillNo,
	}, nil
}
