package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the fulfillment domain. It owns the vendor
// sub-orders produced by cart splitting and drives them from creation through
// payment confirmation, shipment fan-out, and cancellation.
//
// Order maintains these invariants:
//   - amount equals the sum of all active line items' cost x quantity across
//     all vendor sub-orders plus the sum of sub-order shipping costs
//   - finalOrderAmount equals amount minus the coupon discount, clamped at 0
//   - every status transition appends exactly one entry to the append-only
//     status history; the history is never reordered or truncated
//   - when every line item under a sub-order is cancelled the sub-order is
//     cancelled, and when every sub-order is cancelled the order is
//     cancelled; this propagation is computed child to parent, never set
//     directly by a caller
//   - sub-order ids are assigned only once the parent order id exists
//
// Orders are created once, mutated through their lifetime by the orchestrator
// use cases, and never physically deleted: cancellation and deletion are soft,
// preserving the record for audit and refund reconciliation.
type Order struct {
	id               kernel.UUID
	orderID          string
	userID           kernel.UUID
	amount           float64
	discount         float64
	couponDiscount   float64
	finalOrderAmount float64
	currency         string
	paymentMethod    PaymentMethod
	paymentStatus    PaymentStatus
	status           Status
	statusHistory    []StatusEvent
	shippingAddress  Address
	refund           RefundInfo
	extraData        map[string]string
	vendorOrders     []*VendorOrder
	gatewayOrderID   string
	isDeleted        bool
	version          int

	isConstructed bool
}

// NewOrder creates an order aggregate from its split vendor groups.
//
// The business order id must already be generated (the sequential id is part
// of the same unit of work as the insert); sub-order ids are derived from it
// here, 1-based in vendor-group order. COD orders skip PaymentPending and
// start Confirmed; prepaid orders start at PaymentPending and carry the
// gateway order reference used later to locate the order from the payment
// callback.
//
// The coupon discount is advisory input: callers pass the validated discount
// or zero, and the total is clamped at zero rather than going negative.
func NewOrder(
	id kernel.UUID,
	orderID string,
	userID kernel.UUID,
	paymentMethod PaymentMethod,
	shippingAddress Address,
	vendorOrders []*VendorOrder,
	couponDiscount float64,
	currency string,
	gatewayOrderID string,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
		paymentMethod.Validate(),
		shippingAddress.Validate(),
	); err != nil {
		return nil, err
	}
	if orderID == "" {
		return nil, errs.NewValueIsRequiredError("orderID")
	}
	if len(vendorOrders) == 0 {
		return nil, errs.NewValueIsRequiredError("vendor orders")
	}
	if couponDiscount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("coupon discount",
			fmt.Errorf("%f is negative", couponDiscount))
	}
	if currency == "" {
		currency = "INR"
	}

	o := &Order{
		id:              id,
		orderID:         orderID,
		userID:          userID,
		couponDiscount:  couponDiscount,
		currency:        currency,
		paymentMethod:   paymentMethod,
		paymentStatus:   PaymentStatusPending,
		shippingAddress: shippingAddress,
		extraData:       map[string]string{},
		vendorOrders:    vendorOrders,
		gatewayOrderID:  gatewayOrderID,
		isConstructed:   true,
	}

	for i, vo := range vendorOrders {
		if err := vo.assignSubOrderID(orderID, i+1); err != nil {
			return nil, err
		}
	}

	o.recomputeTotals()

	initial := PaymentPending
	if paymentMethod == PaymentMethodCOD {
		initial = Confirmed
	}
	o.setStatus(initial, time.Now())

	return o, nil
}

// RestoreOrderParams carries the persisted state for RestoreOrder.
type RestoreOrderParams struct {
	ID               kernel.UUID
	OrderID          string
	UserID           kernel.UUID
	Amount           float64
	Discount         float64
	CouponDiscount   float64
	FinalOrderAmount float64
	Currency         string
	PaymentMethod    PaymentMethod
	PaymentStatus    PaymentStatus
	Status           Status
	StatusHistory    []StatusEvent
	ShippingAddress  Address
	Refund           RefundInfo
	ExtraData        map[string]string
	VendorOrders     []*VendorOrder
	GatewayOrderID   string
	IsDeleted        bool
	Version          int
}

// RestoreOrder reconstructs an order aggregate from persistence.
// This method should be used only by repositories; it trusts the stored
// state and does not re-run creation-time validation beyond identity checks.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	if err := errors.Join(p.ID.Validate(), p.UserID.Validate(), p.Status.Validate()); err != nil {
		return nil, err
	}

	extra := p.ExtraData
	if extra == nil {
		extra = map[string]string{}
	}

	return &Order{
		id:               p.ID,
		orderID:          p.OrderID,
		userID:           p.UserID,
		amount:           p.Amount,
		discount:         p.Discount,
		couponDiscount:   p.CouponDiscount,
		finalOrderAmount: p.FinalOrderAmount,
		currency:         p.Currency,
		paymentMethod:    p.PaymentMethod,
		paymentStatus:    p.PaymentStatus,
		status:           p.Status,
		statusHistory:    p.StatusHistory,
		shippingAddress:  p.ShippingAddress,
		refund:           p.Refund,
		extraData:        extra,
		vendorOrders:     p.VendorOrders,
		gatewayOrderID:   p.GatewayOrderID,
		isDeleted:        p.IsDeleted,
		version:          p.Version,
		isConstructed:    true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed for direct struct instantiation.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the aggregate's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// OrderID returns the daily-sequential business order id.
func (o *Order) OrderID() string { return o.orderID }

// UserID returns the owning user's identifier.
func (o *Order) UserID() kernel.UUID { return o.userID }

// Amount returns the order total before discounts.
func (o *Order) Amount() float64 { return o.amount }

// Discount returns the accumulated line-level discount.
func (o *Order) Discount() float64 { return o.discount }

// CouponDiscount returns the applied coupon discount.
func (o *Order) CouponDiscount() float64 { return o.couponDiscount }

// FinalOrderAmount returns the payable total after the coupon discount.
func (o *Order) FinalOrderAmount() float64 { return o.finalOrderAmount }

// Currency returns the order currency.
func (o *Order) Currency() string { return o.currency }

// PaymentMethod returns the payment method chosen at creation.
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// Status returns the current top-level order status.
func (o *Order) Status() Status { return o.status }

// StatusHistory returns the append-only status history.
func (o *Order) StatusHistory() []StatusEvent { return o.statusHistory }

// ShippingAddress returns the address snapshot taken at creation.
func (o *Order) ShippingAddress() Address { return o.shippingAddress }

// Refund returns the refund bookkeeping block.
func (o *Order) Refund() RefundInfo { return o.refund }

// ExtraData returns the free-form admin annotations.
func (o *Order) ExtraData() map[string]string { return o.extraData }

// VendorOrders returns the owned vendor sub-orders.
func (o *Order) VendorOrders() []*VendorOrder { return o.vendorOrders }

// GatewayOrderID returns the external payment-gateway order reference.
func (o *Order) GatewayOrderID() string { return o.gatewayOrderID }

// IsDeleted reports the soft-delete flag.
func (o *Order) IsDeleted() bool { return o.isDeleted }

// Version returns the optimistic-concurrency token managed by the repository.
func (o *Order) Version() int { return o.version }

// VendorOrder finds an owned sub-order by its sub-order id.
func (o *Order) VendorOrder(subOrderID string) (*VendorOrder, error) {
	for _, vo := range o.vendorOrders {
		if vo.SubOrderID() == subOrderID {
			return vo, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("subOrderId", subOrderID)
}

// AnnotateExtra records a free-form admin note on the order.
func (o *Order) AnnotateExtra(key, value string) {
	o.extraData[key] = value
}

// MarkPaid records a verified payment capture: payment status becomes paid,
// the order transitions to Confirmed, and every sub-order is confirmed with
// the given tracking note.
//
// The pending-payment precondition makes confirmation idempotent: a webhook
// retry for an already-paid order is rejected here before any mutation.
func (o *Order) MarkPaid(note string) error {
	if o.paymentStatus != PaymentStatusPending {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("payment is already %s", o.paymentStatus))
	}

	newStatus, err := o.status.ConfirmPayment()
	if err != nil {
		return err
	}

	now := time.Now()
	o.paymentStatus = PaymentStatusPaid
	o.setStatus(newStatus, now)
	for _, vo := range o.vendorOrders {
		vo.confirm(note, now)
	}
	return nil
}

// FailPayment records a rejected payment verification.
// No shipments are attempted for a failed payment.
func (o *Order) FailPayment() error {
	if o.paymentStatus != PaymentStatusPending {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("payment is already %s", o.paymentStatus))
	}

	newStatus, err := o.status.FailPayment()
	if err != nil {
		return err
	}

	o.paymentStatus = PaymentStatusFailed
	o.setStatus(newStatus, time.Now())
	return nil
}

// RecordShipment marks a sub-order shipped with the carrier waybill.
// A sub-order can only reach shipped with a non-empty waybill number.
func (o *Order) RecordShipment(subOrderID, waybillNo, provider string) error {
	vo, err := o.VendorOrder(subOrderID)
	if err != nil {
		return err
	}
	return vo.ship(waybillNo, provider, time.Now())
}

// MarkVendorOrderPending records a failed or skipped shipment attempt on a
// sub-order with an explanatory note. countRetry increments the sub-order's
// shipment retry counter for genuine failures (as opposed to skips).
func (o *Order) MarkVendorOrderPending(subOrderID, note string, countRetry bool) error {
	vo, err := o.VendorOrder(subOrderID)
	if err != nil {
		return err
	}
	vo.markFulfillmentPending(note, countRetry, time.Now())
	return nil
}

// FinalizeFulfillment derives the top-level status from the shipment fan-out
// outcomes: Processing when at least one sub-order shipped, otherwise Pending.
// The order is never silently left at Confirmed after a fan-out.
func (o *Order) FinalizeFulfillment() error {
	if o.status != Confirmed {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to finalize fulfillment", o.status))
	}

	derived := Pending
	for _, vo := range o.vendorOrders {
		if vo.Status() == VendorOrderShipped {
			derived = Processing
			break
		}
	}

	o.setStatus(derived, time.Now())
	return nil
}

// Cancel cancels the whole order with a reason and an optional refund.
//
// Allowed only from PaymentPending, PaymentFailed, Confirmed, and Processing.
// The refund amount is validated against the order's payable total — a
// request exceeding it is rejected, never clamped. Cancellation is soft: the
// record survives for audit, and a paid order moves to refunded payment
// status when a refund is recorded.
func (o *Order) Cancel(reason string, refundAmount float64) error {
	if err := o.status.CanCancel(); err != nil {
		return err
	}
	if err := o.validateRefundAmount(refundAmount, o.finalOrderAmount); err != nil {
		return err
	}

	now := time.Now()
	for _, vo := range o.vendorOrders {
		if vo.Status().IsTerminal() {
			continue
		}
		if err := vo.cancel(reason, now); err != nil {
			return err
		}
	}

	o.setStatus(Cancelled, now)
	o.isDeleted = true
	o.recordRefund(refundAmount, reason, true)
	return nil
}

// CancelVendorOrder cancels a single vendor sub-order.
//
// Rejects if the sub-order is already cancelled or delivered. The refund
// amount is validated against the sub-order's value (active items plus its
// shipping cost). Totals are recomputed and the cancelled state propagates
// upward when this was the last live sub-order.
func (o *Order) CancelVendorOrder(subOrderID, reason string, refundAmount float64) error {
	vo, err := o.VendorOrder(subOrderID)
	if err != nil {
		return err
	}
	if err = vo.Status().CanCancel(); err != nil {
		return err
	}

	scope := vo.ActiveItemsValue() + vo.ShippingCost()
	if err = o.validateRefundAmount(refundAmount, scope); err != nil {
		return err
	}

	if err = vo.cancel(reason, time.Now()); err != nil {
		return err
	}

	o.recomputeTotals()
	o.propagateCancellation()
	o.recordRefund(refundAmount, reason, false)
	return nil
}

// CancelLineItem cancels one product within a vendor sub-order.
//
// Rejects if the item is already cancelled. The refund amount is validated
// against the item's line total. Cancelling the last active item cancels the
// sub-order, which in turn may cancel the order — both derived, bottom-up.
func (o *Order) CancelLineItem(subOrderID string, productID kernel.UUID, reason string, refundAmount float64) error {
	vo, err := o.VendorOrder(subOrderID)
	if err != nil {
		return err
	}

	item, err := vo.Item(productID)
	if err != nil {
		return err
	}
	if err = o.validateRefundAmount(refundAmount, item.Value()); err != nil {
		return err
	}

	if err = vo.cancelItem(productID, reason, time.Now()); err != nil {
		return err
	}

	o.recomputeTotals()
	o.propagateCancellation()
	o.recordRefund(refundAmount, reason, false)
	return nil
}

// setStatus transitions the order and appends exactly one history entry.
// Every top-level status change funnels through here.
func (o *Order) setStatus(status Status, at time.Time) {
	o.status = status
	o.statusHistory = append(o.statusHistory, StatusEvent{Status: status, At: at})
}

// recomputeTotals re-derives the monetary invariant from the current child
// state: active line items plus shipping of non-cancelled sub-orders, with
// the final amount clamped at zero.
func (o *Order) recomputeTotals() {
	var amount float64
	for _, vo := range o.vendorOrders {
		amount += vo.ActiveItemsValue()
		if vo.Status() != VendorOrderCancelled {
			amount += vo.ShippingCost()
		}
	}

	o.amount = amount
	o.finalOrderAmount = amount - o.couponDiscount
	if o.finalOrderAmount < 0 {
		o.finalOrderAmount = 0
	}
}

// propagateCancellation derives the order-level cancelled state from the
// children: when every sub-order is cancelled, the order becomes cancelled.
// One-directional, child to parent.
func (o *Order) propagateCancellation() {
	if o.status == Cancelled {
		return
	}

	for _, vo := range o.vendorOrders {
		if vo.Status() != VendorOrderCancelled {
			return
		}
	}

	o.setStatus(Cancelled, time.Now())
	o.isDeleted = true
}

// validateRefundAmount enforces the refund precondition: the requested
// amount must not exceed the cancelled scope's total. Violations are
// rejected, never clamped.
func (o *Order) validateRefundAmount(requested, scopeTotal float64) error {
	if requested < 0 {
		return errs.NewValueIsInvalidErrorWithCause("refund amount",
			fmt.Errorf("%f is negative", requested))
	}
	if requested > scopeTotal {
		return errs.NewValueIsOutOfRangeError("refund amount", requested, 0, scopeTotal)
	}
	return nil
}

// recordRefund books a validated refund request. wholeOrder marks the
// payment itself refunded when the order was already paid.
func (o *Order) recordRefund(amount float64, reason string, wholeOrder bool) {
	if amount <= 0 {
		return
	}

	o.refund.Requested = true
	o.refund.Status = RefundRequested
	o.refund.Amount += amount
	o.refund.Reason = reason

	if wholeOrder && o.paymentStatus == PaymentStatusPaid {
		o.paymentStatus = PaymentStatusRefunded
	}
}
