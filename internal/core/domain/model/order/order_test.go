package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

const testOrderID = "ODR20250131AB0007"

func mustAddress(t *testing.T) Address {
	t.Helper()
	addr, err := NewAddress("Asha Rao", "9876543210", "12 MG Road", "", "Bengaluru", "KA", "560001", "IN")
	require.NoError(t, err)
	return addr
}

func mustOrder(t *testing.T, method PaymentMethod, couponDiscount float64, vendorOrders ...*VendorOrder) *Order {
	t.Helper()
	gatewayOrderID := ""
	if method == PaymentMethodPrepaid {
		gatewayOrderID = "gw_order_123"
	}
	o, err := NewOrder(kernel.NewUUID(), testOrderID, kernel.NewUUID(),
		method, mustAddress(t), vendorOrders, couponDiscount, "INR", gatewayOrderID)
	require.NoError(t, err)
	return o
}

func TestNewOrderPrepaid(t *testing.T) {
	first := mustVendorOrder(t, mustLineItem(t, "Clay Mug", 2, 250, 0.4))
	second := mustVendorOrder(t, mustLineItem(t, "Vase", 1, 900, 1.5))
	o := mustOrder(t, PaymentMethodPrepaid, 0, first, second)

	assert.Equal(t, PaymentPending, o.Status())
	assert.Equal(t, PaymentStatusPending, o.PaymentStatus())
	assert.Equal(t, "gw_order_123", o.GatewayOrderID())
	require.Len(t, o.StatusHistory(), 1)
	assert.Equal(t, PaymentPending, o.StatusHistory()[0].Status)

	// Sub-order ids derive from the parent id, 1-based in group order.
	assert.Equal(t, testOrderID+"-1", first.SubOrderID())
	assert.Equal(t, testOrderID+"-2", second.SubOrderID())
}

func TestNewOrderCODStartsConfirmed(t *testing.T) {
	o := mustOrder(t, PaymentMethodCOD, 0, mustVendorOrder(t, mustLineItem(t, "Clay Mug", 1, 250, 0.4)))

	assert.Equal(t, Confirmed, o.Status())
	assert.Equal(t, PaymentStatusPending, o.PaymentStatus())
}

func TestNewOrderComputesTotals(t *testing.T) {
	// 2x250 + 1x900 items, 60 shipping per sub-order.
	first := mustVendorOrder(t, mustLineItem(t, "Clay Mug", 2, 250, 0.4))
	second := mustVendorOrder(t, mustLineItem(t, "Vase", 1, 900, 1.5))
	o := mustOrder(t, PaymentMethodPrepaid, 100, first, second)

	assert.InDelta(t, 1520, o.Amount(), 0.001)
	assert.InDelta(t, 100, o.CouponDiscount(), 0.001)
	assert.InDelta(t, 1420, o.FinalOrderAmount(), 0.001)
}

func TestNewOrderClampsFinalAmountAtZero(t *testing.T) {
	vo := mustVendorOrder(t, mustLineItem(t, "Sticker", 1, 10, 0.01))
	o := mustOrder(t, PaymentMethodPrepaid, 10000, vo)

	assert.Zero(t, o.FinalOrderAmount())
}

func TestNewOrderValidation(t *testing.T) {
	vo := mustVendorOrder(t, mustLineItem(t, "Clay Mug", 1, 250, 0.4))

	_, err := NewOrder(kernel.NewUUID(), "", kernel.NewUUID(),
		PaymentMethodCOD, mustAddress(t), []*VendorOrder{vo}, 0, "INR", "")
	assert.Error(t, err, "empty order id")

	_, err = NewOrder(kernel.NewUUID(), testOrderID, kernel.NewUUID(),
		PaymentMethodCOD, mustAddress(t), nil, 0, "INR", "")
	assert.Error(t, err, "no vendor orders")

	_, err = NewOrder(kernel.NewUUID(), testOrderID, kernel.NewUUID(),
		PaymentMethodCOD, mustAddress(t), []*VendorOrder{vo}, -5, "INR", "")
	assert.Error(t, err, "negative coupon discount")
}

func TestOrderValidateNotConstructed(t *testing.T) {
	var o Order
	assert.ErrorIs(t, o.Validate(), ErrOrderIsNotConstructed)
}

func TestMarkPaid(t *testing.T) {
	first := mustVendorOrder(t, mustLineItem(t, "Clay Mug", 1, 250, 0.4))
	second := mustVendorOrder(t, mustLineItem(t, "Vase", 1, 900, 1.5))
	o := mustOrder(t, PaymentMethodPrepaid, 0, first, second)

	require.NoError(t, o.MarkPaid("payment captured"))

	assert.Equal(t, PaymentStatusPaid, o.PaymentStatus())
	assert.Equal(t, Confirmed, o.Status())
	assert.Equal(t, VendorOrderConfirmed, first.Status())
	assert.Equal(t, VendorOrderConfirmed, second.Status())
	require.Len(t, o.StatusHistory(), 2)

	// A webhook retry for an already-paid order is rejected before mutation.
	assert.Error(t, o.MarkPaid("payment captured"))
	assert.Len(t, o.StatusHistory(), 2)
}

func TestMarkPaidSkipsCancelledSubOrders(t *testing.T) {
	first := mustVendorOrder(t, mustLineItem(t, "Clay Mug", 1, 250, 0.4))
	second := mustVendorOrder(t, mustLineItem(t, "Vase", 1, 900, 1.5))
	o := mustOrder(t, PaymentMethodPrepaid, 0, first, second)

	require.NoError(t, o.CancelVendorOrder(first.SubOrderID(), "out of stock", 0))
	require.NoError(t, o.MarkPaid("payment captured"))

	assert.Equal(t, VendorOrderCancelled, first.Status())
	assert.Equal(t, VendorOrderConfirmed, second.Status())
}

func TestFailPayment(t *testing.T) {
	o := mustOrder(t, PaymentMethodPrepaid, 0, mustVendorOrder(t, mustLineItem(t, "Clay Mug", 1, 250, 0.4)))

	require.NoError(t, o.FailPayment())

	assert.Equal(t, PaymentStatusFailed, o.PaymentStatus())
	assert.Equal(t, PaymentFailed, o.Status())

	assert.Error(t, o.FailPayment(), "already failed payment status")
}

func TestRecordShipment(t *testing.T) {
	vo := mustVendorOrder(t, mustLineItem(t, "Clay Mug", 1, 250, 0.4))
	o := mustOrder(t, PaymentMethodPrepaid, 0, vo)
	require.NoError(t, o.MarkPaid("payment captured"))

	require.NoError(t, o.RecordShipment(vo.SubOrderID(), "WB998877", "carrier"))

	assert.Equal(t, VendorOrderShipped, vo.Status())
	require.NotNil(t, vo.WaybillNo())
	assert.Equal(t, "WB998877", *vo.WaybillNo())
	assert.Equal(t, "carrier", vo.ShippingProvider())
}

func TestRecordShipmentRequiresWaybill(t *testing.T) {
	vo := mustVendorOrder(t, mustLineItem(t, "Clay Mug", 1, 250, 0.4))
	o := mustOrder(t, PaymentMethodPrepaid, 0, vo)
	require.NoError(t, o.MarkPaid("payment captured"))

	assert.Error(t, o.RecordShipment(vo.SubOrderID(), "", "carrier"))
	assert.Equal(t, VendorOrderConfirmed, vo.Status())
}

func TestRecordShipmentUnknownSubOrder(t *testing.T) {
	o := mustOrder(t, PaymentMethodPrepaid, 0, mustVendorOrder(t, mustLineItem(t, "Clay Mug", 1, 250, 0.4)))

	var notFoundErr *errs.ObjectNotFoundError
	assert.ErrorAs(t, o.RecordShipment("nope", "WB1", ""), &notFoundErr)
}

func TestFinalizeFulfillment(t *testing.T) {
	first := mustVendorOrder(t, mustLineItem(t, "Clay Mug", 1, 250, 0.4))
	second := mustVendorOrder(t, mustLineItem(t, "Vase", 1, 900, 1.5))
	o := mustOrder(t, PaymentMethodPrepaid, 0, first, second)
	require.NoError(t, o.MarkPaid("payment captured"))

	require.NoError(t, o.RecordShipment(first.SubOrderID(), "WB1", "carrier"))
	require.NoError(t, o.MarkVendorOrderPending(second.SubOrderID(), "carrier rejected", true))

	require.NoError(t, o.FinalizeFulfillment())
	assert.Equal(t, Processing, o.Status())
}

func TestFinalizeFulfillmentAllFailed(t *testing.T) {
	vo := mustVendorOrder(t, mustLineItem(t, "Clay Mug", 1, 250, 0.4))
	o := mustOrder(t, PaymentMethodPrepaid, 0, vo)
	require.NoError(t, o.MarkPaid("payment captured"))

	require.NoError(t, o.MarkVendorOrderPending(vo.SubOrderID(), "carrier rejected", true))
	assert.Equal(t, 1, vo.ShipmentRetryCount())

	require.NoError(t, o.FinalizeFulfillment())
	assert.Equal(t, Pending, o.Status())
}

func TestFinalizeFulfillmentRequiresConfirmed(t *testing.T) {
	o := mustOrder(t, PaymentMethodPrepaid, 0, mustVendorOrder(t, mustLineItem(t, "Clay Mug", 1, 250, 0.4)))

	assert.Error(t, o.FinalizeFulfillment())
}

func TestCancelOrder(t *testing.T) {
	first := mustVendorOrder(t, mustLineItem(t, "Clay Mug", 2, 250, 0.4))
	second := mustVendorOrder(t, mustLineItem(t, "Vase", 1, 900, 1.5))
	o := mustOrder(t, PaymentMethodPrepaid, 0, first, second)

	require.NoError(t, o.Cancel("changed my mind", 500))

	assert.Equal(t, Cancelled, o.Status())
	assert.True(t, o.IsDeleted())
	assert.Equal(t, VendorOrderCancelled, first.Status())
	assert.Equal(t, VendorOrderCancelled, second.Status())
	assert.True(t, o.Refund().Requested)
	assert.Equal(t, RefundRequested, o.Refund().Status)
	assert.InDelta(t, 500, o.Refund().Amount, 0.001)

	assert.Error(t, o.Cancel("again", 0), "already cancelled")
}

func TestCancelOrderRejectsExcessiveRefund(t *testing.T) {
	vo := mustVendorOrder(t, mustLineItem(t, "Clay Mug", 1, 250, 0.4))
	o := mustOrder(t, PaymentMethodPrepaid, 0, vo)

	err := o.Cancel("changed my mind", o.FinalOrderAmount()+1)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	// Rejected, never clamped: nothing changed.
	assert.Equal(t, PaymentPending, o.Status())
	assert.False(t, o.Refund().Requested)
}

func TestCancelPaidOrderRefundsPayment(t *testing.T) {
	vo := mustVendorOrder(t, mustLineItem(t, "Clay Mug", 1, 250, 0.4))
	o := mustOrder(t, PaymentMethodPrepaid, 0, vo)
	require.NoError(t, o.MarkPaid("payment captured"))

	require.NoError(t, o.Cancel("changed my mind", o.FinalOrderAmount()))

	assert.Equal(t, PaymentStatusRefunded, o.PaymentStatus())
}

func TestCancelVendorOrderRecomputesTotals(t *testing.T) {
	first := mustVendorOrder(t, mustLineItem(t, "Clay Mug", 2, 250, 0.4))
	second := mustVendorOrder(t, mustLineItem(t, "Vase", 1, 900, 1.5))
	o := mustOrder(t, PaymentMethodPrepaid, 0, first, second)
	require.InDelta(t, 1520, o.Amount(), 0.001)

	require.NoError(t, o.CancelVendorOrder(first.SubOrderID(), "out of stock", 0))

	// The cancelled group's items and shipping drop out of the totals.
	assert.InDelta(t, 960, o.Amount(), 0.001)
	assert.Equal(t, PaymentPending, o.Status())
	assert.Equal(t, VendorOrderCancelled, first.Status())
}

func TestCancelVendorOrderRefundCap(t *testing.T) {
	first := mustVendorOrder(t, mustLineItem(t, "Clay Mug", 2, 250, 0.4))
	second := mustVendorOrder(t, mustLineItem(t, "Vase", 1, 900, 1.5))
	o := mustOrder(t, PaymentMethodPrepaid, 0, first, second)

	// Cap is the group's active items plus its shipping: 500 + 60.
	err := o.CancelVendorOrder(first.SubOrderID(), "out of stock", 561)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	assert.NoError(t, o.CancelVendorOrder(first.SubOrderID(), "out of stock", 560))
}

func TestCancelLastVendorOrderCancelsOrder(t *testing.T) {
	first := mustVendorOrder(t, mustLineItem(t, "Clay Mug", 1, 250, 0.4))
	second := mustVendorOrder(t, mustLineItem(t, "Vase", 1, 900, 1.5))
	o := mustOrder(t, PaymentMethodPrepaid, 0, first, second)

	require.NoError(t, o.CancelVendorOrder(first.SubOrderID(), "out of stock", 0))
	assert.NotEqual(t, Cancelled, o.Status())

	require.NoError(t, o.CancelVendorOrder(second.SubOrderID(), "out of stock", 0))

	// Cancellation propagates child to parent, never set directly.
	assert.Equal(t, Cancelled, o.Status())
	assert.True(t, o.IsDeleted())
}

func TestCancelLineItemCascade(t *testing.T) {
	first := mustLineItem(t, "Clay Mug", 2, 250, 0.4)
	second := mustLineItem(t, "Vase", 1, 900, 1.5)
	vo := mustVendorOrder(t, first, second)
	o := mustOrder(t, PaymentMethodPrepaid, 0, vo)

	require.NoError(t, o.CancelLineItem(vo.SubOrderID(), first.ProductID(), "out of stock", 0))

	assert.Equal(t, ItemCancelled, first.Status())
	assert.NotEqual(t, VendorOrderCancelled, vo.Status())
	assert.InDelta(t, 960, o.Amount(), 0.001)

	require.NoError(t, o.CancelLineItem(vo.SubOrderID(), second.ProductID(), "out of stock", 0))

	// The last active item took the sub-order with it, and the sub-order took
	// the order.
	assert.Equal(t, VendorOrderCancelled, vo.Status())
	assert.Equal(t, Cancelled, o.Status())
}

func TestCancelLineItemRefundCap(t *testing.T) {
	item := mustLineItem(t, "Clay Mug", 2, 250, 0.4)
	vo := mustVendorOrder(t, item, mustLineItem(t, "Vase", 1, 900, 1.5))
	o := mustOrder(t, PaymentMethodPrepaid, 0, vo)

	err := o.CancelLineItem(vo.SubOrderID(), item.ProductID(), "out of stock", 501)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	assert.NoError(t, o.CancelLineItem(vo.SubOrderID(), item.ProductID(), "out of stock", 500))
}

func TestCancelLineItemAlreadyCancelled(t *testing.T) {
	item := mustLineItem(t, "Clay Mug", 1, 250, 0.4)
	vo := mustVendorOrder(t, item, mustLineItem(t, "Vase", 1, 900, 1.5))
	o := mustOrder(t, PaymentMethodPrepaid, 0, vo)

	require.NoError(t, o.CancelLineItem(vo.SubOrderID(), item.ProductID(), "out of stock", 0))
	assert.Error(t, o.CancelLineItem(vo.SubOrderID(), item.ProductID(), "again", 0))
}

func TestStatusHistoryIsAppendOnly(t *testing.T) {
	vo := mustVendorOrder(t, mustLineItem(t, "Clay Mug", 1, 250, 0.4))
	o := mustOrder(t, PaymentMethodPrepaid, 0, vo)

	require.NoError(t, o.MarkPaid("payment captured"))
	require.NoError(t, o.RecordShipment(vo.SubOrderID(), "WB1", "carrier"))
	require.NoError(t, o.FinalizeFulfillment())

	history := o.StatusHistory()
	require.Len(t, history, 3)
	assert.Equal(t, PaymentPending, history[0].Status)
	assert.Equal(t, Confirmed, history[1].Status)
	assert.Equal(t, Processing, history[2].Status)
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].At.Before(history[i-1].At))
	}
}

func TestAnnotateExtra(t *testing.T) {
	o := mustOrder(t, PaymentMethodCOD, 0, mustVendorOrder(t, mustLineItem(t, "Clay Mug", 1, 250, 0.4)))

	o.AnnotateExtra("support_note", "customer called")
	assert.Equal(t, "customer called", o.ExtraData()["support_note"])
}
