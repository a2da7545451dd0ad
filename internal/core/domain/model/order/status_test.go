package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusConfirmPayment(t *testing.T) {
	for _, from := range []Status{PaymentPending, PaymentFailed} {
		next, err := from.ConfirmPayment()
		require.NoError(t, err)
		assert.Equal(t, Confirmed, next)
	}

	for _, from := range []Status{Confirmed, Processing, Shipped, Delivered, Cancelled} {
		_, err := from.ConfirmPayment()
		assert.Error(t, err, from.String())
	}
}

func TestStatusFailPayment(t *testing.T) {
	next, err := PaymentPending.FailPayment()
	require.NoError(t, err)
	assert.Equal(t, PaymentFailed, next)

	// A repeated failed attempt stays at PaymentFailed.
	next, err = PaymentFailed.FailPayment()
	require.NoError(t, err)
	assert.Equal(t, PaymentFailed, next)

	_, err = Confirmed.FailPayment()
	assert.Error(t, err)
}

func TestStatusCanCancel(t *testing.T) {
	for _, from := range []Status{PaymentPending, PaymentFailed, Confirmed, Processing} {
		assert.NoError(t, from.CanCancel(), from.String())
	}

	for _, from := range []Status{ReadyToShip, Shipped, Delivered, Cancelled, Refunded} {
		assert.Error(t, from.CanCancel(), from.String())
	}
}

func TestStatusRefund(t *testing.T) {
	next, err := Cancelled.Refund()
	require.NoError(t, err)
	assert.Equal(t, Refunded, next)

	for _, from := range []Status{Delivered, Refunded, StatusUnknown} {
		_, err = from.Refund()
		assert.Error(t, err, from.String())
	}
}

func TestStatusIsTerminal(t *testing.T) {
	for _, s := range []Status{Delivered, Cancelled, Refunded} {
		assert.True(t, s.IsTerminal(), s.String())
	}
	for _, s := range []Status{PaymentPending, Confirmed, Pending, Processing, ReadyToShip, Shipped} {
		assert.False(t, s.IsTerminal(), s.String())
	}
}

func TestStatusValidate(t *testing.T) {
	assert.NoError(t, Confirmed.Validate())
	assert.Error(t, StatusUnknown.Validate())
	assert.Error(t, Status(99).Validate())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "payment_pending", PaymentPending.String())
	assert.Equal(t, "ready_to_ship", ReadyToShip.String())
	assert.Equal(t, "unknown", Status(99).String())
}
