package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// PaymentMethod identifies how an order is paid.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined method.
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentMethodPrepaid is an online payment captured through the gateway
	// before fulfillment starts.
	PaymentMethodPrepaid

	// PaymentMethodCOD is cash on delivery; the order is confirmed immediately
	// and payment is collected by the carrier.
	PaymentMethodCOD
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown: "unknown",
		PaymentMethodPrepaid: "prepaid",
		PaymentMethodCOD:     "cod",
	}
}

// PaymentMethodFromString parses a payment method from its wire name.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, name := range getPaymentMethodStrings() {
		if name == s && method != PaymentMethodUnknown {
			return method, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("payment method",
		fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks if the PaymentMethod value is valid.
func (m PaymentMethod) Validate() error {
	if m != PaymentMethodPrepaid && m != PaymentMethodCOD {
		return errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the wire name of the payment method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// PaymentStatus tracks the payment side of the order lifecycle,
// independent of the fulfillment Status.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentStatusPending means no capture has happened yet. COD orders stay
	// pending until the carrier collects payment.
	PaymentStatusPending

	// PaymentStatusPaid means the gateway verified and captured the payment.
	PaymentStatusPaid

	// PaymentStatusFailed means the gateway rejected the payment.
	PaymentStatusFailed

	// PaymentStatusRefunded means a refund was processed.
	PaymentStatusRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown:  "unknown",
		PaymentStatusPending:  "pending",
		PaymentStatusPaid:     "paid",
		PaymentStatusFailed:   "failed",
		PaymentStatusRefunded: "refunded",
	}
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%d is not a valid payment status", s))
	}
}

// String returns the wire name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
