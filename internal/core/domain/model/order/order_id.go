package order

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"time"

	"marketplace/internal/pkg/errs"
)

// orderIDPrefix starts every business order identifier.
const orderIDPrefix = "ODR"

// suffixAlphabet is the character set for the random component of an order id.
// The random pair makes ids non-trivially enumerable; uniqueness is guaranteed
// by the zero-padded daily sequence, not by the random pair.
const suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var dateKeyPattern = regexp.MustCompile(`^\d{8}$`)

// DateKey formats a point in time as the YYYYMMDD key that partitions the
// daily order-id sequence.
func DateKey(t time.Time) string {
	return t.Format("20060102")
}

// ComposeOrderID builds a business order identifier from a date key and the
// per-day sequence number obtained from the atomic counter:
//
//	ODR + YYYYMMDD + 2 random alphanumerics + 4-digit zero-padded sequence
//
// e.g. ODR20250131AB0007. The sequence must be positive; the date key must be
// an eight-digit YYYYMMDD string.
func ComposeOrderID(dateKey string, sequence int) (string, error) {
	if !dateKeyPattern.MatchString(dateKey) {
		return "", errs.NewValueIsInvalidErrorWithCause("dateKey",
			fmt.Errorf("%q is not a YYYYMMDD date key", dateKey))
	}
	if sequence <= 0 {
		return "", errs.NewValueIsInvalidErrorWithCause("sequence",
			fmt.Errorf("%d is not greater than 0", sequence))
	}

	suffix, err := randomSuffix(2)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%s%s%04d", orderIDPrefix, dateKey, suffix, sequence), nil
}

// ComposeSubOrderID derives a vendor sub-order identifier from the parent's
// order id and the 1-based index of the vendor group within the order.
// The parent order id must already exist.
func ComposeSubOrderID(orderID string, vendorIndex int) (string, error) {
	if orderID == "" {
		return "", errs.NewValueIsRequiredError("orderID")
	}
	if vendorIndex <= 0 {
		return "", errs.NewValueIsInvalidErrorWithCause("vendorIndex",
			fmt.Errorf("%d is not a 1-based vendor index", vendorIndex))
	}

	return fmt.Sprintf("%s-%d", orderID, vendorIndex), nil
}

func randomSuffix(n int) (string, error) {
	raw := make([]byte, n)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("random suffix: %w", err)
	}

	out := make([]byte, n)
	for i, b := range raw {
		out[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}
	return string(out), nil
}
