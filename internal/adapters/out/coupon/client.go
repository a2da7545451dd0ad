// Package coupon implements the coupon service client. Lookups are advisory:
// the order creation handler treats any error here as "no discount".
package coupon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

const defaultTimeout = 5 * time.Second

// Client reads coupon details from the coupon service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a coupon client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type couponPayload struct {
	Code        string    `json:"code"`
	Discount    float64   `json:"discount"`
	ExpiresAt   time.Time `json:"expires_at"`
	MinPurchase float64   `json:"min_purchase"`
}

// GetCoupon resolves a coupon code to its discount terms.
func (c *Client) GetCoupon(ctx context.Context, code string) (ports.CouponInfo, error) {
	if code == "" {
		return ports.CouponInfo{}, errs.NewValueIsRequiredError("coupon code")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/coupons/"+url.PathEscape(code), nil)
	if err != nil {
		return ports.CouponInfo{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.CouponInfo{}, fmt.Errorf("coupon lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ports.CouponInfo{}, errs.NewObjectNotFoundError("coupon", code)
	}
	if resp.StatusCode != http.StatusOK {
		return ports.CouponInfo{}, fmt.Errorf("coupon lookup: status %d", resp.StatusCode)
	}

	var payload couponPayload
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ports.CouponInfo{}, fmt.Errorf("coupon lookup: malformed response: %w", err)
	}

	return ports.CouponInfo{
		Code:        payload.Code,
		Discount:    payload.Discount,
		ExpiresAt:   payload.ExpiresAt,
		MinPurchase: payload.MinPurchase,
	}, nil
}
