// Package payment implements the payment gateway client: order registration
// over the gateway's JSON API and webhook signature verification with the
// shared secret.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"marketplace/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client talks to the payment gateway's HTTP API.
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

// NewClient creates a payment gateway client authenticated with the key pair.
func NewClient(baseURL, keyID, keySecret string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type createOrderRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt"`
}

type createOrderResponse struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// CreateOrder registers a pending payment with the gateway and returns the
// gateway order reference the client-side checkout needs. Unlike carrier
// failures, a gateway failure here aborts order creation: a prepaid order
// without a gateway reference can never be paid.
func (c *Client) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (ports.GatewayOrder, error) {
	payload, err := json.Marshal(createOrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return ports.GatewayOrder{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return ports.GatewayOrder{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.GatewayOrder{}, fmt.Errorf("payment gateway create order: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ports.GatewayOrder{}, fmt.Errorf("payment gateway create order: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return ports.GatewayOrder{}, fmt.Errorf("payment gateway create order: status %d: %s",
			resp.StatusCode, string(body))
	}

	var orderResp createOrderResponse
	if err = json.Unmarshal(body, &orderResp); err != nil {
		return ports.GatewayOrder{}, fmt.Errorf("payment gateway create order: malformed response: %w", err)
	}

	return ports.GatewayOrder{
		ID:       orderResp.ID,
		Amount:   orderResp.Amount,
		Currency: orderResp.Currency,
	}, nil
}

// Verify checks the payment callback signature: HMAC-SHA256 over
// "<gatewayOrderID>|<paymentID>" with the key secret, hex encoded. The
// comparison is constant time.
func (c *Client) Verify(v ports.PaymentVerification) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(v.GatewayOrderID + "|" + v.PaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(v.Signature))
}
