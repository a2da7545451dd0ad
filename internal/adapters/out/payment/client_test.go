package payment_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/adapters/out/payment"
	"marketplace/internal/core/ports"
)

func sign(secret, gatewayOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestClient_CreateOrder_Success(t *testing.T) {
	var gotBody map[string]any
	var gotUser, gotPass string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)

		var ok bool
		gotUser, gotPass, ok = r.BasicAuth()
		require.True(t, ok)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_, _ = w.Write([]byte(`{"id": "gw_order_9", "amount": 1825, "currency": "INR"}`))
	}))
	defer server.Close()

	client := payment.NewClient(server.URL, "key_id", "key_secret", time.Second)

	gatewayOrder, err := client.CreateOrder(context.Background(), 1825, "INR", "ODR20250901AB0007")
	require.NoError(t, err)

	assert.Equal(t, "key_id", gotUser)
	assert.Equal(t, "key_secret", gotPass)
	assert.InDelta(t, 1825, gotBody["amount"].(float64), 0.001)
	assert.Equal(t, "INR", gotBody["currency"])
	assert.Equal(t, "ODR20250901AB0007", gotBody["receipt"])
	assert.Equal(t, "gw_order_9", gatewayOrder.ID)
	assert.InDelta(t, 1825, gatewayOrder.Amount, 0.001)
}

func TestClient_CreateOrder_GatewayErrorAborts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error": "upstream unavailable"}`))
	}))
	defer server.Close()

	client := payment.NewClient(server.URL, "key_id", "key_secret", time.Second)

	_, err := client.CreateOrder(context.Background(), 500, "INR", "ODR20250901AB0008")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_Verify_AcceptsValidSignature(t *testing.T) {
	client := payment.NewClient("http://unused", "key_id", "key_secret", time.Second)

	verified := client.Verify(ports.PaymentVerification{
		GatewayOrderID: "gw_order_9",
		PaymentID:      "pay_42",
		Signature:      sign("key_secret", "gw_order_9", "pay_42"),
	})
	assert.True(t, verified)
}

func TestClient_Verify_RejectsTamperedSignature(t *testing.T) {
	client := payment.NewClient("http://unused", "key_id", "key_secret", time.Second)

	// Signed with the wrong secret.
	verified := client.Verify(ports.PaymentVerification{
		GatewayOrderID: "gw_order_9",
		PaymentID:      "pay_42",
		Signature:      sign("stolen_secret", "gw_order_9", "pay_42"),
	})
	assert.False(t, verified)

	// Signed payload does not match the callback fields.
	verified = client.Verify(ports.PaymentVerification{
		GatewayOrderID: "gw_order_9",
		PaymentID:      "pay_43",
		Signature:      sign("key_secret", "gw_order_9", "pay_42"),
	})
	assert.False(t, verified)
}
