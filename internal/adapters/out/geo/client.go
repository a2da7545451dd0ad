// Package geo implements the driving distance client. Distance only affects
// manual shipping price, never order acceptance, so the client degrades to a
// configured fallback distance on any failure instead of returning an error.
package geo

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 5 * time.Second

// Client estimates driving distance between two pincodes via an external
// distance service.
type Client struct {
	baseURL    string
	fallbackKm float64
	httpClient *http.Client
}

// NewClient creates a geo client with the distance used when the service is
// unreachable or returns garbage.
func NewClient(baseURL string, fallbackKm float64, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    baseURL,
		fallbackKm: fallbackKm,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type distanceResponse struct {
	DistanceKm float64 `json:"distance_km"`
}

// DistanceKm returns the driving distance between the two pincodes, falling
// back to the configured estimate on any failure.
func (c *Client) DistanceKm(ctx context.Context, fromPincode, toPincode string) float64 {
	q := url.Values{}
	q.Set("from", fromPincode)
	q.Set("to", toPincode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/distance?"+q.Encode(), nil)
	if err != nil {
		return c.fallback(fromPincode, toPincode, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fallback(fromPincode, toPincode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("distance lookup failed, using fallback",
			"from", fromPincode, "to", toPincode, "status", resp.StatusCode)
		return c.fallbackKm
	}

	var payload distanceResponse
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return c.fallback(fromPincode, toPincode, err)
	}
	if payload.DistanceKm < 0 {
		slog.Warn("distance lookup returned negative value, using fallback",
			"from", fromPincode, "to", toPincode, "distance_km", payload.DistanceKm)
		return c.fallbackKm
	}

	return payload.DistanceKm
}

func (c *Client) fallback(from, to string, err error) float64 {
	slog.Warn("distance lookup failed, using fallback", "from", from, "to", to, "error", err)
	return c.fallbackKm
}
