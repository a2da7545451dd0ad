// Package catalog implements the product catalog client. Order creation
// snapshots product names, prices, and weights from here; a product missing
// from the catalog fails the lookup, and with it the order.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

const defaultTimeout = 5 * time.Second

// Client reads product details from the catalog service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client.
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

type productPayload struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	WeightKg          float64 `json:"weight_kg"`
	VendorID          string  `json:"vendor_id"`
	ManualDelivery    bool    `json:"manual_delivery"`
	AutomaticDelivery bool    `json:"automatic_delivery"`
}

// GetProducts fetches catalog info for the given product ids. Every requested
// id must be present in the result; an unknown product fails the whole lookup
// so order creation aborts before any persistence.
func (c *Client) GetProducts(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]ports.ProductInfo, error) {
	if len(ids) == 0 {
		return nil, errs.NewValueIsRequiredError("product ids")
	}

	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}

	q := url.Values{}
	q.Set("ids", strings.Join(idStrings, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog lookup: status %d", resp.StatusCode)
	}

	var payload struct {
		Products []productPayload `json:"products"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("catalog lookup: malformed response: %w", err)
	}

	products := make(map[kernel.UUID]ports.ProductInfo, len(payload.Products))
	for _, p := range payload.Products {
		id, idErr := kernel.UUIDFromString(p.ID)
		if idErr != nil {
			return nil, fmt.Errorf("catalog lookup: %w", idErr)
		}

		info := ports.ProductInfo{
			ID:                id,
			Name:              p.Name,
			Price:             p.Price,
			WeightKg:          p.WeightKg,
			ManualDelivery:    p.ManualDelivery,
			AutomaticDelivery: p.AutomaticDelivery,
		}
		if p.VendorID != "" {
			vendorID, vErr := kernel.UUIDFromString(p.VendorID)
			if vErr != nil {
				return nil, fmt.Errorf("catalog lookup: %w", vErr)
			}
			info.VendorID = vendorID
			info.HasVendor = true
		}
		products[id] = info
	}

	for _, id := range ids {
		if _, ok := products[id]; !ok {
			return nil, errs.NewObjectNotFoundError("productId", id.String())
		}
	}

	return products, nil
}
