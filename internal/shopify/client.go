// Package shopify reads order data from the Shopify Admin REST API and
// ingests it into the data store.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/config"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/domain"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/pkg/httpx"
)

// Client is the Shopify Admin API client. It is shop-agnostic: the shop URL
// and access token arrive per call because each registered store carries its
// own credential.
type Client struct {
	apiVersion string
	baseURL    string // test override; empty means https://{shop}
	httpClient httpx.Doer
}

// NewClient creates a Shopify Admin API client.
func NewClient(cfg config.ShopifyConfig) *Client {
	return &Client{
		apiVersion: cfg.APIVersion,
		httpClient: httpx.NewClient(cfg.Timeout()),
	}
}

// SetHTTPClient sets a custom HTTP client (useful for testing)
func (c *Client) SetHTTPClient(d httpx.Doer) { c.httpClient = d }

// SetBaseURL overrides the shop-derived base URL (useful for testing)
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// Shopify returns money fields as decimal strings.
type apiOrder struct {
	ID         int64  `json:"id"`
	CreatedAt  string `json:"created_at"`
	TotalPrice string `json:"total_price"`
	Currency   string `json:"currency"`
	Email      string `json:"email"`
}

type ordersResponse struct {
	Orders []apiOrder `json:"orders"`
}

// FetchOrders pulls every order (any status) for the shop and maps it to the
// domain shape: the creation timestamp is truncated to its calendar date.
func (c *Client) FetchOrders(ctx context.Context, shopURL, accessToken string) ([]domain.Order, error) {
	base := c.baseURL
	if base == "" {
		base = "https://" + shopURL
	}
	url := fmt.Sprintf("%s/admin/api/%s/orders.json?status=any", base, c.apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("shopify: create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shopify: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("shopify: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shopify: API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed ordersResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("shopify: parse orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(parsed.Orders))
	for _, o := range parsed.Orders {
		amount, err := strconv.ParseFloat(o.TotalPrice, 64)
		if err != nil {
			return nil, fmt.Errorf("shopify: order %d has bad total_price %q: %w", o.ID, o.TotalPrice, err)
		}
		date := o.CreatedAt
		if len(date) >= len(domain.DateLayout) {
			date = date[:len(domain.DateLayout)]
		}
		email := o.Email
		if email == "" {
			email = "Unknown"
		}
		orders = append(orders, domain.Order{
			OrderID:       strconv.FormatInt(o.ID, 10),
			ShopURL:       shopURL,
			Date:          date,
			Amount:        amount,
			Currency:      o.Currency,
			CustomerEmail: email,
		})
	}
	return orders, nil
}
