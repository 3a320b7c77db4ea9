// Package shopapi is the client for the remote forecast/performance API.
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"shopdash/models"
)

// Client calls the forecast/performance service. No retries: every failure
// is terminal for the triggering user action.
type Client struct {
	base   string
	client *http.Client
}

// New builds a client for the API at base. client may be nil to use
// http.DefaultClient.
func New(base string, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(base, "/"), client: client}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("api GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("api GET %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api GET %s: decode: %w", path, err)
	}
	return nil
}

// PerformanceResponse is the raw shape of GET /shop-performance/{shopId}.
// The trend map is the server-side view; the dashboard builds its own
// gapless series from raw sales.
type PerformanceResponse struct {
	models.PerformanceTotals
	MonthlySalesTrend map[string]int `json:"monthlySalesTrend"`
}

// ShopPerformance fetches month totals for a shop.
func (c *Client) ShopPerformance(ctx context.Context, shopID string, month, year int) (models.PerformanceTotals, error) {
	var res PerformanceResponse
	path := fmt.Sprintf("/shop-performance/%s?month=%d&year=%d", shopID, month, year)
	if err := c.getJSON(ctx, path, &res); err != nil {
		return models.PerformanceTotals{}, err
	}
	return res.PerformanceTotals, nil
}

// Shops fetches the full shop directory.
func (c *Client) Shops(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	if err := c.getJSON(ctx, "/shops", &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

// Shop fetches a single shop record.
func (c *Client) Shop(ctx context.Context, shopID string) (models.Shop, error) {
	var shop models.Shop
	if err := c.getJSON(ctx, "/shops/"+shopID, &shop); err != nil {
		return models.Shop{}, err
	}
	return shop, nil
}

// ShopProducts fetches the API's product list for a shop.
func (c *Client) ShopProducts(ctx context.Context, shopID string) ([]models.Product, error) {
	var products []models.Product
	if err := c.getJSON(ctx, "/products/shop/"+shopID, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Forecast fetches next-month demand predictions for a shop.
func (c *Client) Forecast(ctx context.Context, shopID string, month, year int) (models.ForecastPayload, error) {
	var payload models.ForecastPayload
	path := fmt.Sprintf("/forecast/shop/%s?month=%d&year=%d", shopID, month, year)
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return models.ForecastPayload{}, err
	}
	return payload, nil
}

// NotifyDeliveryStarted triggers the buyer's delivery-started notification.
func (c *Client) NotifyDeliveryStarted(ctx context.Context, buyerID, orderID, shopName string) error {
	body, err := json.Marshal(map[string]string{
		"buyer_id":  buyerID,
		"order_id":  orderID,
		"shop_name": shopName,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/notifyDeliveryStarted", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("api notifyDeliveryStarted: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("api notifyDeliveryStarted: status %d", resp.StatusCode)
	}
	return nil
}
