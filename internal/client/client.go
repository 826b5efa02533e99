// Package client is a Go client for the storefront API, used by the shop CLI
// and handy for smoke tests against a running instance.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Arif911659/DhakaCart-03/internal/catalog"
	"github.com/Arif911659/DhakaCart-03/internal/orders"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type productsResponse struct {
	Source catalog.Source    `json:"source"`
	Data   []catalog.Product `json:"data"`
}

type productResponse struct {
	Source catalog.Source  `json:"source"`
	Data   catalog.Product `json:"data"`
}

type categoriesResponse struct {
	Data []string `json:"data"`
}

type orderResponse struct {
	Message string        `json:"message"`
	Order   *orders.Order `json:"order"`
}

type orderDetailResponse struct {
	Order *orders.Order            `json:"order"`
	Items []orders.OrderItemDetail `json:"items"`
}

func (c *Client) Health(ctx context.Context) error {
	var out map[string]any
	return c.get(ctx, "/health", &out)
}

func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, catalog.Source, error) {
	var out productsResponse
	if err := c.get(ctx, "/products", &out); err != nil {
		return nil, "", err
	}
	return out.Data, out.Source, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (catalog.Product, catalog.Source, error) {
	var out productResponse
	if err := c.get(ctx, fmt.Sprintf("/products/%d", id), &out); err != nil {
		return catalog.Product{}, "", err
	}
	return out.Data, out.Source, nil
}

func (c *Client) ListByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	var out productsResponse
	if err := c.get(ctx, "/products/category/"+category, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var out categoriesResponse
	if err := c.get(ctx, "/categories", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) PlaceOrder(ctx context.Context, in orders.OrderInput) (*orders.Order, error) {
	var out orderResponse
	if err := c.post(ctx, "/orders", in, &out); err != nil {
		return nil, err
	}
	return out.Order, nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (*orders.Order, []orders.OrderItemDetail, error) {
	var out orderDetailResponse
	if err := c.get(ctx, fmt.Sprintf("/orders/%d", id), &out); err != nil {
		return nil, nil, err
	}
	return out.Order, out.Items, nil
}

func (c *Client) ClearCache(ctx context.Context) error {
	var out map[string]string
	return c.post(ctx, "/admin/clear-cache", nil, &out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", req.Method, req.URL.Path, e.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
