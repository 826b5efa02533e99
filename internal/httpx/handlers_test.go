package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arif911659/DhakaCart-03/internal/catalog"
	"github.com/Arif911659/DhakaCart-03/internal/orders"
	"github.com/Arif911659/DhakaCart-03/internal/redisx"
)

// ---- fakes ----

type fakeCache struct{ data map[string]string }

func newFakeCache() *fakeCache { return &fakeCache{data: map[string]string{}} }

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", redisx.ErrMiss
	}
	return v, nil
}

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeCache) FlushAll(ctx context.Context) error {
	f.data = map[string]string{}
	return nil
}

type fakeCatalogStore struct{ products []catalog.Product }

func (f *fakeCatalogStore) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return f.products, nil
}

func (f *fakeCatalogStore) GetProduct(ctx context.Context, id int64) (catalog.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Product{}, catalog.ErrNotFound
}

func (f *fakeCatalogStore) ListByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range f.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalogStore) ListCategories(ctx context.Context) ([]string, error) {
	return []string{"Fish", "Grocery"}, nil
}

type fakeOrderStore struct {
	nextID int64
	err    error
}

func (f *fakeOrderStore) PlaceOrder(ctx context.Context, in orders.OrderInput) (*orders.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	return &orders.Order{
		ID:           f.nextID,
		CustomerName: in.CustomerName,
		TotalAmount:  in.TotalAmount,
		Status:       orders.StatusPending,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func (f *fakeOrderStore) GetOrder(ctx context.Context, id int64) (*orders.Order, []orders.OrderItemDetail, error) {
	if id != 1 {
		return nil, nil, orders.ErrNotFound
	}
	o := &orders.Order{ID: 1, CustomerName: "Rahim", TotalAmount: decimal.RequireFromString("20.00"), Status: orders.StatusPending}
	items := []orders.OrderItemDetail{{
		OrderItem:   orders.OrderItem{ID: 1, OrderID: 1, ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("10.00")},
		ProductName: "Rice",
		ImageURL:    "https://img.example/rice.jpg",
	}}
	return o, items, nil
}

func testRouter(orderErr error) (*chi.Mux, *fakeCache) {
	cache := newFakeCache()
	store := &fakeCatalogStore{products: []catalog.Product{
		{ID: 1, Name: "Rice", Category: "Grocery", Price: decimal.RequireFromString("650.00"), Stock: 120},
		{ID: 2, Name: "Hilsa", Category: "Fish", Price: decimal.RequireFromString("1450.00"), Stock: 35},
	}}

	r := NewRouter()
	(&CatalogHandler{Service: &catalog.Service{Store: store, Cache: cache}}).Register(r)
	(&OrdersHandler{Service: &orders.Service{
		Store: &fakeOrderStore{err: orderErr},
		Cache: cache,
	}}).Register(r)
	return r, cache
}

func doRequest(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	out := map[string]json.RawMessage{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func str(t *testing.T, raw json.RawMessage) string {
	t.Helper()
	var s string
	require.NoError(t, json.Unmarshal(raw, &s))
	return s
}

// ---- tests ----

func TestHealth(t *testing.T) {
	r, _ := testRouter(nil)

	rec, body := doRequest(t, r, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", str(t, body["status"]))
	assert.Contains(t, body, "timestamp")
}

func TestListProductsSourceTag(t *testing.T) {
	r, _ := testRouter(nil)

	rec, body := doRequest(t, r, http.MethodGet, "/products", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "database", str(t, body["source"]))

	rec2, body2 := doRequest(t, r, http.MethodGet, "/products", "")
	assert.Equal(t, http.StatusOK, rec2.Code)
	assert.Equal(t, "cache", str(t, body2["source"]))
}

func TestGetProduct(t *testing.T) {
	r, _ := testRouter(nil)

	rec, body := doRequest(t, r, http.MethodGet, "/products/2", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var p catalog.Product
	require.NoError(t, json.Unmarshal(body["data"], &p))
	assert.Equal(t, "Hilsa", p.Name)
}

func TestGetProductNotFound(t *testing.T) {
	r, _ := testRouter(nil)

	rec, body := doRequest(t, r, http.MethodGet, "/products/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", str(t, body["error"]))
}

func TestGetProductBadID(t *testing.T) {
	r, _ := testRouter(nil)

	rec, _ := doRequest(t, r, http.MethodGet, "/products/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListByCategory(t *testing.T) {
	r, _ := testRouter(nil)

	rec, body := doRequest(t, r, http.MethodGet, "/products/category/Fish", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var ps []catalog.Product
	require.NoError(t, json.Unmarshal(body["data"], &ps))
	require.Len(t, ps, 1)
	assert.Equal(t, "Hilsa", ps[0].Name)
}

func TestListCategories(t *testing.T) {
	r, _ := testRouter(nil)

	rec, body := doRequest(t, r, http.MethodGet, "/categories", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var cs []string
	require.NoError(t, json.Unmarshal(body["data"], &cs))
	assert.Equal(t, []string{"Fish", "Grocery"}, cs)
}

func validOrderBody() string {
	return `{
		"customer_name": "Rahim",
		"customer_email": "rahim@example.com",
		"customer_phone": "01700000000",
		"delivery_address": "Dhanmondi, Dhaka",
		"items": [{"product_id": 1, "quantity": 2, "price": "10.00"}],
		"total_amount": "20.00"
	}`
}

func TestCreateOrder(t *testing.T) {
	r, cache := testRouter(nil)

	// warm the listing cache, the order must invalidate it
	doRequest(t, r, http.MethodGet, "/products", "")
	require.Contains(t, cache.data, redisx.KeyProductsAll)

	rec, body := doRequest(t, r, http.MethodPost, "/orders", validOrderBody())
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Order placed successfully", str(t, body["message"]))

	var o orders.Order
	require.NoError(t, json.Unmarshal(body["order"], &o))
	assert.Equal(t, orders.StatusPending, o.Status)
	assert.NotContains(t, cache.data, redisx.KeyProductsAll, "listing cache must be invalidated")

	// next read reflects the store again
	_, listing := doRequest(t, r, http.MethodGet, "/products", "")
	assert.Equal(t, "database", str(t, listing["source"]))
}

func TestCreateOrderEmptyItems(t *testing.T) {
	r, _ := testRouter(nil)

	body := `{
		"customer_name": "Rahim",
		"customer_email": "rahim@example.com",
		"customer_phone": "01700000000",
		"delivery_address": "Dhanmondi, Dhaka",
		"items": [],
		"total_amount": "0"
	}`
	rec, out := doRequest(t, r, http.MethodPost, "/orders", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, str(t, out["error"]), "at least one item")
}

func TestCreateOrderInvalidJSON(t *testing.T) {
	r, _ := testRouter(nil)

	rec, _ := doRequest(t, r, http.MethodPost, "/orders", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	r, _ := testRouter(fmt.Errorf("product 1: %w", orders.ErrInsufficientStock))

	rec, _ := doRequest(t, r, http.MethodPost, "/orders", validOrderBody())
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateOrderStoreFailure(t *testing.T) {
	r, _ := testRouter(fmt.Errorf("connection reset"))

	rec, body := doRequest(t, r, http.MethodPost, "/orders", validOrderBody())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to create order", str(t, body["error"]))
}

func TestGetOrderWithItems(t *testing.T) {
	r, _ := testRouter(nil)

	rec, body := doRequest(t, r, http.MethodGet, "/orders/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var items []orders.OrderItemDetail
	require.NoError(t, json.Unmarshal(body["items"], &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Rice", items[0].ProductName)
}

func TestGetOrderNotFound(t *testing.T) {
	r, _ := testRouter(nil)

	rec, body := doRequest(t, r, http.MethodGet, "/orders/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order not found", str(t, body["error"]))
}

func TestClearCache(t *testing.T) {
	r, cache := testRouter(nil)

	doRequest(t, r, http.MethodGet, "/products", "")
	require.NotEmpty(t, cache.data)

	rec, body := doRequest(t, r, http.MethodPost, "/admin/clear-cache", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cache cleared successfully", str(t, body["message"]))
	assert.Empty(t, cache.data)

	_, listing := doRequest(t, r, http.MethodGet, "/products", "")
	assert.Equal(t, "database", str(t, listing["source"]))
}
