// internal/infrastructure/upstream/gateway_test.go
package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-bff/internal/domain/cart"
	"github.com/your-org/storefront-bff/internal/domain/order"
)

// recordingServer captures the last request and plays back a canned envelope
type recordingServer struct {
	*httptest.Server
	method string
	path   string
	header http.Header
	body   []byte
}

func newRecordingServer(t *testing.T, data interface{}) *recordingServer {
	t.Helper()
	rs := &recordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.method = r.Method
		rs.path = r.URL.RequestURI()
		rs.header = r.Header.Clone()
		rs.body, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": data})
	}))
	return rs
}

func TestCartGatewayEndpoints(t *testing.T) {
	srv := newRecordingServer(t, cart.Cart{ID: 1})
	defer srv.Close()
	gw := NewCartGateway(testClient(srv.Server))
	ctx := context.Background()

	_, err := gw.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, srv.method)
	assert.Equal(t, "/cart", srv.path)

	_, err = gw.AddItem(ctx, &cart.AddToCartRequest{ProductID: 3, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, srv.method)
	assert.Equal(t, "/cart/items", srv.path)
	assert.JSONEq(t, `{"product_id":3,"variant_id":null,"quantity":2}`, string(srv.body))

	_, err = gw.UpdateItem(ctx, 5, 4)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, srv.method)
	assert.Equal(t, "/cart/items/5", srv.path)
	assert.JSONEq(t, `{"quantity":4}`, string(srv.body))

	_, err = gw.RemoveItem(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, srv.method)
	assert.Equal(t, "/cart/items/5", srv.path)

	require.NoError(t, gw.Clear(ctx))
	assert.Equal(t, http.MethodDelete, srv.method)
	assert.Equal(t, "/cart/clear", srv.path)
}

func TestOrderGatewayCreateSendsIdempotencyKey(t *testing.T) {
	srv := newRecordingServer(t, order.Order{ID: 42})
	defer srv.Close()
	gw := NewOrderGateway(testClient(srv.Server))

	req := &order.CreateOrderRequest{AddressID: 2, PaymentMethod: order.PaymentMethodCOD}
	created, err := gw.Create(context.Background(), req, "intent-abc")
	require.NoError(t, err)

	assert.Equal(t, uint(42), created.ID)
	assert.Equal(t, http.MethodPost, srv.method)
	assert.Equal(t, "/orders", srv.path)
	assert.Equal(t, "intent-abc", srv.header.Get("X-Idempotency-Key"))
}

func TestOrderGatewayListQueryAndPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "pending", r.URL.Query().Get("status"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    []order.Order{{ID: 1}, {ID: 2}},
			"pagination": map[string]interface{}{
				"total": 23, "page": 2, "limit": 10, "total_pages": 3,
			},
		})
	}))
	defer srv.Close()
	gw := NewOrderGateway(testClient(srv))

	list, err := gw.List(context.Background(), order.ListParams{Page: 2, Limit: 10, Status: order.StatusPending})
	require.NoError(t, err)

	assert.Len(t, list.Orders, 2)
	assert.Equal(t, int64(23), list.Total)
	assert.Equal(t, 3, list.TotalPages)
}

func TestOrderGatewayListWithoutPagination(t *testing.T) {
	srv := newRecordingServer(t, []order.Order{{ID: 1}})
	defer srv.Close()
	gw := NewOrderGateway(testClient(srv.Server))

	list, err := gw.List(context.Background(), order.ListParams{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(1), list.Total)
	assert.Equal(t, 1, list.Page)
}

func TestOrderGatewayCancel(t *testing.T) {
	srv := newRecordingServer(t, nil)
	defer srv.Close()
	gw := NewOrderGateway(testClient(srv.Server))

	require.NoError(t, gw.Cancel(context.Background(), 9, "changed my mind"))
	assert.Equal(t, http.MethodPost, srv.method)
	assert.Equal(t, "/orders/9/cancel", srv.path)
	assert.JSONEq(t, `{"reason":"changed my mind"}`, string(srv.body))
}

func TestPaymentGatewayInitiate(t *testing.T) {
	srv := newRecordingServer(t, map[string]string{"payment_url": "https://pay.example.com/9"})
	defer srv.Close()
	gw := NewPaymentGateway(testClient(srv.Server))

	url, err := gw.Initiate(context.Background(), 9)
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example.com/9", url)
	assert.Equal(t, http.MethodPost, srv.method)
	assert.Equal(t, "/payments/initiate", srv.path)
	assert.JSONEq(t, `{"order_id":9}`, string(srv.body))
}

func TestAuthGatewayLogout(t *testing.T) {
	srv := newRecordingServer(t, nil)
	defer srv.Close()
	gw := NewAuthGateway(testClient(srv.Server))

	require.NoError(t, gw.Logout(context.Background()))
	assert.Equal(t, http.MethodPost, srv.method)
	assert.Equal(t, "/auth/logout", srv.path)
}
