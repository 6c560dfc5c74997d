// internal/infrastructure/upstream/client_test.go
package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(srv *httptest.Server) *Client {
	return &Client{baseURL: srv.URL, httpClient: srv.Client()}
}

func TestClientForwardsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": map[string]string{}})
	}))
	defer srv.Close()

	ctx := WithToken(context.Background(), "tok-123")
	var out map[string]string
	require.NoError(t, testClient(srv).do(ctx, http.MethodGet, "/cart", nil, nil, &out))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClientNoTokenNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, testClient(srv).do(context.Background(), http.MethodGet, "/cart", nil, nil, nil))
	assert.Empty(t, gotAuth)
}

func TestClientUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": "ok",
			"data":    map[string]interface{}{"id": 7},
		})
	}))
	defer srv.Close()

	var out struct {
		ID uint `json:"id"`
	}
	require.NoError(t, testClient(srv).do(context.Background(), http.MethodGet, "/x", nil, nil, &out))
	assert.Equal(t, uint(7), out.ID)
}

func TestClientToleratesBareBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 9})
	}))
	defer srv.Close()

	var out struct {
		ID uint `json:"id"`
	}
	require.NoError(t, testClient(srv).do(context.Background(), http.MethodGet, "/x", nil, nil, &out))
	assert.Equal(t, uint(9), out.ID)
}

func TestClientErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "product out of stock",
		})
	}))
	defer srv.Close()

	err := testClient(srv).do(context.Background(), http.MethodPost, "/cart/items", nil, map[string]int{"product_id": 1}, nil)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "product out of stock", apiErr.Error())
}

func TestClientErrorFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := testClient(srv).do(context.Background(), http.MethodGet, "/cart", nil, nil, nil)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "upstream returned status 502", apiErr.Message)
}

func TestClientPaginationMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    []map[string]interface{}{{"id": 1}, {"id": 2}},
			"pagination": map[string]interface{}{
				"total": 12, "page": 1, "limit": 2, "total_pages": 6,
			},
		})
	}))
	defer srv.Close()

	var out []struct {
		ID uint `json:"id"`
	}
	pagination, err := testClient(srv).doPaginated(context.Background(), http.MethodGet, "/orders", nil, nil, &out)
	require.NoError(t, err)
	require.NotNil(t, pagination)
	assert.Equal(t, int64(12), pagination.Total)
	assert.Equal(t, 6, pagination.TotalPages)
	assert.Len(t, out, 2)
}
