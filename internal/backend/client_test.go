package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopit/shopclient/internal/config"
	"github.com/shopit/shopclient/internal/domain"
	"github.com/shopit/shopclient/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(config.BackendConfig{BaseURL: srv.URL}, zap.NewNop())
	return client, srv
}

func TestCreateOrderSendsPayload(t *testing.T) {
	var received domain.OrderPayload
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(map[string]string{"message": "created"})
	})

	payload := &domain.OrderPayload{OrderID: "ORD-TEST", Total: 650}
	resp, err := client.CreateOrder(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, "created", resp.Message)
	assert.Equal(t, "ORD-TEST", received.OrderID)
	assert.Equal(t, float64(650), received.Total)
}

func TestServerErrorCarriesBackendMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "stock exhausted"})
	})

	_, err := client.CreateOrder(context.Background(), &domain.OrderPayload{})
	var serr *errors.ServerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusBadRequest, serr.Status)
	assert.Equal(t, "stock exhausted", serr.Message)
}

func TestNotFoundMapsToErrNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetProduct(context.Background(), "missing")
	var nferr *errors.ErrNotFound
	require.ErrorAs(t, err, &nferr)
}

func TestUnreachableBackendIsNetworkError(t *testing.T) {
	client := NewClient(config.BackendConfig{BaseURL: "http://127.0.0.1:1"}, zap.NewNop())

	_, err := client.ListProducts(context.Background())
	var nerr *errors.NetworkError
	require.ErrorAs(t, err, &nerr)
}

func TestBearerTokenSetAfterLogin(t *testing.T) {
	var authHeader string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"token": "tok-123",
				"user":  map[string]string{"name": "Rahul"},
			})
		case "/api/orders/my":
			authHeader = r.Header.Get("Authorization")
			w.Write([]byte("[]"))
		}
	})

	resp, err := client.Login(context.Background(), "rahul@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Rahul", resp.User.Name)

	_, err = client.ListMyOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", authHeader)
}

func TestAdjustStockUsesIncStockConvention(t *testing.T) {
	var body map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/admin/products/p1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(domain.Product{ID: "p1", Stock: 4})
	})

	product, err := client.AdjustStock(context.Background(), "p1", -1)
	require.NoError(t, err)

	assert.Equal(t, float64(-1), body["$incStock"])
	assert.NotContains(t, body, "stock")
	assert.Equal(t, 4, product.Stock)
}

func TestUpdateOrderStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/orders/abc/status", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(domain.Order{Status: body["status"]})
	})

	order, err := client.UpdateOrderStatus(context.Background(), "abc", "completed")
	require.NoError(t, err)
	assert.Equal(t, "completed", order.Status)
}
