package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopit/shopclient/internal/backend"
	"github.com/shopit/shopclient/internal/cart"
	"github.com/shopit/shopclient/internal/catalog"
	"github.com/shopit/shopclient/internal/checkout"
	"github.com/shopit/shopclient/internal/config"
	"github.com/shopit/shopclient/internal/session"
	"github.com/shopit/shopclient/internal/storage"
)

type gatewayFixture struct {
	router       *gin.Engine
	orderCreates *int
}

func newGateway(t *testing.T) gatewayFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	orderCreates := 0
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/orders":
			orderCreates++
			json.NewEncoder(w).Encode(map[string]string{"message": "created"})
		case r.Method == http.MethodGet && r.URL.Path == "/api/products":
			json.NewEncoder(w).Encode([]map[string]interface{}{
				{"_id": "p1", "title": "Widget", "price": 500, "stock": 3},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(backendSrv.Close)

	logger := zap.NewNop()
	slots, err := storage.NewFileStore(t.TempDir(), logger)
	require.NoError(t, err)

	cfg := &config.Config{
		Environment: "development",
		Pricing: config.PricingConfig{
			DiscountRate:      0.40,
			DiscountThreshold: 999,
			ShippingFee:       50,
		},
	}

	client := backend.NewClient(config.BackendConfig{BaseURL: backendSrv.URL}, logger)
	store := cart.NewStore(slots, logger)
	composer := checkout.NewComposer(cfg.Pricing)
	flow := checkout.NewFlow(composer, store, client, slots, 0, logger)
	products := catalog.NewService(client, time.Minute, logger)
	sessions := session.NewStore(slots, logger)

	router := NewRouter(cfg, Deps{
		Cart:    store,
		Flow:    flow,
		Pricing: composer,
		Catalog: products,
		Backend: client,
		Session: sessions,
	}, logger)

	return gatewayFixture{router: router, orderCreates: &orderCreates}
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCartEndpoints(t *testing.T) {
	fx := newGateway(t)

	w := doJSON(t, fx.router, http.MethodPost, "/cart/items",
		`{"productId":"p1","title":"Widget","price":500}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		CartCount int `json:"cartCount"`
		LineCount int `json:"lineCount"`
		Totals    struct {
			Total float64 `json:"total"`
		} `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.CartCount)

	// add the same product again: one line, qty 2, discount kicks in
	w = doJSON(t, fx.router, http.MethodPost, "/cart/items",
		`{"productId":"p1","title":"Widget","price":500}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.CartCount)
	assert.Equal(t, 1, resp.LineCount)
	assert.Equal(t, float64(650), resp.Totals.Total)

	// decrementing by 3 removes the line entirely
	w = doJSON(t, fx.router, http.MethodPost, "/cart/items",
		`{"productId":"p1","qty":-3}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.LineCount)
}

func TestCheckoutCODHappyPath(t *testing.T) {
	fx := newGateway(t)

	doJSON(t, fx.router, http.MethodPost, "/cart/items",
		`{"productId":"p1","title":"Widget","price":500,"qty":2}`)

	w := doJSON(t, fx.router, http.MethodPost, "/checkout/method", `{"method":"cod"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, fx.router, http.MethodPost, "/checkout/confirm",
		`{"fullName":"Rahul Sharma","email":"rahul@example.com","phone":"9876543210","country":"India"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"COMPLETED"`)
	assert.Equal(t, 1, *fx.orderCreates)

	// cart cleared after the confirmed submission
	w = doJSON(t, fx.router, http.MethodGet, "/cart", "")
	assert.Contains(t, w.Body.String(), `"lineCount":0`)

	// receipt available
	w = doJSON(t, fx.router, http.MethodGet, "/orders/last/receipt", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "Receipt\n"))
	assert.Contains(t, w.Body.String(), "Total: ₹650")
}

func TestCheckoutMissingBillingIs422(t *testing.T) {
	fx := newGateway(t)

	doJSON(t, fx.router, http.MethodPost, "/cart/items",
		`{"productId":"p1","title":"Widget","price":100}`)
	doJSON(t, fx.router, http.MethodPost, "/checkout/method", `{"method":"cod"}`)

	w := doJSON(t, fx.router, http.MethodPost, "/checkout/confirm",
		`{"email":"rahul@example.com","phone":"9876543210","country":"India"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "fullName")
	assert.Zero(t, *fx.orderCreates)
}

func TestCheckoutInvalidUPIIs422(t *testing.T) {
	fx := newGateway(t)

	doJSON(t, fx.router, http.MethodPost, "/cart/items",
		`{"productId":"p1","title":"Widget","price":100}`)
	doJSON(t, fx.router, http.MethodPost, "/checkout/method", `{"method":"upi-id"}`)

	w := doJSON(t, fx.router, http.MethodPost, "/checkout/confirm",
		`{"fullName":"Rahul","email":"r@x.com","phone":"1","country":"India","upiId":"rahul"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Zero(t, *fx.orderCreates)
}

func TestCheckoutQRFlow(t *testing.T) {
	fx := newGateway(t)

	doJSON(t, fx.router, http.MethodPost, "/cart/items",
		`{"productId":"p1","title":"Widget","price":100}`)
	doJSON(t, fx.router, http.MethodPost, "/checkout/method", `{"method":"upi-qr"}`)

	w := doJSON(t, fx.router, http.MethodPost, "/checkout/confirm",
		`{"fullName":"Rahul","email":"r@x.com","phone":"1","country":"India"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"AWAITING_CONFIRMATION"`)
	assert.Zero(t, *fx.orderCreates)

	w = doJSON(t, fx.router, http.MethodPost, "/checkout/qr-paid", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"COMPLETED"`)
	assert.Equal(t, 1, *fx.orderCreates)
}

func TestCheckoutResetReturnsToIdle(t *testing.T) {
	fx := newGateway(t)

	doJSON(t, fx.router, http.MethodPost, "/cart/items",
		`{"productId":"p1","title":"Widget","price":100}`)
	doJSON(t, fx.router, http.MethodPost, "/checkout/method", `{"method":"upi-qr"}`)
	doJSON(t, fx.router, http.MethodPost, "/checkout/confirm",
		`{"fullName":"Rahul","email":"r@x.com","phone":"1","country":"India"}`)

	w := doJSON(t, fx.router, http.MethodPost, "/checkout/reset", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"IDLE"`)
	assert.Zero(t, *fx.orderCreates)

	// cart untouched by the abandoned attempt
	w = doJSON(t, fx.router, http.MethodGet, "/cart", "")
	assert.Contains(t, w.Body.String(), `"lineCount":1`)
}

func TestUPISuggestionEndpoint(t *testing.T) {
	fx := newGateway(t)

	w := doJSON(t, fx.router, http.MethodGet, "/upi/suggestions?input=rahul@yb", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "@ybl")
	assert.Contains(t, w.Body.String(), "YES Bank")
}

func TestProductsProxiedThroughCache(t *testing.T) {
	fx := newGateway(t)

	w := doJSON(t, fx.router, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Widget")
}

func TestLogoutClearsSession(t *testing.T) {
	fx := newGateway(t)

	w := doJSON(t, fx.router, http.MethodPost, "/auth/logout", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, fx.router, http.MethodGet, "/auth/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"loggedIn":false`)
}

func TestLastOrderMissingIs404(t *testing.T) {
	fx := newGateway(t)

	w := doJSON(t, fx.router, http.MethodGet, "/orders/last", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
