package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopit/shopclient/internal/domain"
)

// CreateOrderResponse is the backend's answer to an order submission.
type CreateOrderResponse struct {
	ID      string `json:"_id,omitempty"`
	Message string `json:"message,omitempty"`
}

// CreateOrder submits a composed order payload.
func (c *Client) CreateOrder(ctx context.Context, payload *domain.OrderPayload) (*CreateOrderResponse, error) {
	var resp CreateOrderResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetOrder fetches one order by its backend id.
func (c *Client) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListMyOrders fetches the authenticated customer's orders.
func (c *Client) ListMyOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/my", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrders fetches all orders (admin view).
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus sets an order's status (admin view). It returns the
// backend's updated record.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	body := map[string]string{"status": status}

	var order domain.Order
	if err := c.do(ctx, http.MethodPut, "/api/orders/"+url.PathEscape(id)+"/status", body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
