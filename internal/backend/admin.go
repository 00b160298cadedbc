package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopit/shopclient/internal/domain"
)

// ProductInput is the admin create/update body. All fields are optional on
// update; StockDelta maps to the backend's $incStock adjustment convention
// and is mutually exclusive with Stock.
type ProductInput struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Images      []string `json:"images,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
	Category    *string  `json:"category,omitempty"`
	StockDelta  *int     `json:"$incStock,omitempty"`
}

// CreateProduct creates a catalog product (admin).
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodPost, "/api/admin/products", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct updates a catalog product (admin).
func (c *Client) UpdateProduct(ctx context.Context, id string, input ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodPut, "/api/admin/products/"+url.PathEscape(id), input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// AdjustStock increments (or decrements) a product's stock by delta using
// the $incStock convention.
func (c *Client) AdjustStock(ctx context.Context, id string, delta int) (*domain.Product, error) {
	return c.UpdateProduct(ctx, id, ProductInput{StockDelta: &delta})
}

// DeleteProduct deletes a catalog product (admin).
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/products/"+url.PathEscape(id), nil, nil)
}

// LoginResponse is the backend's answer to auth calls. The token is display
// and transport material only; the security boundary is the server-side
// cookie.
type LoginResponse struct {
	Token string             `json:"token,omitempty"`
	User  domain.UserProfile `json:"user,omitempty"`
}

// Login authenticates a customer and installs the returned bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}
	if resp.Token != "" {
		c.SetToken(resp.Token)
	}
	return &resp, nil
}

// Signup registers a customer and installs the returned bearer token.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*LoginResponse, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", body, &resp); err != nil {
		return nil, err
	}
	if resp.Token != "" {
		c.SetToken(resp.Token)
	}
	return &resp, nil
}

// AdminLogin authenticates the admin session (cookie-based).
func (c *Client) AdminLogin(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/admin/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdminLogout ends the admin session.
func (c *Client) AdminLogout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/admin/logout", nil, nil)
}
