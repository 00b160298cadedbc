package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopit/shopclient/internal/backend"
	"github.com/shopit/shopclient/internal/checkout"
	"github.com/shopit/shopclient/internal/receipt"
)

// UpdateOrderStatusRequest sets an order's status (admin view).
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// HandleLastOrder handles GET /orders/last — the cached receipt payload.
func HandleLastOrder(flow *checkout.Flow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := flow.LastOrder(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// HandleLastOrderReceipt handles GET /orders/last/receipt, serving the
// plain-text receipt as a download.
func HandleLastOrderReceipt(flow *checkout.Flow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := flow.LastOrder(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.Header("Content-Disposition", `attachment; filename="receipt_`+order.OrderID+`.txt"`)
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(receipt.Render(order)+"\n"))
	}
}

// HandleListOrders handles GET /orders (admin view, proxied)
func HandleListOrders(client *backend.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := client.ListOrders(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// HandleListMyOrders handles GET /orders/my (customer view, proxied)
func HandleListMyOrders(client *backend.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := client.ListMyOrders(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// HandleGetOrder handles GET /orders/:id (proxied)
func HandleGetOrder(client *backend.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := client.GetOrder(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// HandleUpdateOrderStatus handles PUT /orders/:id/status (proxied)
func HandleUpdateOrderStatus(client *backend.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		order, err := client.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
