package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopit/shopclient/internal/cart"
	"github.com/shopit/shopclient/internal/checkout"
	"github.com/shopit/shopclient/internal/domain"
)

// AddItemRequest is the add-to-cart body. Qty defaults to 1 and may be
// negative for quantity-adjustment UI.
type AddItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Title     string  `json:"title"`
	Price     float64 `json:"price" binding:"min=0"`
	Image     string  `json:"image"`
	Qty       *int    `json:"qty"`
}

// UpdateQtyRequest sets an absolute quantity; qty <= 0 removes the line.
type UpdateQtyRequest struct {
	Qty int `json:"qty"`
}

// CartResponse is the cart view returned after every read or mutation.
type CartResponse struct {
	Lines     []domain.CartLine `json:"lines"`
	CartCount int               `json:"cartCount"`
	LineCount int               `json:"lineCount"`
	Totals    checkout.Totals   `json:"totals"`
}

func cartResponse(store *cart.Store, pricing *checkout.Composer) CartResponse {
	lines := store.Lines()
	return CartResponse{
		Lines:     lines,
		CartCount: store.CartCount(),
		LineCount: store.LineCount(),
		Totals:    pricing.Price(lines),
	}
}

// HandleGetCart handles GET /cart
func HandleGetCart(store *cart.Store, pricing *checkout.Composer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cartResponse(store, pricing))
	}
}

// HandleAddItem handles POST /cart/items
func HandleAddItem(store *cart.Store, pricing *checkout.Composer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		qty := 1
		if req.Qty != nil {
			qty = *req.Qty
		}

		item := cart.Item{
			ProductID: req.ProductID,
			Title:     req.Title,
			Price:     req.Price,
			Image:     req.Image,
		}
		if err := store.AddItem(c.Request.Context(), item, qty); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, cartResponse(store, pricing))
	}
}

// HandleUpdateQty handles PUT /cart/items/:id
func HandleUpdateQty(store *cart.Store, pricing *checkout.Composer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateQtyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := store.UpdateQty(c.Request.Context(), c.Param("id"), req.Qty); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, cartResponse(store, pricing))
	}
}

// HandleRemoveItem handles DELETE /cart/items/:id
func HandleRemoveItem(store *cart.Store, pricing *checkout.Composer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.RemoveItem(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, cartResponse(store, pricing))
	}
}

// HandleClearCart handles DELETE /cart
func HandleClearCart(store *cart.Store, pricing *checkout.Composer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Clear(c.Request.Context()); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, cartResponse(store, pricing))
	}
}
