package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopit/shopclient/internal/backend"
	"github.com/shopit/shopclient/internal/catalog"
)

// AdjustStockRequest increments/decrements product stock by a delta.
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// adminMutationResponse answers every admin catalog write with the mutated
// record plus the refreshed product list, so screens never need a separate
// re-fetch after a write.
func adminMutationResponse(c *gin.Context, cache *catalog.Service, logger *zap.Logger, mutated interface{}) {
	cache.Invalidate()

	products, err := cache.ListProducts(c.Request.Context())
	if err != nil {
		logger.Warn("Failed to refresh product list after mutation", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"result": mutated})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": mutated, "products": products})
}

// HandleCreateProduct handles POST /admin/products
func HandleCreateProduct(client *backend.Client, cache *catalog.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input backend.ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		product, err := client.CreateProduct(c.Request.Context(), input)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		adminMutationResponse(c, cache, logger, product)
	}
}

// HandleUpdateProduct handles PUT /admin/products/:id
func HandleUpdateProduct(client *backend.Client, cache *catalog.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input backend.ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		product, err := client.UpdateProduct(c.Request.Context(), c.Param("id"), input)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		adminMutationResponse(c, cache, logger, product)
	}
}

// HandleAdjustStock handles POST /admin/products/:id/stock using the
// backend's $incStock delta convention.
func HandleAdjustStock(client *backend.Client, cache *catalog.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdjustStockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		product, err := client.AdjustStock(c.Request.Context(), c.Param("id"), req.Delta)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		adminMutationResponse(c, cache, logger, product)
	}
}

// HandleDeleteProduct handles DELETE /admin/products/:id
func HandleDeleteProduct(client *backend.Client, cache *catalog.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := client.DeleteProduct(c.Request.Context(), id); err != nil {
			respondError(c, logger, err)
			return
		}
		adminMutationResponse(c, cache, logger, gin.H{"deleted": id})
	}
}
