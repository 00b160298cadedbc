package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopit/shopclient/internal/api/handlers"
	"github.com/shopit/shopclient/internal/backend"
	"github.com/shopit/shopclient/internal/cart"
	"github.com/shopit/shopclient/internal/catalog"
	"github.com/shopit/shopclient/internal/checkout"
	"github.com/shopit/shopclient/internal/config"
	"github.com/shopit/shopclient/internal/session"
)

// Deps bundles the engine components served by the gateway.
type Deps struct {
	Cart    *cart.Store
	Flow    *checkout.Flow
	Pricing *checkout.Composer
	Catalog *catalog.Service
	Backend *backend.Client
	Session *session.Store
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, deps Deps, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Cart
	router.GET("/cart", handlers.HandleGetCart(deps.Cart, deps.Pricing))
	router.POST("/cart/items", handlers.HandleAddItem(deps.Cart, deps.Pricing, logger))
	router.PUT("/cart/items/:id", handlers.HandleUpdateQty(deps.Cart, deps.Pricing, logger))
	router.DELETE("/cart/items/:id", handlers.HandleRemoveItem(deps.Cart, deps.Pricing, logger))
	router.DELETE("/cart", handlers.HandleClearCart(deps.Cart, deps.Pricing, logger))

	// Checkout
	router.GET("/checkout/state", handlers.HandleCheckoutState(deps.Flow))
	router.POST("/checkout/method", handlers.HandleSelectMethod(deps.Flow, logger))
	router.POST("/checkout/confirm", handlers.HandleConfirm(deps.Flow, logger))
	router.POST("/checkout/qr-paid", handlers.HandleQRPaid(deps.Flow, logger))
	router.POST("/checkout/qr-cancel", handlers.HandleQRCancel(deps.Flow, logger))
	router.POST("/checkout/reset", handlers.HandleCheckoutReset(deps.Flow))

	// UPI helpers
	router.GET("/upi/suggestions", handlers.HandleUPISuggestions())

	// Catalog
	router.GET("/products", handlers.HandleListProducts(deps.Catalog, logger))
	router.GET("/products/:id", handlers.HandleGetProduct(deps.Catalog, logger))

	// Orders
	router.GET("/orders/last", handlers.HandleLastOrder(deps.Flow, logger))
	router.GET("/orders/last/receipt", handlers.HandleLastOrderReceipt(deps.Flow, logger))
	router.GET("/orders", handlers.HandleListOrders(deps.Backend, logger))
	router.GET("/orders/my", handlers.HandleListMyOrders(deps.Backend, logger))
	router.GET("/orders/:id", handlers.HandleGetOrder(deps.Backend, logger))
	router.PUT("/orders/:id/status", handlers.HandleUpdateOrderStatus(deps.Backend, logger))

	// Auth (proxied; session kept for display only)
	router.POST("/auth/login", handlers.HandleLogin(deps.Backend, deps.Session, logger))
	router.POST("/auth/signup", handlers.HandleSignup(deps.Backend, deps.Session, logger))
	router.POST("/auth/logout", handlers.HandleLogout(deps.Backend, deps.Session, logger))
	router.GET("/auth/me", handlers.HandleMe(deps.Session))

	// Admin (proxied product CRUD)
	admin := router.Group("/admin")
	{
		admin.POST("/login", handlers.HandleAdminLogin(deps.Backend, logger))
		admin.POST("/logout", handlers.HandleAdminLogout(deps.Backend, logger))
		admin.POST("/products", handlers.HandleCreateProduct(deps.Backend, deps.Catalog, logger))
		admin.PUT("/products/:id", handlers.HandleUpdateProduct(deps.Backend, deps.Catalog, logger))
		admin.POST("/products/:id/stock", handlers.HandleAdjustStock(deps.Backend, deps.Catalog, logger))
		admin.DELETE("/products/:id", handlers.HandleDeleteProduct(deps.Backend, deps.Catalog, logger))
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
