package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopit/shopclient/pkg/errors"
)

// respondError maps engine errors to HTTP statuses. All operation-boundary
// errors surface as user-visible messages; none crash the gateway.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch e := err.(type) {
	case *errors.ValidationError:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": e.Error(), "field": e.Field})
	case *errors.ErrInvalidStateTransition:
		c.JSON(http.StatusConflict, gin.H{"error": e.Error()})
	case *errors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
	case *errors.ServerError:
		message := e.Message
		if message == "" {
			message = "backend request failed"
		}
		c.JSON(e.Status, gin.H{"error": message})
	case *errors.NetworkError:
		logger.Warn("Backend unreachable", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not reach server, try again"})
	default:
		logger.Error("Unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
