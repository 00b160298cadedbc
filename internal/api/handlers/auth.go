package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopit/shopclient/internal/backend"
	"github.com/shopit/shopclient/internal/session"
)

// LoginRequest carries customer or admin credentials, forwarded verbatim to
// the backend. The gateway never stores passwords.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignupRequest registers a new customer.
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// HandleLogin handles POST /auth/login
func HandleLogin(client *backend.Client, sessions *session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		resp, err := client.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		if err := sessions.Save(c.Request.Context(), resp.Token, resp.User); err != nil {
			logger.Warn("Failed to persist session", zap.Error(err))
		}
		c.JSON(http.StatusOK, gin.H{"user": resp.User})
	}
}

// HandleSignup handles POST /auth/signup
func HandleSignup(client *backend.Client, sessions *session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		resp, err := client.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		if err := sessions.Save(c.Request.Context(), resp.Token, resp.User); err != nil {
			logger.Warn("Failed to persist session", zap.Error(err))
		}
		c.JSON(http.StatusOK, gin.H{"user": resp.User})
	}
}

// HandleLogout handles POST /auth/logout. Drops the bearer token and the
// persisted identity; the backend holds no customer session to end.
func HandleLogout(client *backend.Client, sessions *session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		client.SetToken("")
		if err := sessions.Clear(c.Request.Context()); err != nil {
			respondError(c, logger, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// HandleMe handles GET /auth/me — persisted display identity only.
func HandleMe(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user":     sessions.User(c.Request.Context()),
			"loggedIn": sessions.Token(c.Request.Context()) != "",
		})
	}
}

// HandleAdminLogin handles POST /admin/login (cookie session kept by the
// backend client's jar).
func HandleAdminLogin(client *backend.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		resp, err := client.AdminLogin(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": resp.User})
	}
}

// HandleAdminLogout handles POST /admin/logout
func HandleAdminLogout(client *backend.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := client.AdminLogout(c.Request.Context()); err != nil {
			respondError(c, logger, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
