package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopit/shopclient/internal/checkout"
	"github.com/shopit/shopclient/internal/domain"
	"github.com/shopit/shopclient/internal/upi"
)

// SelectMethodRequest chooses the payment method for the current attempt.
type SelectMethodRequest struct {
	Method domain.PaymentMethod `json:"method" binding:"required"`
}

// ConfirmRequest carries the billing form and, for upi-id, the identifier.
type ConfirmRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Country  string `json:"country"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	UPIID    string `json:"upiId"`
}

func (r ConfirmRequest) billing() domain.Billing {
	return domain.Billing{
		Name:    r.FullName,
		Email:   r.Email,
		Phone:   r.Phone,
		Country: r.Country,
		City:    r.City,
		State:   r.State,
		Zip:     r.Zip,
	}
}

// HandleCheckoutState handles GET /checkout/state
func HandleCheckoutState(flow *checkout.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"state":  flow.State(),
			"method": flow.Method(),
		})
	}
}

// HandleSelectMethod handles POST /checkout/method
func HandleSelectMethod(flow *checkout.Flow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SelectMethodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := flow.SelectMethod(req.Method); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"state": flow.State(), "method": flow.Method()})
	}
}

// HandleConfirm handles POST /checkout/confirm. For cod it submits directly,
// for upi-id it validates and runs the simulated processing step, for upi-qr
// it parks the attempt until /checkout/qr-paid.
func HandleConfirm(flow *checkout.Flow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ConfirmRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := flow.Confirm(c.Request.Context(), req.billing(), req.UPIID); err != nil {
			respondError(c, logger, err)
			return
		}

		resp := gin.H{"state": flow.State()}
		if flow.State() == domain.CheckoutStateCompleted {
			if order, err := flow.LastOrder(c.Request.Context()); err == nil {
				resp["order"] = order
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}

// HandleQRPaid handles POST /checkout/qr-paid, the user-asserted "I have
// paid" from the QR view.
func HandleQRPaid(flow *checkout.Flow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := flow.ConfirmQRPaid(c.Request.Context()); err != nil {
			respondError(c, logger, err)
			return
		}

		resp := gin.H{"state": flow.State()}
		if order, err := flow.LastOrder(c.Request.Context()); err == nil {
			resp["order"] = order
		}
		c.JSON(http.StatusOK, resp)
	}
}

// HandleQRCancel handles POST /checkout/qr-cancel
func HandleQRCancel(flow *checkout.Flow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := flow.CancelQR(); err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": flow.State()})
	}
}

// HandleCheckoutReset handles POST /checkout/reset, abandoning the current
// attempt. The cart is untouched.
func HandleCheckoutReset(flow *checkout.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow.Reset()
		c.JSON(http.StatusOK, gin.H{"state": flow.State()})
	}
}

// HandleUPISuggestions handles GET /upi/suggestions?input=
func HandleUPISuggestions() gin.HandlerFunc {
	return func(c *gin.Context) {
		input := c.Query("input")

		suggestions := upi.Suggest(input)
		if suggestions == nil {
			suggestions = []upi.Suffix{}
		}

		c.JSON(http.StatusOK, gin.H{
			"suggestions": suggestions,
			"valid":       upi.IsValid(input),
			"bank":        upi.BankFor(input),
		})
	}
}
