package checkout

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shopit/shopclient/internal/config"
	"github.com/shopit/shopclient/internal/domain"
	"github.com/shopit/shopclient/internal/upi"
	"github.com/shopit/shopclient/pkg/errors"
)

// Composer turns a cart snapshot plus billing/payment form input into a
// validated, fully priced OrderPayload. Pricing policy comes from
// configuration; the site-wide discount rule is provisional business logic.
type Composer struct {
	pricing config.PricingConfig
	now     func() time.Time
}

// NewComposer creates an order composer with the given pricing policy.
func NewComposer(pricing config.PricingConfig) *Composer {
	return &Composer{
		pricing: pricing,
		now:     time.Now,
	}
}

// Totals is the priced summary of a cart snapshot.
type Totals struct {
	OriginalSubtotal float64 `json:"originalSubtotal"`
	Discount         float64 `json:"discount"`
	Subtotal         float64 `json:"subtotal"`
	Shipping         float64 `json:"shipping"`
	Total            float64 `json:"total"`
}

// Price computes totals for a cart snapshot:
// discount applies only above the threshold, shipping is a flat fee on any
// non-empty cart, and subtotal/total are floored at zero.
func (c *Composer) Price(lines []domain.CartLine) Totals {
	var originalSubtotal float64
	for _, l := range lines {
		originalSubtotal += l.Price * float64(l.Qty)
	}

	var discount float64
	if originalSubtotal > c.pricing.DiscountThreshold {
		discount = math.Round(originalSubtotal * c.pricing.DiscountRate)
	}

	subtotal := math.Max(0, originalSubtotal-discount)

	var shipping float64
	if originalSubtotal > 0 {
		shipping = c.pricing.ShippingFee
	}

	return Totals{
		OriginalSubtotal: originalSubtotal,
		Discount:         discount,
		Subtotal:         subtotal,
		Shipping:         shipping,
		Total:            math.Max(0, subtotal+shipping),
	}
}

// ValidateBilling checks the required shipping/contact fields.
func (c *Composer) ValidateBilling(billing domain.Billing) error {
	switch {
	case strings.TrimSpace(billing.Name) == "":
		return &errors.ValidationError{Field: "fullName", Message: "full name is required"}
	case strings.TrimSpace(billing.Email) == "":
		return &errors.ValidationError{Field: "email", Message: "email is required"}
	case strings.TrimSpace(billing.Phone) == "":
		return &errors.ValidationError{Field: "phone", Message: "phone is required"}
	case strings.TrimSpace(billing.Country) == "":
		return &errors.ValidationError{Field: "country", Message: "country is required"}
	}
	return nil
}

// ValidatePayment checks the chosen method and, for upi-id, the entered
// identifier.
func (c *Composer) ValidatePayment(method domain.PaymentMethod, upiID string) error {
	if !method.IsValid() {
		return &errors.ValidationError{Field: "paymentMethod", Message: "choose a payment method"}
	}
	if method == domain.PaymentMethodUPIID && !upi.IsValid(upiID) {
		return &errors.ValidationError{Field: "upiId", Message: "enter a valid UPI ID (e.g. name@bank)"}
	}
	return nil
}

// Compose validates inputs and builds an immutable OrderPayload from the
// cart snapshot. Items are copied, so later cart mutation cannot touch the
// payload.
func (c *Composer) Compose(lines []domain.CartLine, billing domain.Billing, method domain.PaymentMethod, upiID string) (*domain.OrderPayload, error) {
	if len(lines) == 0 {
		return nil, &errors.ValidationError{Field: "cart", Message: "cart is empty"}
	}
	if err := c.ValidateBilling(billing); err != nil {
		return nil, err
	}
	if err := c.ValidatePayment(method, upiID); err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, len(lines))
	for i, l := range lines {
		items[i] = domain.OrderItem{
			ProductID: l.ProductID,
			Title:     l.Title,
			Price:     l.Price,
			Qty:       l.Qty,
			Image:     l.Image,
		}
	}

	totals := c.Price(lines)

	return &domain.OrderPayload{
		OrderID:          newOrderID(),
		Items:            items,
		OriginalSubtotal: totals.OriginalSubtotal,
		Subtotal:         totals.Subtotal,
		Discount:         totals.Discount,
		Shipping:         totals.Shipping,
		Total:            totals.Total,
		Billing:          billing,
		Payment:          paymentDisplay(method, upiID),
		CreatedAt:        c.now().Format(time.RFC3339),
	}, nil
}

// paymentDisplay derives the display fields for the chosen method. For
// upi-id only the last four characters of the identifier are kept.
func paymentDisplay(method domain.PaymentMethod, upiID string) domain.Payment {
	last4 := "N/A"
	switch method {
	case domain.PaymentMethodUPIID:
		id := strings.TrimSpace(upiID)
		if len(id) > 4 {
			id = id[len(id)-4:]
		}
		last4 = id
	case domain.PaymentMethodUPIQR:
		last4 = "QR"
	}

	return domain.Payment{
		Brand:  method.Brand(),
		Last4:  last4,
		Method: method,
	}
}

// newOrderID generates a human-readable order token, e.g. ORD-9F2C1A3B.
func newOrderID() string {
	return "ORD-" + strings.ToUpper(strings.Split(uuid.NewString(), "-")[0])
}
