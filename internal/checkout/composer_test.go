package checkout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopit/shopclient/internal/config"
	"github.com/shopit/shopclient/internal/domain"
	"github.com/shopit/shopclient/pkg/errors"
)

func defaultPricing() config.PricingConfig {
	return config.PricingConfig{
		DiscountRate:      0.40,
		DiscountThreshold: 999,
		ShippingFee:       50,
	}
}

func validBilling() domain.Billing {
	return domain.Billing{
		Name:    "Rahul Sharma",
		Email:   "rahul@example.com",
		Phone:   "9876543210",
		Country: "India",
		City:    "Pune",
	}
}

func linesWithSubtotal(subtotal float64) []domain.CartLine {
	return []domain.CartLine{
		{ProductID: "p1", Title: "Widget", Price: subtotal, Qty: 1},
	}
}

func TestPriceAppliesDiscountAboveThreshold(t *testing.T) {
	c := NewComposer(defaultPricing())

	totals := c.Price(linesWithSubtotal(1000))
	assert.Equal(t, float64(1000), totals.OriginalSubtotal)
	assert.Equal(t, float64(400), totals.Discount)
	assert.Equal(t, float64(600), totals.Subtotal)
	assert.Equal(t, float64(50), totals.Shipping)
	assert.Equal(t, float64(650), totals.Total)
}

func TestPriceNoDiscountAtThreshold(t *testing.T) {
	c := NewComposer(defaultPricing())

	totals := c.Price(linesWithSubtotal(999))
	assert.Zero(t, totals.Discount)
	assert.Equal(t, float64(999), totals.Subtotal)
	assert.Equal(t, float64(1049), totals.Total)
}

func TestPriceEmptyCart(t *testing.T) {
	c := NewComposer(defaultPricing())

	totals := c.Price(nil)
	assert.Zero(t, totals.OriginalSubtotal)
	assert.Zero(t, totals.Shipping)
	assert.Zero(t, totals.Total)
}

func TestPriceSumsAcrossLines(t *testing.T) {
	c := NewComposer(defaultPricing())

	totals := c.Price([]domain.CartLine{
		{ProductID: "a", Price: 500, Qty: 2},
		{ProductID: "b", Price: 250, Qty: 2},
	})
	assert.Equal(t, float64(1500), totals.OriginalSubtotal)
	assert.Equal(t, float64(600), totals.Discount)
	assert.Equal(t, float64(950), totals.Total)
}

func TestComposeRequiresBillingFields(t *testing.T) {
	c := NewComposer(defaultPricing())
	lines := linesWithSubtotal(100)

	cases := []struct {
		name  string
		mut   func(*domain.Billing)
		field string
	}{
		{"missing name", func(b *domain.Billing) { b.Name = "" }, "fullName"},
		{"missing email", func(b *domain.Billing) { b.Email = " " }, "email"},
		{"missing phone", func(b *domain.Billing) { b.Phone = "" }, "phone"},
		{"missing country", func(b *domain.Billing) { b.Country = "" }, "country"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			billing := validBilling()
			tc.mut(&billing)

			_, err := c.Compose(lines, billing, domain.PaymentMethodCOD, "")
			var verr *errors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestComposeRejectsUnknownMethod(t *testing.T) {
	c := NewComposer(defaultPricing())

	_, err := c.Compose(linesWithSubtotal(100), validBilling(), "card", "")
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "paymentMethod", verr.Field)
}

func TestComposeRejectsInvalidUPIID(t *testing.T) {
	c := NewComposer(defaultPricing())

	_, err := c.Compose(linesWithSubtotal(100), validBilling(), domain.PaymentMethodUPIID, "rahul")
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "upiId", verr.Field)
}

func TestComposeRejectsEmptyCart(t *testing.T) {
	c := NewComposer(defaultPricing())

	_, err := c.Compose(nil, validBilling(), domain.PaymentMethodCOD, "")
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestComposeBuildsPayload(t *testing.T) {
	c := NewComposer(defaultPricing())
	lines := []domain.CartLine{
		{ProductID: "p1", Title: "Widget", Price: 500, Image: "/w.png", Qty: 2},
	}

	payload, err := c.Compose(lines, validBilling(), domain.PaymentMethodCOD, "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(payload.OrderID, "ORD-"))
	assert.Len(t, payload.OrderID, len("ORD-")+8)
	assert.Equal(t, strings.ToUpper(payload.OrderID), payload.OrderID)

	require.Len(t, payload.Items, 1)
	assert.Equal(t, "p1", payload.Items[0].ProductID)
	assert.Equal(t, 2, payload.Items[0].Qty)

	assert.Equal(t, float64(1000), payload.OriginalSubtotal)
	assert.Equal(t, float64(400), payload.Discount)
	assert.Equal(t, float64(600), payload.Subtotal)
	assert.Equal(t, float64(50), payload.Shipping)
	assert.Equal(t, float64(650), payload.Total)
	assert.NotEmpty(t, payload.CreatedAt)
}

func TestComposeSnapshotIsDecoupledFromCart(t *testing.T) {
	c := NewComposer(defaultPricing())
	lines := []domain.CartLine{{ProductID: "p1", Title: "Widget", Price: 100, Qty: 1}}

	payload, err := c.Compose(lines, validBilling(), domain.PaymentMethodCOD, "")
	require.NoError(t, err)

	lines[0].Qty = 99
	lines[0].Title = "mutated"
	assert.Equal(t, 1, payload.Items[0].Qty)
	assert.Equal(t, "Widget", payload.Items[0].Title)
}

func TestPaymentDisplayFields(t *testing.T) {
	cod := paymentDisplay(domain.PaymentMethodCOD, "")
	assert.Equal(t, domain.Payment{Brand: "COD", Last4: "N/A", Method: domain.PaymentMethodCOD}, cod)

	upiID := paymentDisplay(domain.PaymentMethodUPIID, "rahul@ybl")
	assert.Equal(t, "UPI", upiID.Brand)
	assert.Equal(t, "@ybl", upiID.Last4)

	qr := paymentDisplay(domain.PaymentMethodUPIQR, "")
	assert.Equal(t, "UPI-QR", qr.Brand)
	assert.Equal(t, "QR", qr.Last4)
}

func TestOrderIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := newOrderID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}
