package receipt

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopit/shopclient/internal/domain"
)

const rule = "=============================="

// Render builds the plain-text receipt for a cached order payload:
// header, itemized lines, totals, billing block, payment line, footer.
func Render(order *domain.OrderPayload) string {
	lines := []string{
		"Receipt",
		rule,
		"Order ID: " + order.OrderID,
		"Date: " + formatDate(order.CreatedAt),
		"",
		"Items:",
	}

	for _, it := range order.Items {
		lines = append(lines, fmt.Sprintf(
			"- %s (%d x %s) = %s",
			it.Title, it.Qty, FormatINR(it.Price), FormatINR(float64(it.Qty)*it.Price),
		))
	}

	lines = append(lines, "",
		"Original subtotal: "+FormatINR(order.OriginalSubtotal),
		"Subtotal (after discount): "+FormatINR(order.Subtotal),
	)
	if order.Discount > 0 {
		lines = append(lines, "Discount: -"+FormatINR(order.Discount))
	}
	lines = append(lines,
		"Delivery fee: "+FormatINR(order.Shipping),
		"Total: "+FormatINR(order.Total),
		"",
		"Billing address:",
	)

	b := order.Billing
	if b.Name != "" {
		lines = append(lines, b.Name)
	}
	if cityLine := strings.TrimSpace(strings.Join(nonEmpty(b.City, b.State, b.Zip), " ")); cityLine != "" {
		lines = append(lines, cityLine)
	}
	if b.Country != "" {
		lines = append(lines, b.Country)
	}

	lines = append(lines, "",
		fmt.Sprintf("Payment: %s •••• %s", order.Payment.Brand, order.Payment.Last4),
		rule,
		"Thank you for shopping with us!",
	)

	return strings.Join(lines, "\n")
}

// WriteFile exports the receipt as receipt_<orderId>.txt under dir and
// returns the written path.
func WriteFile(order *domain.OrderPayload, dir string) (string, error) {
	name := "receipt_order.txt"
	if order.OrderID != "" {
		name = "receipt_" + order.OrderID + ".txt"
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(Render(order)+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("failed to write receipt: %w", err)
	}
	return path, nil
}

// FormatINR renders an amount as rupees with Indian digit grouping, e.g.
// 125000 -> ₹1,25,000. Non-integral amounts keep two decimals.
func FormatINR(amount float64) string {
	neg := amount < 0
	cents := int64(math.Round(math.Abs(amount) * 100))

	whole := cents / 100
	frac := cents % 100

	grouped := groupIndian(fmt.Sprintf("%d", whole))

	out := "₹" + grouped
	if frac > 0 {
		out = fmt.Sprintf("₹%s.%02d", grouped, frac)
	}
	if neg {
		out = "-" + out
	}
	return out
}

// groupIndian inserts commas in the en-IN pattern: the last three digits,
// then groups of two.
func groupIndian(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	head := digits[:n-3]
	tail := digits[n-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	parts = append([]string{head}, parts...)

	return strings.Join(parts, ",") + "," + tail
}

func formatDate(createdAt string) string {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return createdAt
	}
	return t.Local().Format("2 Jan 2006, 15:04:05")
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
