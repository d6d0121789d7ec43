package checkout

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"storefront/internal/model"
)

// DateLayout renders order dates as month/day/year without padding.
const DateLayout = "1/2/2006"

// ContactMessage is the pre-filled text for a general enquiry.
const ContactMessage = "Hi! I'm interested in your baked goods. Can you help me with more information?"

// Order is everything the order summary message is built from.
type Order struct {
	Number         int
	Date           time.Time
	Form           model.DeliveryForm
	Items          []model.CartLineItem
	Total          float64
	CurrencySymbol string
}

// BuildOrderMessage renders the order summary sent to the shop.
func BuildOrderMessage(order Order) string {
	var b strings.Builder

	b.WriteString("Hi! I've successfully placed an order on your website.\n\n")
	b.WriteString("Order Details:\n")
	fmt.Fprintf(&b, "📋 Order Number: %d\n", order.Number)
	fmt.Fprintf(&b, "📅 Order Date: %s\n", order.Date.Format(DateLayout))
	fmt.Fprintf(&b, "📧 Email: %s\n", order.Form.Email)
	fmt.Fprintf(&b, "📍 Billing Address: %s, %s\n", order.Form.Name, order.Form.Address)
	b.WriteString("🛍️ Items Ordered:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "•  %dx %s - %.2f %s\n", item.Quantity, item.Name, item.LineTotal(), order.CurrencySymbol)
	}
	fmt.Fprintf(&b, "💰 Total Amount: %s %s\n\n", formatAmount(order.Total), order.CurrencySymbol)
	b.WriteString("I would like to confirm this order and proceed with any additional steps needed. Thank you!")

	return b.String()
}

// InquiryMessage renders the pre-filled text asking about a single product.
func InquiryMessage(productName string, price float64, currencySymbol string) string {
	return fmt.Sprintf(
		"Hi! I'm interested in ordering \"%s\" (%s%s). Can you help me with the purchase process?",
		productName,
		currencySymbol,
		formatAmount(price),
	)
}

// formatAmount prints an amount with the shortest exact representation, so
// 76.5 stays "76.5" and 12 stays "12".
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
