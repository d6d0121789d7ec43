package checkout

import (
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestBuildOrderMessage(t *testing.T) {
	order := Order{
		Number: 4821,
		Date:   time.Date(2026, time.March, 7, 15, 4, 0, 0, time.UTC),
		Form: model.DeliveryForm{
			Name:    "Ayşe Yılmaz",
			Email:   "ayse@example.com",
			Address: "12 Palm Street, Kyrenia",
		},
		Items: []model.CartLineItem{
			{ID: "P001", Name: "Chocolate Cake", Price: 25.5, Quantity: 3},
			{ID: "P002", Name: "Apple Pie", Price: 12, Quantity: 1},
		},
		Total:          88.5,
		CurrencySymbol: "TL",
	}

	expected := "Hi! I've successfully placed an order on your website.\n" +
		"\n" +
		"Order Details:\n" +
		"📋 Order Number: 4821\n" +
		"📅 Order Date: 3/7/2026\n" +
		"📧 Email: ayse@example.com\n" +
		"📍 Billing Address: Ayşe Yılmaz, 12 Palm Street, Kyrenia\n" +
		"🛍️ Items Ordered:\n" +
		"•  3x Chocolate Cake - 76.50 TL\n" +
		"•  1x Apple Pie - 12.00 TL\n" +
		"💰 Total Amount: 88.5 TL\n" +
		"\n" +
		"I would like to confirm this order and proceed with any additional steps needed. Thank you!"

	assert.Equal(t, expected, BuildOrderMessage(order))
}

func TestBuildOrderMessage_DateHasNoPadding(t *testing.T) {
	order := Order{Date: time.Date(2026, time.December, 25, 0, 0, 0, 0, time.UTC)}
	assert.Contains(t, BuildOrderMessage(order), "📅 Order Date: 12/25/2026\n")

	order.Date = time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Contains(t, BuildOrderMessage(order), "📅 Order Date: 1/1/2027\n")
}

func TestInquiryMessage(t *testing.T) {
	tests := []struct {
		name     string
		product  string
		price    float64
		expected string
	}{
		{
			name:     "Fractional price",
			product:  "Chocolate Cake",
			price:    25.5,
			expected: `Hi! I'm interested in ordering "Chocolate Cake" (TL25.5). Can you help me with the purchase process?`,
		},
		{
			name:     "Whole price",
			product:  "Baklava Tray",
			price:    300,
			expected: `Hi! I'm interested in ordering "Baklava Tray" (TL300). Can you help me with the purchase process?`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InquiryMessage(tt.product, tt.price, "TL"))
		})
	}
}
