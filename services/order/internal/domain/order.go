package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order and payment status at creation. Later transitions belong to the
// payment and fulfilment pipeline, never to the order service.
const (
	OrderStatusPending   = "pending"
	PaymentStatusPending = "pending"
)

// Order is a single-vendor purchase. It is written once and never mutated
// by the order service.
type Order struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	VendorID        string           `json:"vendor_id"`
	Items           []OrderItem      `json:"items"`
	TotalPrice      decimal.Decimal  `json:"total_price"`
	Status          string           `json:"status"`
	PaymentStatus   string           `json:"payment_status"`
	CustomerDetails *CustomerDetails `json:"customer_details,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// CustomerDetails is the optional contact block captured at checkout.
type CustomerDetails struct {
	Name        string `json:"name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
	PickupHubID string `json:"pickup_hub_id,omitempty"`
}

// SumLines returns the sum of the line totals.
func SumLines(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal)
	}
	return total
}
