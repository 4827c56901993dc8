package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Checkout modes.
const (
	ModePayment      = "payment"
	ModeSubscription = "subscription"
)

// Values of the "type" metadata key.
const (
	TypeOneTime            = "one_time"
	TypeVendorSubscription = "vendor_subscription"
)

// Session is a provider-hosted checkout page created for an order or a
// vendor subscription.
type Session struct {
	ID         string            `json:"id"`
	ProviderID string            `json:"provider_id"`
	Provider   string            `json:"provider"`
	UserID     string            `json:"user_id"`
	Mode       string            `json:"mode"`
	OrderID    string            `json:"order_id,omitempty"`
	VendorID   string            `json:"vendor_id,omitempty"`
	Amount     int64             `json:"amount,omitempty"`
	Currency   string            `json:"currency,omitempty"`
	URL        string            `json:"url"`
	Metadata   map[string]string `json:"metadata"`
	CreatedAt  time.Time         `json:"created_at"`
}

// MaxMinorUnits is the largest unit amount a checkout line item accepts.
const MaxMinorUnits int64 = 99_999_999

var (
	hundred  = decimal.NewFromInt(100)
	maxMinor = decimal.NewFromInt(MaxMinorUnits)
)

// ErrAmountTooLarge is returned for amounts above MaxMinorUnits cents.
var ErrAmountTooLarge = errors.New("amount exceeds the checkout maximum")

// ToMinorUnits converts a major-unit amount to cents, rounding half away
// from zero: 19.999 becomes 2000. The range is checked before converting
// so the result never wraps.
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	minor := amount.Mul(hundred).Round(0)
	if minor.GreaterThan(maxMinor) {
		return 0, ErrAmountTooLarge
	}
	return minor.IntPart(), nil
}
