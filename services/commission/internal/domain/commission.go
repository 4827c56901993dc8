package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategory is the rate-table key used for unknown categories.
const DefaultCategory = "default"

// Beneficiary kinds.
const (
	BeneficiaryAffiliate = "affiliate"
	BeneficiaryVendor    = "vendor"
)

// StatusPending is the state of a freshly recorded entry. Payout is handled elsewhere.
const StatusPending = "pending"

var rates = map[string]decimal.Decimal{
	"electronics": decimal.RequireFromString("0.03"),
	"fashion":     decimal.RequireFromString("0.08"),
	"beauty":      decimal.RequireFromString("0.10"),
	"digital":     decimal.RequireFromString("0.15"),
	"courses":     decimal.RequireFromString("0.20"),
	"services":    decimal.RequireFromString("0.10"),
	"real_estate": decimal.RequireFromString("0.02"),
	"vehicles":    decimal.RequireFromString("0.02"),
	"food":        decimal.RequireFromString("0.05"),
	DefaultCategory: decimal.RequireFromString("0.05"),
}

// NormalizeCategory lower-cases a category and joins its words with
// underscores, so "Real Estate" and "real-estate" both become real_estate.
func NormalizeCategory(category string) string {
	words := strings.Fields(strings.ReplaceAll(strings.ToLower(category), "-", " "))
	return strings.Join(words, "_")
}

// RateFor returns the rate of category, or the default rate when the
// category is empty or unknown.
func RateFor(category string) decimal.Decimal {
	if r, ok := rates[NormalizeCategory(category)]; ok {
		return r
	}
	return rates[DefaultCategory]
}

// Calculate returns amount × RateFor(category), unrounded.
func Calculate(category string, amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(RateFor(category))
}

// Rates returns a copy of the rate table, default included.
func Rates() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(rates))
	for k, v := range rates {
		out[k] = v
	}
	return out
}

// Entry is one ledger line: the commission owed on a paid order.
type Entry struct {
	ID              string          `json:"id"`
	OrderID         string          `json:"order_id"`
	BeneficiaryID   string          `json:"beneficiary_id"`
	BeneficiaryType string          `json:"beneficiary_type"`
	Category        string          `json:"category"`
	SaleAmount      decimal.Decimal `json:"sale_amount"`
	Rate            decimal.Decimal `json:"rate"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}
