package domain

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// MaxQuantity is the largest quantity accepted for one line.
const MaxQuantity = 999

// ErrInvalidQuantity is returned by NormalizeQuantity.
var ErrInvalidQuantity = errors.New("invalid quantity")

// OrderItem is one line of an order. UnitPrice is the catalog price at
// creation time and is never re-read.
type OrderItem struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id,omitempty"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// NewOrderItem prices a line from the catalog product.
func NewOrderItem(p Product, variantID string, quantity int) OrderItem {
	unit := decimal.NewFromFloat(p.Price)
	return OrderItem{
		ProductID: p.ID,
		VariantID: variantID,
		Name:      p.Name,
		Quantity:  quantity,
		UnitPrice: unit,
		LineTotal: unit.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// NormalizeQuantity defaults an absent quantity to 1 and rejects values that
// are not a whole number in 1..MaxQuantity.
func NormalizeQuantity(q *float64) (int, error) {
	if q == nil {
		return 1, nil
	}
	v := *q
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return 0, fmt.Errorf("%w: must be a finite number", ErrInvalidQuantity)
	case v <= 0:
		return 0, fmt.Errorf("%w: must be greater than 0", ErrInvalidQuantity)
	case v > MaxQuantity:
		return 0, fmt.Errorf("%w: must not exceed %d", ErrInvalidQuantity, MaxQuantity)
	case v != math.Trunc(v):
		return 0, fmt.Errorf("%w: must be a whole number", ErrInvalidQuantity)
	}
	return int(v), nil
}
