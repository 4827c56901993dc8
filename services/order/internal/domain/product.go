package domain

import "math"

// Product is the catalog view the order pipeline reads. The catalog is owned
// elsewhere; Price stays a float so that NaN or negative values written by
// upstream tooling can be detected instead of silently coerced.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Active   bool    `json:"active"`
	StoreID  string  `json:"store_id"`
	Category string  `json:"category"`
}

// HasValidPrice reports whether the price is a finite non-negative number.
func (p Product) HasValidPrice() bool {
	return !math.IsNaN(p.Price) && !math.IsInf(p.Price, 0) && p.Price >= 0
}
