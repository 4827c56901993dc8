package domain

import "time"

// PickupHub is a collection point buyers can choose at checkout.
type PickupHub struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	City       string    `json:"city"`
	Department string    `json:"department"`
	Address    string    `json:"address"`
	Phone      string    `json:"phone,omitempty"`
	Active     bool      `json:"active"`
	UpdatedAt  time.Time `json:"updated_at"`
}
